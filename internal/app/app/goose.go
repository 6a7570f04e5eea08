package app

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/orders/*.sql migrations/payments/*.sql
var embedMigrations embed.FS

const (
	migrationsOrders   = "migrations/orders"
	migrationsPayments = "migrations/payments"
)

// goose keeps its settings in package globals
var migrateMu sync.Mutex

func applyMigrations(db *sql.DB, dir string) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
