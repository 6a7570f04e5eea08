package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account holds a user balance. Version is the optimistic concurrency token,
// every persisted mutation must carry the version it was read with.
type Account struct {
	ID        uuid.UUID
	UserID    string
	Balance   decimal.Decimal
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
