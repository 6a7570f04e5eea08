// Package app wires the orders and payments services from configuration.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"paysaga/internal/app/broker"
	"paysaga/internal/app/config"
	"paysaga/internal/app/logger"
	"paysaga/internal/app/service/outbox"
)

const shutdownTimeout = 5 * time.Second

// Infra is the external plumbing a service runs on. Tests build it by hand.
type Infra struct {
	DB         *sql.DB
	Publisher  broker.Publisher
	Subscriber broker.Subscriber
	Poison     broker.PoisonPolicy

	closers []func()
}

// Close releases everything opened by OpenInfra
func (i *Infra) Close() {
	for n := len(i.closers) - 1; n >= 0; n-- {
		i.closers[n]()
	}
	i.closers = nil
}

// OpenInfra connects to postgres, applies the migrations in dir, and
// prepares the RabbitMQ endpoints together with the optional redis poison tracker.
func OpenInfra(ctx context.Context, cfg config.Config, l logger.Logger, dir string) (*Infra, error) {
	inf := &Infra{}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	inf.DB = db
	inf.closers = append(inf.closers, func() { _ = db.Close() })

	if err := db.PingContext(ctx); err != nil {
		inf.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := applyMigrations(db, dir); err != nil {
		inf.Close()
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	bcfg := broker.RabbitMQConfig{
		URL:            cfg.Broker.URL,
		ReconnectDelay: cfg.Broker.ReconnectDelay,
		PublishTimeout: cfg.Broker.PublishTimeout,
	}
	pub, err := broker.NewRabbitPublisher(bcfg, l)
	if err != nil {
		inf.Close()
		return nil, fmt.Errorf("publisher init: %w", err)
	}
	inf.Publisher = pub
	inf.closers = append(inf.closers, pub.Close)

	sub, err := broker.NewRabbitSubscriber(bcfg, l)
	if err != nil {
		inf.Close()
		return nil, fmt.Errorf("subscriber init: %w", err)
	}
	inf.Subscriber = sub

	inf.Poison = broker.PoisonPolicy{Threshold: cfg.Inbox.PoisonThreshold}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    []string{cfg.Redis.Addr},
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			l.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, poison tracking disabled")
			_ = rdb.Close()
		} else {
			inf.Poison.Tracker = broker.NewRedisPoisonTracker(rdb, cfg.Inbox.PoisonTTL)
			inf.closers = append(inf.closers, func() { _ = rdb.Close() })
		}
	}

	return inf, nil
}

func outboxConfig(cfg config.OutboxConfig) outbox.Config {
	return outbox.Config{
		Interval:        cfg.Interval,
		ErrorBackoff:    cfg.ErrorBackoff,
		BatchSize:       cfg.BatchSize,
		Retention:       cfg.Retention,
		CleanupInterval: cfg.CleanupInterval,
	}
}

func newServer(cfg config.ServerConfig, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Listen,
		Handler:      h,
		ReadTimeout:  cfg.TimeoutRead,
		WriteTimeout: cfg.TimeoutWrite,
		IdleTimeout:  cfg.TimeoutIdle,
	}
}

// serve runs srv until ctx is cancelled
func serve(ctx context.Context, srv *http.Server, l logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		l.Info().Str("listen_address", srv.Addr).Msg("Listening incoming connections")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	l.Info().Msg("Server exited properly")

	return nil
}
