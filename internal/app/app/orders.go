package app

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"
	"paysaga/internal/app/config"
	"paysaga/internal/app/logger"
	"paysaga/internal/app/metrics"
	"paysaga/internal/app/service/ordering"
	"paysaga/internal/app/service/orderstatus"
	"paysaga/internal/app/service/outbox"
	"paysaga/internal/app/storage/postgres"
	"paysaga/pkg/message"
)

// Orders accepts orders over HTTP, relays payment requests through its
// outbox and applies payment results to order status.
type Orders struct {
	config    config.Config
	log       logger.Logger
	infra     *Infra
	ordering  *ordering.Service
	updater   *orderstatus.Updater
	publisher *outbox.Publisher
}

// NewOrders connects to the configured infrastructure
func NewOrders(ctx context.Context, cfg config.Config, l logger.Logger) (*Orders, error) {
	l = l.WithService("orders")

	inf, err := OpenInfra(ctx, cfg, l, migrationsOrders)
	if err != nil {
		return nil, err
	}

	a, err := NewOrdersWith(cfg, l, inf)
	if err != nil {
		inf.Close()
		return nil, err
	}
	return a, nil
}

// NewOrdersWith builds the service on top of an already migrated database
func NewOrdersWith(cfg config.Config, l logger.Logger, inf *Infra) (*Orders, error) {
	metrics.Register()

	orders, err := postgres.NewOrderRepository(inf.DB)
	if err != nil {
		return nil, fmt.Errorf("order repository init: %w", err)
	}
	ob, err := postgres.NewOutboxRepository(inf.DB)
	if err != nil {
		return nil, fmt.Errorf("outbox repository init: %w", err)
	}

	return &Orders{
		config:    cfg,
		log:       l,
		infra:     inf,
		ordering:  ordering.New(inf.DB, orders, ob),
		updater:   orderstatus.New(inf.DB, orders, inf.Poison),
		publisher: outbox.New(outboxConfig(cfg.Outbox), inf.DB, ob, inf.Publisher, l),
	}, nil
}

// Run blocks until ctx is cancelled or one of the loops fails
func (a *Orders) Run(ctx context.Context) error {
	return run(ctx, a.log, newServer(a.config.Server, a.Router()), a.publisher,
		func(ctx context.Context) error {
			return a.infra.Subscriber.Subscribe(ctx, message.QueuePaymentResults, a.updater.Handle)
		},
	)
}

func (a *Orders) Stop() {
	a.infra.Close()
	a.log.Info().Msg("Shutting down application")
}

// run supervises the http server, the outbox relay and the consumer loop
func run(ctx context.Context, l logger.Logger, srv *http.Server, pub *outbox.Publisher, consume func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serve(ctx, srv, l)
	})
	g.Go(func() error {
		return pub.Run(ctx)
	})
	g.Go(func() error {
		return consume(ctx)
	})
	return g.Wait()
}
