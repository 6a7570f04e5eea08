package app

import (
	"context"
	"fmt"

	"paysaga/internal/app/config"
	"paysaga/internal/app/logger"
	"paysaga/internal/app/metrics"
	"paysaga/internal/app/service/outbox"
	"paysaga/internal/app/service/payment"
	"paysaga/internal/app/storage/postgres"
	"paysaga/pkg/message"
)

// Payments owns the accounts ledger, settles payment requests and relays
// payment results through its outbox.
type Payments struct {
	config    config.Config
	log       logger.Logger
	infra     *Infra
	accounts  *payment.Accounts
	processor *payment.Processor
	publisher *outbox.Publisher
}

// NewPayments connects to the configured infrastructure
func NewPayments(ctx context.Context, cfg config.Config, l logger.Logger) (*Payments, error) {
	l = l.WithService("payments")

	inf, err := OpenInfra(ctx, cfg, l, migrationsPayments)
	if err != nil {
		return nil, err
	}

	a, err := NewPaymentsWith(cfg, l, inf)
	if err != nil {
		inf.Close()
		return nil, err
	}
	return a, nil
}

// NewPaymentsWith builds the service on top of an already migrated database
func NewPaymentsWith(cfg config.Config, l logger.Logger, inf *Infra) (*Payments, error) {
	metrics.Register()

	accounts, err := postgres.NewAccountRepository(inf.DB)
	if err != nil {
		return nil, fmt.Errorf("account repository init: %w", err)
	}
	transactions, err := postgres.NewTransactionRepository(inf.DB)
	if err != nil {
		return nil, fmt.Errorf("transaction repository init: %w", err)
	}
	ob, err := postgres.NewOutboxRepository(inf.DB)
	if err != nil {
		return nil, fmt.Errorf("outbox repository init: %w", err)
	}
	ib, err := postgres.NewInboxRepository(inf.DB)
	if err != nil {
		return nil, fmt.Errorf("inbox repository init: %w", err)
	}

	return &Payments{
		config:    cfg,
		log:       l,
		infra:     inf,
		accounts:  payment.NewAccounts(inf.DB, accounts, transactions),
		processor: payment.NewProcessor(inf.DB, accounts, transactions, ob, ib, inf.Poison),
		publisher: outbox.New(outboxConfig(cfg.Outbox), inf.DB, ob, inf.Publisher, l),
	}, nil
}

// Run blocks until ctx is cancelled or one of the loops fails
func (a *Payments) Run(ctx context.Context) error {
	return run(ctx, a.log, newServer(a.config.Server, a.Router()), a.publisher,
		func(ctx context.Context) error {
			return a.infra.Subscriber.Subscribe(ctx, message.QueuePaymentRequests, a.processor.Handle)
		},
	)
}

func (a *Payments) Stop() {
	a.infra.Close()
	a.log.Info().Msg("Shutting down application")
}
