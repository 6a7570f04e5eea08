// Command simulate drives a deposit and two orders through running orders
// and payments services and reports how each order ended.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"paysaga/internal/app/logger"
	"paysaga/pkg/api"
)

type options struct {
	ordersURL   string
	paymentsURL string
	userID      string
	deposit     string
	orders      []string
	timeout     time.Duration
	poll        time.Duration
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	o := options{}
	flags := pflag.NewFlagSet("simulate", pflag.ExitOnError)
	flags.StringVar(&o.ordersURL, "orders-url", "http://localhost:8080", "Orders service base URL")
	flags.StringVar(&o.paymentsURL, "payments-url", "http://localhost:8081", "Payments service base URL")
	flags.StringVarP(&o.userID, "user", "u", "", "User id, random when empty")
	flags.StringVar(&o.deposit, "deposit", "100", "Amount deposited before ordering")
	flags.StringSliceVar(&o.orders, "order", []string{"40", "80"}, "Order amounts, placed one after another")
	flags.DurationVar(&o.timeout, "timeout", 30*time.Second, "How long to wait for an order to settle")
	flags.DurationVar(&o.poll, "poll", 500*time.Millisecond, "Order status poll interval")
	_ = flags.Parse(os.Args[1:])

	if o.userID == "" {
		o.userID = "sim-" + xid.New().String()
	}

	l := logger.New(false, true)
	if err := simulate(ctx, o, l); err != nil {
		l.Fatal().Err(err).Msg("Simulation failed")
	}
}

func simulate(ctx context.Context, o options, l logger.Logger) error {
	l = logger.Logger{Logger: l.With().Str("user", o.userID).Logger()}
	payments := api.NewClient(o.paymentsURL, api.WithLogger(l.Logger))
	orders := api.NewClient(o.ordersURL, api.WithLogger(l.Logger))

	if _, err := payments.CreateAccount(ctx, o.userID); err != nil {
		var re *api.RemoteError
		if !errors.As(err, &re) || re.StatusCode != http.StatusConflict {
			return fmt.Errorf("create account: %w", err)
		}
		l.Info().Msg("Account already exists")
	}

	amount, err := decimal.NewFromString(o.deposit)
	if err != nil {
		return fmt.Errorf("deposit amount: %w", err)
	}
	dep, err := payments.Deposit(ctx, o.userID, amount)
	if err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	l.Info().Stringer("balance", dep.Balance).Msg("Deposited")

	for _, raw := range o.orders {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("order amount %q: %w", raw, err)
		}

		created, err := orders.CreateOrder(ctx, o.userID, amount, "simulated order")
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		final, err := waitSettled(ctx, orders, o, created.ID)
		if err != nil {
			return err
		}

		bal, err := payments.Balance(ctx, o.userID)
		if err != nil {
			return fmt.Errorf("balance: %w", err)
		}
		l.Info().
			Str("order_id", final.ID.String()).
			Stringer("amount", final.Amount).
			Str("status", final.Status).
			Stringer("balance", bal.Balance).
			Msg("Order settled")
	}

	return nil
}

func waitSettled(ctx context.Context, c *api.Client, o options, id uuid.UUID) (*api.OrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	t := time.NewTicker(o.poll)
	defer t.Stop()

	for {
		res, err := c.Order(ctx, o.userID, id)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", id, err)
		}
		if res.Status != "NEW" {
			return res, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("order %s still NEW: %w", id, ctx.Err())
		case <-t.C:
		}
	}
}
