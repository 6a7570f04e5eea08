package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"paysaga/internal/app/app"
	"paysaga/internal/app/config"
	"paysaga/internal/app/logger"
)

func main() {
	// setting up signal capturing
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		osCall := <-stop
		logger.Global().Info().Str("signal", fmt.Sprintf("%+v", osCall)).Msg("System call")
		cancel()
	}()

	c := config.New()
	if err := c.Load("orders", os.Args[1:]); err != nil {
		logger.Global().Fatal().Err(err).Msg("Config load failed")
	}

	if err := runServer(ctx, c); err != nil {
		logger.Global().Fatal().Err(err).Msg("Server run failed")
	}
}

func runServer(ctx context.Context, c config.Config) error {
	l := logger.New(c.LogVerbose, c.LogPretty)

	a, err := app.NewOrders(ctx, c, l)
	if err != nil {
		return fmt.Errorf("app init: %w", err)
	}
	defer a.Stop()

	l.Info().Msg("Server started")
	if err := a.Run(ctx); err != nil {
		return err
	}
	l.Info().Msg("Server stopped")

	return nil
}
