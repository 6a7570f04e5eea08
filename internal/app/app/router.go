package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/justinas/alice"
	"paysaga/internal/app/handler"
	"paysaga/internal/app/logger"
	"paysaga/internal/app/metrics"
	middleware2 "paysaga/internal/app/middleware"
)

// baseRouter serves the endpoints both services share, api routes are mounted by the caller
func baseRouter(l logger.Logger, db handler.Pinger) chi.Router {
	r := chi.NewRouter()
	r.Use(alice.New(middleware.Recoverer, middleware2.Log(l), metrics.HTTPMiddleware).Then)

	hh := handler.NewHealthHandler(db)
	r.Get("/health", hh.Check)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

func (a *Orders) Router() http.Handler {
	r := baseRouter(a.log, a.infra.DB)

	oh := handler.NewOrderHandler(a.ordering)
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware2.UserID)
		r.Post("/", oh.Create)
		r.Get("/", oh.List)
		r.Get("/{orderID}", oh.Get)
	})

	return r
}

func (a *Payments) Router() http.Handler {
	r := baseRouter(a.log, a.infra.DB)

	ah := handler.NewAccountHandler(a.accounts)
	r.Route("/api/accounts", func(r chi.Router) {
		r.Use(middleware2.UserID)
		r.Post("/", ah.Create)
		r.Post("/deposit", ah.Deposit)
		r.Get("/balance", ah.Balance)
		r.Get("/transactions", ah.Transactions)
	})

	return r
}
