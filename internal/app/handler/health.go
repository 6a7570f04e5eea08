package handler

import (
	"context"
	"net/http"
	"time"

	"paysaga/internal/app/logger"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		l := logger.Get(ctx, "Handler.Health")
		l.Error().Err(err).Msg("Database unreachable")
		WriteResponse(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	WriteResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}
