package middleware

import (
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"paysaga/internal/app/logger"
)

// Log attaches a request scoped logger and writes an access record per request
func Log(l logger.Logger) func(next http.Handler) http.Handler {
	chain := alice.New(
		hlog.NewHandler(l.Logger),
		hlog.RequestIDHandler("req_id", "X-Request-Id"),
		hlog.RemoteAddrHandler("remote_addr"),
		hlog.MethodHandler("method"),
		hlog.URLHandler("url"),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			lvl := zerolog.InfoLevel
			if status >= http.StatusInternalServerError {
				lvl = zerolog.WarnLevel
			}
			hlog.FromRequest(r).WithLevel(lvl).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("Request served")
		}),
	)

	return chain.Then
}
