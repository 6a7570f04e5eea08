package middleware

import (
	"net/http"
	"strings"

	"paysaga/internal/app/apperr"
	"paysaga/internal/app/handler"
	"paysaga/internal/app/logger"
	"paysaga/pkg/api"
)

// UserID puts the caller identity from the request header into the context.
// There is no authentication, the header is trusted as is.
func UserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.Get(r.Context(), "Middleware.UserID")

		userID := strings.TrimSpace(r.Header.Get(api.HeaderUserID))
		if userID == "" {
			log.Debug().Msg("Missing user id header")
			handler.WriteError(w, apperr.ErrMissingUserID)
			return
		}

		r = r.WithContext(handler.WithContextUser(r.Context(), userID))
		next.ServeHTTP(w, r)
	})
}
