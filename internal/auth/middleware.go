package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/omar-zaman/omam-fms/internal/platform/httpx"
)

// Middleware guards protected routes with bearer-token authentication.
type Middleware struct {
	Tokens *TokenStore
	Logger *slog.Logger
}

// Require rejects requests without a valid Authorization header.
func (m Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			httpx.Msg(w, http.StatusUnauthorized, "No token provided, authorization denied")
			return
		}

		userID, err := m.Tokens.Resolve(r.Context(), parts[1])
		if err != nil {
			if !errors.Is(err, ErrTokenInvalid) && m.Logger != nil {
				m.Logger.Error("resolve token", slog.Any("error", err))
			}
			httpx.Msg(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
	})
}
