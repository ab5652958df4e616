package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	id "bureau/pkg/domain"
	"bureau/pkg/requestcontext"
	"bureau/pkg/secrets"
)

// TokenConfig controls how the admin token is verified. Exactly one of Plain
// or BcryptHash should be set; when both are present the hash wins.
type TokenConfig struct {
	Plain      string
	BcryptHash string
}

// RequireAdminToken guards administrative routes. The X-Admin-Token header is
// compared in constant time (or verified against a bcrypt hash), and the
// configured admin principal is attached to the request context so the
// authorization registry sees the same caller identity as any other mutation.
func RequireAdminToken(cfg TokenConfig, adminPrincipal id.PrincipalID, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Admin-Token")
			if !tokenValid(cfg, token) {
				ctx := r.Context()
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin token required"}`))
				return
			}

			ctx := requestcontext.WithPrincipal(r.Context(), adminPrincipal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenValid(cfg TokenConfig, token string) bool {
	if token == "" {
		return false
	}
	if cfg.BcryptHash != "" {
		return secrets.Verify(token, cfg.BcryptHash) == nil
	}
	if cfg.Plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Plain)) == 1
}
