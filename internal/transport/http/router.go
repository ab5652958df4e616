// Package httptransport assembles the bureau's HTTP surface: ledger and
// registry handlers, health and metrics endpoints, and the middleware chain.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authzhandler "bureau/internal/authz/handler"
	ledgerhandler "bureau/internal/ledger/handler"
	"bureau/internal/platform/health"
	id "bureau/pkg/domain"
	"bureau/pkg/platform/middleware/admin"
	"bureau/pkg/platform/middleware/auth"
	"bureau/pkg/platform/middleware/device"
	request "bureau/pkg/platform/middleware/request"
)

// requestTimeout bounds a single request end to end.
const requestTimeout = 30 * time.Second

// RouterConfig carries everything the router needs to assemble the surface.
type RouterConfig struct {
	Ledger         *ledgerhandler.Handler
	Registry       *authzhandler.Handler
	Health         *health.Handler
	TokenValidator auth.TokenValidator
	AdminToken     admin.TokenConfig
	AdminPrincipal id.PrincipalID
	Logger         *slog.Logger
}

// NewRouter wires all endpoints with the middleware chain. Reads are open,
// profile mutations require a lender bearer token, and registry operations
// require the admin token.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(cfg.Logger))
	r.Use(request.Timeout(requestTimeout))
	r.Use(device.Capture)

	cfg.Health.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	cfg.Ledger.RegisterReads(r)

	r.Group(func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		r.Use(auth.RequireLenderToken(cfg.TokenValidator, cfg.Logger))
		cfg.Ledger.RegisterMutations(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(cfg.AdminToken, cfg.AdminPrincipal, cfg.Logger))
		cfg.Registry.Register(r)
	})

	return r
}
