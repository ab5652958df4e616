// Package handler exposes the authorization registry over HTTP. The router
// mounts every route here behind the admin token middleware; the registry
// still re-checks the caller so transport misconfiguration cannot widen
// access.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	id "bureau/pkg/domain"
	dErrors "bureau/pkg/domain-errors"
	"bureau/pkg/platform/httputil"
	request "bureau/pkg/platform/middleware/request"
	"bureau/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// Registry defines the authorization operations the HTTP layer needs.
type Registry interface {
	Grant(ctx context.Context, caller, lender id.PrincipalID) error
	Revoke(ctx context.Context, caller, lender id.PrincipalID) error
	IsAuthorized(ctx context.Context, principal id.PrincipalID) (bool, error)
}

// TokenIssuer signs lender bearer tokens.
type TokenIssuer interface {
	Issue(principal id.PrincipalID) (string, error)
}

type Handler struct {
	registry Registry
	issuer   TokenIssuer
	logger   *slog.Logger
}

func New(registry Registry, issuer TokenIssuer, logger *slog.Logger) *Handler {
	return &Handler{registry: registry, issuer: issuer, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/lenders/{principal}/grant", h.HandleGrant)
	r.Post("/admin/lenders/{principal}/revoke", h.HandleRevoke)
	r.Get("/admin/lenders/{principal}", h.HandleGetLender)
	r.Post("/admin/lenders/{principal}/token", h.HandleIssueToken)
}

type LenderResponse struct {
	Principal  string `json:"principal"`
	Authorized bool   `json:"authorized"`
}

type TokenResponse struct {
	Principal string `json:"principal"`
	Token     string `json:"token"`
}

// HandleGrant authorizes a lender to mutate credit profiles.
func (h *Handler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	lender, ok := h.principalParam(w, r)
	if !ok {
		return
	}

	if err := h.registry.Grant(ctx, requestcontext.Principal(ctx), lender); err != nil {
		h.logger.ErrorContext(ctx, "grant failed", "error", err, "request_id", requestID, "lender", lender)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &LenderResponse{
		Principal:  lender.String(),
		Authorized: true,
	})
}

// HandleRevoke withdraws a lender's permission. Idempotent.
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	lender, ok := h.principalParam(w, r)
	if !ok {
		return
	}

	if err := h.registry.Revoke(ctx, requestcontext.Principal(ctx), lender); err != nil {
		h.logger.ErrorContext(ctx, "revoke failed", "error", err, "request_id", requestID, "lender", lender)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &LenderResponse{
		Principal:  lender.String(),
		Authorized: false,
	})
}

// HandleGetLender reports whether a principal is currently authorized.
func (h *Handler) HandleGetLender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lender, ok := h.principalParam(w, r)
	if !ok {
		return
	}

	authorized, err := h.registry.IsAuthorized(ctx, lender)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &LenderResponse{
		Principal:  lender.String(),
		Authorized: authorized,
	})
}

// HandleIssueToken signs a bearer token for a lender. Issuance does not imply
// authorization: a token for an unauthorized principal authenticates but
// every mutation it attempts is denied.
func (h *Handler) HandleIssueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	lender, ok := h.principalParam(w, r)
	if !ok {
		return
	}

	signed, err := h.issuer.Issue(lender)
	if err != nil {
		h.logger.ErrorContext(ctx, "issue token failed", "error", err, "request_id", requestID, "lender", lender)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &TokenResponse{
		Principal: lender.String(),
		Token:     signed,
	})
}

func (h *Handler) principalParam(w http.ResponseWriter, r *http.Request) (id.PrincipalID, bool) {
	principal, err := id.ParsePrincipalID(chi.URLParam(r, "principal"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid principal id"))
		return "", false
	}
	return principal, true
}
