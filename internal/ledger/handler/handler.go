// Package handler is the HTTP surface of the credit ledger. It decodes and
// validates requests, resolves the caller from the request context, and
// delegates to the ledger service; no scoring or authorization logic lives
// here.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bureau/internal/events"
	"bureau/internal/ledger"
	id "bureau/pkg/domain"
	dErrors "bureau/pkg/domain-errors"
	"bureau/pkg/platform/httputil"
	request "bureau/pkg/platform/middleware/request"
	"bureau/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// Service defines the ledger operations the HTTP layer needs.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	UpdateProfile(ctx context.Context, caller id.PrincipalID, account id.AccountID, transactions, volume, accountAgeDays uint64) (*ledger.CreditProfile, error)
	RecordPayment(ctx context.Context, caller id.PrincipalID, account id.AccountID, amount uint64, onTime bool) (*ledger.CreditProfile, error)
	GetProfile(ctx context.Context, account id.AccountID) (*ledger.CreditProfile, error)
	GetCreditScore(ctx context.Context, account id.AccountID) (uint64, error)
	CalculateScore(ctx context.Context, account id.AccountID) (uint64, error)
	GetCreditRating(ctx context.Context, account id.AccountID) (ledger.Rating, error)
	HasProfile(ctx context.Context, account id.AccountID) (bool, error)
	ScoreBatch(ctx context.Context, accounts []id.AccountID) (map[id.AccountID]uint64, error)
}

// EventLister reads the per-account notification history.
type EventLister interface {
	List(ctx context.Context, account id.AccountID) ([]events.Event, error)
}

type Handler struct {
	service Service
	lister  EventLister
	logger  *slog.Logger
}

func New(service Service, lister EventLister, logger *slog.Logger) *Handler {
	return &Handler{service: service, lister: lister, logger: logger}
}

// RegisterReads wires the read-only endpoints.
func (h *Handler) RegisterReads(r chi.Router) {
	r.Get("/v1/profiles/{account}", h.HandleGetProfile)
	r.Get("/v1/profiles/{account}/score", h.HandleGetScore)
	r.Get("/v1/profiles/{account}/score/fresh", h.HandleGetFreshScore)
	r.Get("/v1/profiles/{account}/rating", h.HandleGetRating)
	r.Get("/v1/profiles/{account}/exists", h.HandleExists)
	r.Get("/v1/profiles/{account}/events", h.HandleListEvents)
	r.Post("/v1/scores", h.HandleScoreBatch)
}

// RegisterMutations wires the endpoints that change profiles; the router
// mounts these behind lender token authentication.
func (h *Handler) RegisterMutations(r chi.Router) {
	r.Post("/v1/profiles/{account}", h.HandleUpdateProfile)
	r.Post("/v1/profiles/{account}/payments", h.HandleRecordPayment)
}

// HandleUpdateProfile overwrites an account's observed activity.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	profile, err := h.service.UpdateProfile(ctx, caller, account, req.Transactions, req.Volume, req.AccountAgeDays)
	if err != nil {
		h.logger.ErrorContext(ctx, "update profile failed", "error", err, "request_id", requestID, "account", account)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toProfileResponse(account, profile))
}

// HandleRecordPayment records an on-time or defaulted payment.
func (h *Handler) HandleRecordPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}
	caller, ok := h.caller(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[RecordPaymentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	profile, err := h.service.RecordPayment(ctx, caller, account, req.Amount, *req.OnTime)
	if err != nil {
		h.logger.ErrorContext(ctx, "record payment failed", "error", err, "request_id", requestID, "account", account)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toProfileResponse(account, profile))
}

func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(ctx, account)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toProfileResponse(account, profile))
}

func (h *Handler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}

	score, err := h.service.GetCreditScore(ctx, account)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &ScoreResponse{
		Account: account.String(),
		Score:   score,
		Rating:  string(ledger.RatingFor(score)),
	})
}

// HandleGetFreshScore recomputes the score from stored state instead of
// returning the persisted value. The two always agree; this endpoint lets
// consumers verify that.
func (h *Handler) HandleGetFreshScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}

	score, err := h.service.CalculateScore(ctx, account)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &ScoreResponse{
		Account: account.String(),
		Score:   score,
		Rating:  string(ledger.RatingFor(score)),
	})
}

func (h *Handler) HandleGetRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}

	rating, err := h.service.GetCreditRating(ctx, account)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"account": account.String(),
		"rating":  string(rating),
	})
}

func (h *Handler) HandleExists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}

	exists, err := h.service.HasProfile(ctx, account)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &ExistsResponse{
		Account: account.String(),
		Exists:  exists,
	})
}

func (h *Handler) HandleScoreBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ScoreBatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	scores, err := h.service.ScoreBatch(ctx, req.AccountIDs())
	if err != nil {
		h.logger.ErrorContext(ctx, "batch score failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	out := make(map[string]uint64, len(scores))
	for account, score := range scores {
		out[account.String()] = score
	}
	httputil.WriteJSON(w, http.StatusOK, &BatchScoresResponse{Scores: out})
}

func (h *Handler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}

	all, err := h.lister.List(ctx, account)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	responses := make([]EventResponse, 0, len(all))
	for _, e := range all {
		responses = append(responses, toEventResponse(e))
	}
	httputil.WriteJSON(w, http.StatusOK, &EventListResponse{
		Account: account.String(),
		Events:  responses,
	})
}

func (h *Handler) accountParam(w http.ResponseWriter, r *http.Request) (id.AccountID, bool) {
	account, err := id.ParseAccountID(chi.URLParam(r, "account"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid account id"))
		return "", false
	}
	return account, true
}

// caller resolves the authenticated principal attached by the token
// middleware. An empty principal means the route was mounted without
// authentication, which is a wiring bug, not a client error.
func (h *Handler) caller(w http.ResponseWriter, ctx context.Context) (id.PrincipalID, bool) {
	caller := requestcontext.Principal(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "caller identity missing"))
		return "", false
	}
	return caller, true
}
