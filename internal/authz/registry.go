// Package authz owns the lender authorization registry: a single
// administrative principal, fixed at construction, manages the set of
// principals permitted to mutate credit profiles.
package authz

import (
	"context"
	"log/slog"
	"time"

	authzmetrics "bureau/internal/authz/metrics"
	"bureau/internal/events"
	id "bureau/pkg/domain"
	dErrors "bureau/pkg/domain-errors"
	"bureau/pkg/requestcontext"
)

// Store persists the principal -> permission flag mapping.
type Store interface {
	Set(ctx context.Context, principal id.PrincipalID, allowed bool) error
	Get(ctx context.Context, principal id.PrincipalID) (bool, error)
}

// EventPublisher emits registry notifications.
type EventPublisher interface {
	Emit(ctx context.Context, base events.Event) error
}

// Registry gates which principals may mutate credit data.
type Registry struct {
	admin     id.PrincipalID
	store     Store
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *authzmetrics.Metrics
	now       func() time.Time
}

type Option func(r *Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func WithEventPublisher(publisher EventPublisher) Option {
	return func(r *Registry) {
		r.publisher = publisher
	}
}

func WithMetrics(m *authzmetrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// WithClock overrides the time source. The hosting environment supplies the
// timestamps that land on notifications; tests pin them.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// New constructs the registry. The admin principal cannot change afterwards;
// there is no ownership-transfer operation.
func New(admin id.PrincipalID, store Store, opts ...Option) (*Registry, error) {
	if admin.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "admin principal required")
	}
	r := &Registry{admin: admin, store: store, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Admin returns the administrative principal.
func (r *Registry) Admin() id.PrincipalID {
	return r.admin
}

// Grant authorizes a lender to mutate profiles. Admin-only and idempotent;
// granting the admin itself or an already-granted lender is accepted.
func (r *Registry) Grant(ctx context.Context, caller, lender id.PrincipalID) error {
	if err := r.requireAdmin(ctx, caller); err != nil {
		return err
	}
	if lender.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "lender principal required")
	}

	if err := r.store.Set(ctx, lender, true); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant lender")
	}

	r.emit(ctx, events.Event{
		Type:      events.TypeLenderAuthorized,
		Principal: lender,
		Actor:     caller,
		Device:    requestcontext.Device(ctx),
		Timestamp: r.now(),
	})
	if r.metrics != nil {
		r.metrics.LendersGranted.Inc()
	}
	r.log(ctx, "lender granted", "lender", lender)
	return nil
}

// Revoke removes a lender's permission. Admin-only and idempotent; revoking
// an unknown principal is not an error. Unlike Grant, no event is emitted.
func (r *Registry) Revoke(ctx context.Context, caller, lender id.PrincipalID) error {
	if err := r.requireAdmin(ctx, caller); err != nil {
		return err
	}
	if lender.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "lender principal required")
	}

	if err := r.store.Set(ctx, lender, false); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke lender")
	}

	if r.metrics != nil {
		r.metrics.LendersRevoked.Inc()
	}
	r.log(ctx, "lender revoked", "lender", lender)
	return nil
}

// IsAuthorized reports whether a principal may mutate profiles.
// Unknown principals are unauthorized.
func (r *Registry) IsAuthorized(ctx context.Context, principal id.PrincipalID) (bool, error) {
	allowed, err := r.store.Get(ctx, principal)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check authorization")
	}
	return allowed, nil
}

func (r *Registry) requireAdmin(ctx context.Context, caller id.PrincipalID) error {
	if caller != r.admin {
		if r.metrics != nil {
			r.metrics.DeniedMutations.Inc()
		}
		r.log(ctx, "registry mutation denied", "caller", caller)
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the registry admin")
	}
	return nil
}

func (r *Registry) emit(ctx context.Context, event events.Event) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Emit(ctx, event); err != nil && r.logger != nil {
		r.logger.ErrorContext(ctx, "failed to emit registry event", "error", err, "type", event.Type)
	}
}

func (r *Registry) log(ctx context.Context, msg string, args ...any) {
	if r.logger != nil {
		r.logger.InfoContext(ctx, msg, args...)
	}
}
