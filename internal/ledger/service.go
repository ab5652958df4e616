// Package ledger is the credit ledger core: per-account profiles, the
// deterministic scoring formula, and the notification stream mutations
// produce. All state changes go through Service, which serializes them per
// account and recomputes the score before anything is persisted.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"bureau/internal/events"
	"bureau/internal/sentinel"
	"bureau/internal/ledger/metrics"
	"bureau/internal/ledger/tracer"
	id "bureau/pkg/domain"
	dErrors "bureau/pkg/domain-errors"
	psync "bureau/pkg/platform/sync"
	"bureau/pkg/requestcontext"
)

// batchConcurrency bounds the fan-out of batch score lookups.
const batchConcurrency = 8

// ProfileStore persists the account -> profile mapping. Declared here so the
// service compiles against the port, not a concrete store.
type ProfileStore interface {
	Find(ctx context.Context, account id.AccountID) (*CreditProfile, error)
	Save(ctx context.Context, account id.AccountID, profile *CreditProfile) error
	Exists(ctx context.Context, account id.AccountID) (bool, error)
}

// Authorizer reports whether a principal may mutate credit data.
type Authorizer interface {
	IsAuthorized(ctx context.Context, principal id.PrincipalID) (bool, error)
}

// EventPublisher emits ledger notifications.
type EventPublisher interface {
	Emit(ctx context.Context, base events.Event) error
}

// Service owns all reads and writes of credit profiles. Mutations serialize
// per account through a sharded lock; the authorization check runs before the
// lock so denied callers never contend with real work.
type Service struct {
	store     ProfileStore
	authz     Authorizer
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    tracer.Tracer
	locks     *psync.ShardedMutex
	now       func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithEventPublisher(publisher EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithClock overrides the time source stamped onto LastUpdated and events.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store ProfileStore, authz Authorizer, opts ...Option) *Service {
	s := &Service{
		store:  store,
		authz:  authz,
		tracer: tracer.NewNoop(),
		locks:  psync.NewShardedMutex(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateProfile overwrites the caller-supplied observations on an account's
// profile and recomputes the score. The profile is created lazily on first
// update; transactions, volume and age replace the stored values wholesale
// rather than accumulating.
func (s *Service) UpdateProfile(ctx context.Context, caller id.PrincipalID, account id.AccountID, transactions, volume, accountAgeDays uint64) (*CreditProfile, error) {
	if err := s.authorize(ctx, caller); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanUpdateProfile,
		tracer.String(tracer.AttrAccount, account.String()),
		tracer.String(tracer.AttrCaller, caller.String()),
	)
	start := s.now()

	s.locks.Lock(account.String())
	defer s.locks.Unlock(account.String())

	profile, created, err := s.findOrCreate(ctx, caller, account)
	if err != nil {
		span.End(err)
		return nil, err
	}

	profile.TotalTransactions = transactions
	profile.TotalVolume = volume
	profile.AccountAgeDays = accountAgeDays
	profile.LastUpdated = start

	if err := s.rescoreAndSave(ctx, account, profile); err != nil {
		span.End(err)
		return nil, err
	}

	s.emit(ctx, events.Event{
		Type:      events.TypeScoreUpdated,
		Account:   account,
		Actor:     caller,
		Device:    requestcontext.Device(ctx),
		Score:     profile.CreditScore,
		Timestamp: s.now(),
	})
	span.SetAttributes(tracer.Int64(tracer.AttrScore, int64(profile.CreditScore)))
	span.End(nil)

	if s.metrics != nil {
		s.metrics.ObserveScore(profile.CreditScore)
		s.metrics.ObserveMutation(start)
	}
	s.log(ctx, "profile updated",
		"account", account,
		"caller", caller,
		"created", created,
		"score", profile.CreditScore,
	)
	return profile, nil
}

// RecordPayment increments the on-time or default counter and recomputes the
// score. Unlike UpdateProfile there is no lazy creation: paying against an
// account nobody has profiled is rejected without leaving a trace. The amount
// is echoed on the notification but never folded into the profile.
func (s *Service) RecordPayment(ctx context.Context, caller id.PrincipalID, account id.AccountID, amount uint64, onTime bool) (*CreditProfile, error) {
	if err := s.authorize(ctx, caller); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanRecordPayment,
		tracer.String(tracer.AttrAccount, account.String()),
		tracer.String(tracer.AttrCaller, caller.String()),
		tracer.Bool(tracer.AttrOnTime, onTime),
	)
	start := s.now()

	s.locks.Lock(account.String())
	defer s.locks.Unlock(account.String())

	profile, err := s.store.Find(ctx, account)
	if err != nil {
		err = s.profileLookupError(err)
		span.End(err)
		return nil, err
	}

	if onTime {
		next, ok := addChecked(profile.OnTimePayments, 1)
		if !ok {
			err := dErrors.New(dErrors.CodeInvariantViolation, "on-time payment counter overflow")
			span.End(err)
			return nil, err
		}
		profile.OnTimePayments = next
	} else {
		next, ok := addChecked(profile.DefaultCount, 1)
		if !ok {
			err := dErrors.New(dErrors.CodeInvariantViolation, "default counter overflow")
			span.End(err)
			return nil, err
		}
		profile.DefaultCount = next
	}
	profile.LastUpdated = start

	if err := s.rescoreAndSave(ctx, account, profile); err != nil {
		span.End(err)
		return nil, err
	}

	device := requestcontext.Device(ctx)
	s.emit(ctx, events.Event{
		Type:      events.TypePaymentRecorded,
		Account:   account,
		Actor:     caller,
		Device:    device,
		Amount:    amount,
		OnTime:    onTime,
		Timestamp: s.now(),
	})
	s.emit(ctx, events.Event{
		Type:      events.TypeScoreUpdated,
		Account:   account,
		Actor:     caller,
		Device:    device,
		Score:     profile.CreditScore,
		Timestamp: s.now(),
	})
	span.SetAttributes(tracer.Int64(tracer.AttrScore, int64(profile.CreditScore)))
	span.End(nil)

	if s.metrics != nil {
		s.metrics.IncrementPaymentsRecorded(onTime)
		s.metrics.ObserveScore(profile.CreditScore)
		s.metrics.ObserveMutation(start)
	}
	s.log(ctx, "payment recorded",
		"account", account,
		"caller", caller,
		"on_time", onTime,
		"score", profile.CreditScore,
	)
	return profile, nil
}

// GetProfile returns the stored profile for an account.
func (s *Service) GetProfile(ctx context.Context, account id.AccountID) (*CreditProfile, error) {
	profile, err := s.store.Find(ctx, account)
	if err != nil {
		return nil, s.profileLookupError(err)
	}
	return profile, nil
}

// GetCreditScore returns the score persisted by the last mutation.
func (s *Service) GetCreditScore(ctx context.Context, account id.AccountID) (uint64, error) {
	profile, err := s.GetProfile(ctx, account)
	if err != nil {
		return 0, err
	}
	return profile.CreditScore, nil
}

// CalculateScore recomputes the score from the stored profile without
// persisting anything. It always agrees with the stored score; the endpoint
// exists so consumers can verify that.
func (s *Service) CalculateScore(ctx context.Context, account id.AccountID) (uint64, error) {
	profile, err := s.GetProfile(ctx, account)
	if err != nil {
		return 0, err
	}
	return ComputeScore(profile)
}

// GetCreditRating maps the stored score to its coarse bucket.
func (s *Service) GetCreditRating(ctx context.Context, account id.AccountID) (Rating, error) {
	score, err := s.GetCreditScore(ctx, account)
	if err != nil {
		return "", err
	}
	return RatingFor(score), nil
}

// HasProfile reports whether an account has been profiled. Missing accounts
// are a false, not an error.
func (s *Service) HasProfile(ctx context.Context, account id.AccountID) (bool, error) {
	exists, err := s.store.Exists(ctx, account)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check profile existence")
	}
	return exists, nil
}

// ScoreBatch looks up stored scores for many accounts concurrently. Accounts
// without a profile are omitted from the result; any other failure aborts the
// batch.
func (s *Service) ScoreBatch(ctx context.Context, accounts []id.AccountID) (map[id.AccountID]uint64, error) {
	results := make(map[id.AccountID]uint64, len(accounts))
	if len(accounts) == 0 {
		return results, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for _, account := range accounts {
		account := account
		g.Go(func() error {
			score, err := s.GetCreditScore(ctx, account)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeNotFound) {
					return nil
				}
				return err
			}
			mu.Lock()
			results[account] = score
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// findOrCreate loads the profile or lazily creates an empty active one,
// emitting the creation notification before any field is assigned. Must be
// called with the account lock held.
func (s *Service) findOrCreate(ctx context.Context, caller id.PrincipalID, account id.AccountID) (*CreditProfile, bool, error) {
	profile, err := s.store.Find(ctx, account)
	if err == nil {
		return profile, false, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credit profile")
	}

	profile = &CreditProfile{Active: true}
	s.emit(ctx, events.Event{
		Type:      events.TypeProfileCreated,
		Account:   account,
		Actor:     caller,
		Device:    requestcontext.Device(ctx),
		Timestamp: s.now(),
	})
	if s.metrics != nil {
		s.metrics.IncrementProfilesCreated()
	}
	return profile, true, nil
}

// rescoreAndSave recomputes the score into the profile and persists it.
func (s *Service) rescoreAndSave(ctx context.Context, account id.AccountID, profile *CreditProfile) error {
	score, err := ComputeScore(profile)
	if err != nil {
		return err
	}
	profile.CreditScore = score
	if err := s.store.Save(ctx, account, profile); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save credit profile")
	}
	return nil
}

func (s *Service) authorize(ctx context.Context, caller id.PrincipalID) error {
	allowed, err := s.authz.IsAuthorized(ctx, caller)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check authorization")
	}
	if !allowed {
		s.log(ctx, "mutation denied", "caller", caller)
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not an authorized lender")
	}
	return nil
}

func (s *Service) profileLookupError(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "credit profile not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credit profile")
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit credit event", "error", err, "type", event.Type)
	}
}

func (s *Service) log(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}
