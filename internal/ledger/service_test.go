package ledger_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"bureau/internal/events"
	"bureau/internal/ledger"
	"bureau/internal/ledger/store"
	id "bureau/pkg/domain"
	dErrors "bureau/pkg/domain-errors"
)

// allowlistAuthorizer authorizes exactly the principals it was built with.
type allowlistAuthorizer struct {
	mu      sync.Mutex
	allowed map[id.PrincipalID]bool
}

func allow(principals ...id.PrincipalID) *allowlistAuthorizer {
	a := &allowlistAuthorizer{allowed: make(map[id.PrincipalID]bool)}
	for _, p := range principals {
		a.allowed[p] = true
	}
	return a
}

func (a *allowlistAuthorizer) IsAuthorized(_ context.Context, principal id.PrincipalID) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allowed[principal], nil
}

// ServiceSuite exercises the ledger state machine end to end against the
// in-memory store with a pinned clock and a synchronous event sink.
type ServiceSuite struct {
	suite.Suite
	service *ledger.Service
	store   *store.InMemory
	sink    *events.InMemoryStore
	clock   time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

const (
	lender  id.PrincipalID = "lender-1"
	nobody  id.PrincipalID = "stranger"
	account id.AccountID   = "acct:0xabc"
)

func (s *ServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.sink = events.NewInMemoryStore()
	s.clock = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.service = ledger.NewService(s.store, allow(lender),
		ledger.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		ledger.WithEventPublisher(events.NewPublisher(s.sink)),
		ledger.WithClock(func() time.Time { return s.clock }),
	)
}

func (s *ServiceSuite) accountEvents() []events.Event {
	all, err := s.sink.ListByAccount(context.Background(), account)
	s.Require().NoError(err)
	return all
}

func (s *ServiceSuite) TestUpdateProfileCreatesLazily() {
	ctx := context.Background()

	profile, err := s.service.UpdateProfile(ctx, lender, account, 500, 5*ledger.OneUnit, 100)
	s.Require().NoError(err)

	s.Equal(uint64(500), profile.TotalTransactions)
	s.Equal(5*ledger.OneUnit, profile.TotalVolume)
	s.Equal(uint64(100), profile.AccountAgeDays)
	s.True(profile.Active)
	s.Equal(s.clock, profile.LastUpdated)
	s.Equal(uint64(460), profile.CreditScore)

	all := s.accountEvents()
	s.Require().Len(all, 2)
	s.Equal(events.TypeProfileCreated, all[0].Type)
	s.Equal(lender, all[0].Actor)
	s.Equal(events.TypeScoreUpdated, all[1].Type)
	s.Equal(uint64(460), all[1].Score)
}

func (s *ServiceSuite) TestUpdateProfileOverwrites() {
	ctx := context.Background()

	_, err := s.service.UpdateProfile(ctx, lender, account, 500, 5*ledger.OneUnit, 100)
	s.Require().NoError(err)
	profile, err := s.service.UpdateProfile(ctx, lender, account, 10, 0, 0)
	s.Require().NoError(err)

	// Observations replace, never accumulate.
	s.Equal(uint64(10), profile.TotalTransactions)
	s.Equal(uint64(0), profile.TotalVolume)
	s.Equal(uint64(0), profile.AccountAgeDays)
	s.Equal(uint64(302), profile.CreditScore)

	all := s.accountEvents()
	s.Require().Len(all, 3)
	s.Equal(events.TypeProfileCreated, all[0].Type)
	s.Equal(events.TypeScoreUpdated, all[1].Type)
	s.Equal(events.TypeScoreUpdated, all[2].Type)
}

func (s *ServiceSuite) TestUpdateProfileUnauthorized() {
	ctx := context.Background()

	_, err := s.service.UpdateProfile(ctx, nobody, account, 500, 0, 0)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	// No profile, no events: the denied call leaves no trace.
	exists, err := s.service.HasProfile(ctx, account)
	s.Require().NoError(err)
	s.False(exists)
	s.Empty(s.accountEvents())
}

func (s *ServiceSuite) TestRecordPaymentOnTime() {
	ctx := context.Background()

	_, err := s.service.UpdateProfile(ctx, lender, account, 500, 5*ledger.OneUnit, 100)
	s.Require().NoError(err)

	profile, err := s.service.RecordPayment(ctx, lender, account, 1, true)
	s.Require().NoError(err)
	s.Equal(uint64(1), profile.OnTimePayments)
	s.Equal(uint64(0), profile.DefaultCount)
	// Perfect payment history adds the full 200-point factor.
	s.Equal(uint64(660), profile.CreditScore)
	// Amount is echoed on the event, never folded into volume.
	s.Equal(5*ledger.OneUnit, profile.TotalVolume)

	all := s.accountEvents()
	s.Require().Len(all, 4)
	s.Equal(events.TypePaymentRecorded, all[2].Type)
	s.Equal(uint64(1), all[2].Amount)
	s.True(all[2].OnTime)
	s.Equal(events.TypeScoreUpdated, all[3].Type)
	s.Equal(uint64(660), all[3].Score)
}

func (s *ServiceSuite) TestRecordPaymentDefault() {
	ctx := context.Background()

	_, err := s.service.UpdateProfile(ctx, lender, account, 0, 0, 0)
	s.Require().NoError(err)

	profile, err := s.service.RecordPayment(ctx, lender, account, 42, false)
	s.Require().NoError(err)
	s.Equal(uint64(1), profile.DefaultCount)
	s.Equal(uint64(0), profile.OnTimePayments)
	// Ratio 0 and a fully clamped penalty leave the score at base.
	s.Equal(ledger.BaseScore, profile.CreditScore)
}

func (s *ServiceSuite) TestRecordPaymentMissingProfile() {
	ctx := context.Background()

	_, err := s.service.RecordPayment(ctx, lender, account, 1, true)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	// No lazy creation and no events on the failure path.
	exists, err := s.service.HasProfile(ctx, account)
	s.Require().NoError(err)
	s.False(exists)
	s.Empty(s.accountEvents())
}

func (s *ServiceSuite) TestRecordPaymentUnauthorized() {
	ctx := context.Background()

	_, err := s.service.UpdateProfile(ctx, lender, account, 0, 0, 0)
	s.Require().NoError(err)

	_, err = s.service.RecordPayment(ctx, nobody, account, 1, true)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	profile, err := s.service.GetProfile(ctx, account)
	s.Require().NoError(err)
	s.Equal(uint64(0), profile.OnTimePayments)
}

func (s *ServiceSuite) TestRecordPaymentCounterOverflow() {
	ctx := context.Background()

	seeded := &ledger.CreditProfile{OnTimePayments: math.MaxUint64, Active: true}
	s.Require().NoError(s.store.Save(ctx, account, seeded))

	_, err := s.service.RecordPayment(ctx, lender, account, 1, true)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	// The stored profile is untouched.
	profile, err := s.service.GetProfile(ctx, account)
	s.Require().NoError(err)
	s.Equal(uint64(math.MaxUint64), profile.OnTimePayments)
	s.Empty(s.accountEvents())
}

func (s *ServiceSuite) TestReads() {
	ctx := context.Background()

	_, err := s.service.UpdateProfile(ctx, lender, account, 500, 5*ledger.OneUnit, 100)
	s.Require().NoError(err)
	_, err = s.service.RecordPayment(ctx, lender, account, 1, true)
	s.Require().NoError(err)

	s.Run("stored score", func() {
		score, err := s.service.GetCreditScore(ctx, account)
		s.Require().NoError(err)
		s.Equal(uint64(660), score)
	})

	s.Run("fresh recompute agrees with stored score", func() {
		fresh, err := s.service.CalculateScore(ctx, account)
		s.Require().NoError(err)
		s.Equal(uint64(660), fresh)
	})

	s.Run("rating", func() {
		rating, err := s.service.GetCreditRating(ctx, account)
		s.Require().NoError(err)
		s.Equal(ledger.RatingGood, rating)
	})

	s.Run("has profile", func() {
		exists, err := s.service.HasProfile(ctx, account)
		s.Require().NoError(err)
		s.True(exists)
	})
}

func (s *ServiceSuite) TestReadsMissingProfile() {
	ctx := context.Background()

	_, err := s.service.GetProfile(ctx, account)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.GetCreditScore(ctx, account)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.GetCreditRating(ctx, account)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.CalculateScore(ctx, account)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestScoreBatch() {
	ctx := context.Background()

	_, err := s.service.UpdateProfile(ctx, lender, "acct:one", 1000, 0, 0)
	s.Require().NoError(err)
	_, err = s.service.UpdateProfile(ctx, lender, "acct:two", 0, 15*ledger.OneUnit, 0)
	s.Require().NoError(err)

	scores, err := s.service.ScoreBatch(ctx, []id.AccountID{"acct:one", "acct:two", "acct:missing"})
	s.Require().NoError(err)
	s.Equal(map[id.AccountID]uint64{
		"acct:one": 500,
		"acct:two": 450,
	}, scores)
}

func (s *ServiceSuite) TestScoreBatchEmpty() {
	scores, err := s.service.ScoreBatch(context.Background(), nil)
	s.Require().NoError(err)
	s.Empty(scores)
}

func (s *ServiceSuite) TestConcurrentPaymentsSerialize() {
	ctx := context.Background()

	_, err := s.service.UpdateProfile(ctx, lender, account, 0, 0, 0)
	s.Require().NoError(err)

	const workers = 32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		onTime := i%2 == 0
		go func() {
			defer wg.Done()
			_, err := s.service.RecordPayment(ctx, lender, account, 1, onTime)
			s.NoError(err)
		}()
	}
	wg.Wait()

	profile, err := s.service.GetProfile(ctx, account)
	s.Require().NoError(err)
	// No lost updates: every increment lands.
	s.Equal(uint64(workers/2), profile.OnTimePayments)
	s.Equal(uint64(workers/2), profile.DefaultCount)

	stored := profile.CreditScore
	fresh, err := s.service.CalculateScore(ctx, account)
	s.Require().NoError(err)
	s.Equal(stored, fresh)
}
