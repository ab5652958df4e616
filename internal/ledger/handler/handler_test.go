package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"bureau/internal/events"
	"bureau/internal/ledger"
	"bureau/internal/ledger/handler/mocks"
	id "bureau/pkg/domain"
	dErrors "bureau/pkg/domain-errors"
	"bureau/pkg/requestcontext"
)

const testCaller id.PrincipalID = "lender-1"

type HandlerSuite struct {
	suite.Suite
	router      http.Handler
	ctrl        *gomock.Controller
	mockService *mocks.MockService
	mockLister  *mocks.MockEventLister
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockService(s.ctrl)
	s.mockLister = mocks.NewMockEventLister(s.ctrl)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := New(s.mockService, s.mockLister, logger)

	r := chi.NewRouter()
	h.RegisterReads(r)
	r.Group(func(r chi.Router) {
		// Stands in for the lender token middleware.
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := requestcontext.WithPrincipal(req.Context(), testCaller)
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
		h.RegisterMutations(r)
	})
	s.router = r
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestUpdateProfile() {
	profile := &ledger.CreditProfile{
		TotalTransactions: 500,
		TotalVolume:       5 * ledger.OneUnit,
		AccountAgeDays:    100,
		Active:            true,
		CreditScore:       460,
		LastUpdated:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	s.mockService.EXPECT().
		UpdateProfile(gomock.Any(), testCaller, id.AccountID("acct-1"), uint64(500), 5*ledger.OneUnit, uint64(100)).
		Return(profile, nil)

	body := []byte(`{"transactions":500,"volume":5000000000000000000,"account_age_days":100}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/profiles/acct-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := s.do(req)

	assert.Equal(s.T(), http.StatusOK, rec.Code)

	var resp ProfileResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), "acct-1", resp.Account)
	assert.Equal(s.T(), uint64(460), resp.CreditScore)
	assert.Equal(s.T(), "Poor", resp.Rating)
}

func (s *HandlerSuite) TestUpdateProfile_InvalidJSON() {
	req := httptest.NewRequest(http.MethodPost, "/v1/profiles/acct-1", bytes.NewReader([]byte("not valid json")))
	req.Header.Set("Content-Type", "application/json")
	rec := s.do(req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestUpdateProfile_Unauthorized() {
	s.mockService.EXPECT().
		UpdateProfile(gomock.Any(), testCaller, id.AccountID("acct-1"), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeUnauthorized, "caller is not an authorized lender"))

	req := httptest.NewRequest(http.MethodPost, "/v1/profiles/acct-1", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := s.do(req)

	assert.Equal(s.T(), http.StatusUnauthorized, rec.Code)
}

func (s *HandlerSuite) TestRecordPayment() {
	profile := &ledger.CreditProfile{OnTimePayments: 1, Active: true, CreditScore: 500}
	s.mockService.EXPECT().
		RecordPayment(gomock.Any(), testCaller, id.AccountID("acct-1"), uint64(25), true).
		Return(profile, nil)

	body := []byte(`{"amount":25,"on_time":true}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/profiles/acct-1/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := s.do(req)

	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestRecordPayment_MissingOnTime() {
	req := httptest.NewRequest(http.MethodPost, "/v1/profiles/acct-1/payments", bytes.NewReader([]byte(`{"amount":25}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := s.do(req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestRecordPayment_ProfileNotFound() {
	s.mockService.EXPECT().
		RecordPayment(gomock.Any(), testCaller, id.AccountID("acct-1"), uint64(1), false).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "credit profile not found"))

	body := []byte(`{"amount":1,"on_time":false}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/profiles/acct-1/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := s.do(req)

	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestGetScore() {
	s.mockService.EXPECT().
		GetCreditScore(gomock.Any(), id.AccountID("acct-1")).
		Return(uint64(700), nil)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/v1/profiles/acct-1/score", nil))

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	var resp ScoreResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), uint64(700), resp.Score)
	assert.Equal(s.T(), "Good", resp.Rating)
}

func (s *HandlerSuite) TestGetFreshScore() {
	s.mockService.EXPECT().
		CalculateScore(gomock.Any(), id.AccountID("acct-1")).
		Return(uint64(850), nil)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/v1/profiles/acct-1/score/fresh", nil))

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	var resp ScoreResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), uint64(850), resp.Score)
	assert.Equal(s.T(), "Excellent", resp.Rating)
}

func (s *HandlerSuite) TestGetScore_NotFound() {
	s.mockService.EXPECT().
		GetCreditScore(gomock.Any(), id.AccountID("acct-1")).
		Return(uint64(0), dErrors.New(dErrors.CodeNotFound, "credit profile not found"))

	rec := s.do(httptest.NewRequest(http.MethodGet, "/v1/profiles/acct-1/score", nil))

	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestGetRating() {
	s.mockService.EXPECT().
		GetCreditRating(gomock.Any(), id.AccountID("acct-1")).
		Return(ledger.RatingFair, nil)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/v1/profiles/acct-1/rating", nil))

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), "Fair")
}

func (s *HandlerSuite) TestExists() {
	s.mockService.EXPECT().
		HasProfile(gomock.Any(), id.AccountID("acct-1")).
		Return(false, nil)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/v1/profiles/acct-1/exists", nil))

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	var resp ExistsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(s.T(), resp.Exists)
}

func (s *HandlerSuite) TestScoreBatch() {
	s.mockService.EXPECT().
		ScoreBatch(gomock.Any(), []id.AccountID{"acct-1", "acct-2"}).
		Return(map[id.AccountID]uint64{"acct-1": 460}, nil)

	body := []byte(`{"accounts":["acct-1","acct-2"]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/scores", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := s.do(req)

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	var resp BatchScoresResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), map[string]uint64{"acct-1": 460}, resp.Scores)
}

func (s *HandlerSuite) TestScoreBatch_EmptyAccounts() {
	req := httptest.NewRequest(http.MethodPost, "/v1/scores", bytes.NewReader([]byte(`{"accounts":[]}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := s.do(req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestListEvents() {
	s.mockLister.EXPECT().
		List(gomock.Any(), id.AccountID("acct-1")).
		Return([]events.Event{
			{ID: "ev-1", Type: events.TypeProfileCreated, Account: "acct-1"},
			{ID: "ev-2", Type: events.TypeScoreUpdated, Account: "acct-1", Score: 460},
		}, nil)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/v1/profiles/acct-1/events", nil))

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	var resp EventListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().Len(resp.Events, 2)
	assert.Equal(s.T(), "profile_created", resp.Events[0].Type)
	assert.Equal(s.T(), uint64(460), resp.Events[1].Score)
}
