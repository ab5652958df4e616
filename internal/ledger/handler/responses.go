package handler

import (
	"time"

	"bureau/internal/events"
	"bureau/internal/ledger"
	id "bureau/pkg/domain"
)

type ProfileResponse struct {
	Account           string    `json:"account"`
	TotalTransactions uint64    `json:"total_transactions"`
	TotalVolume       uint64    `json:"total_volume"`
	DefaultCount      uint64    `json:"default_count"`
	OnTimePayments    uint64    `json:"on_time_payments"`
	AccountAgeDays    uint64    `json:"account_age_days"`
	LastUpdated       time.Time `json:"last_updated"`
	Active            bool      `json:"active"`
	CreditScore       uint64    `json:"credit_score"`
	Rating            string    `json:"rating"`
}

type ScoreResponse struct {
	Account string `json:"account"`
	Score   uint64 `json:"score"`
	Rating  string `json:"rating"`
}

type ExistsResponse struct {
	Account string `json:"account"`
	Exists  bool   `json:"exists"`
}

type BatchScoresResponse struct {
	Scores map[string]uint64 `json:"scores"`
}

type EventResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Account   string    `json:"account,omitempty"`
	Principal string    `json:"principal,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	Device    string    `json:"device,omitempty"`
	Score     uint64    `json:"score,omitempty"`
	Amount    uint64    `json:"amount,omitempty"`
	OnTime    bool      `json:"on_time,omitempty"`
}

type EventListResponse struct {
	Account string          `json:"account"`
	Events  []EventResponse `json:"events"`
}

func toProfileResponse(account id.AccountID, p *ledger.CreditProfile) *ProfileResponse {
	return &ProfileResponse{
		Account:           account.String(),
		TotalTransactions: p.TotalTransactions,
		TotalVolume:       p.TotalVolume,
		DefaultCount:      p.DefaultCount,
		OnTimePayments:    p.OnTimePayments,
		AccountAgeDays:    p.AccountAgeDays,
		LastUpdated:       p.LastUpdated,
		Active:            p.Active,
		CreditScore:       p.CreditScore,
		Rating:            string(ledger.RatingFor(p.CreditScore)),
	}
}

func toEventResponse(e events.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		Account:   e.Account.String(),
		Principal: e.Principal.String(),
		Actor:     e.Actor.String(),
		Device:    e.Device,
		Score:     e.Score,
		Amount:    e.Amount,
		OnTime:    e.OnTime,
	}
}
