package ledger

import "time"

// CreditProfile is the per-account record of credit-relevant attributes and
// the last computed score. Profiles are created lazily on the first
// authorized update and are never deleted.
//
// TotalTransactions, TotalVolume and AccountAgeDays are caller-supplied
// observations that each update replaces wholesale; OnTimePayments and
// DefaultCount are monotonic counters the ledger itself maintains.
type CreditProfile struct {
	TotalTransactions uint64    `json:"total_transactions"`
	TotalVolume       uint64    `json:"total_volume"`
	DefaultCount      uint64    `json:"default_count"`
	OnTimePayments    uint64    `json:"on_time_payments"`
	AccountAgeDays    uint64    `json:"account_age_days"`
	LastUpdated       time.Time `json:"last_updated"`
	Active            bool      `json:"active"`
	CreditScore       uint64    `json:"credit_score"`
}

// Clone returns a copy so stores can hand out profiles without aliasing
// internal state.
func (p *CreditProfile) Clone() *CreditProfile {
	c := *p
	return &c
}

// Rating is the coarse creditworthiness bucket derived from the score.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
)
