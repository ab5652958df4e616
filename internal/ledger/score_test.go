package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "bureau/pkg/domain-errors"
)

func mustScore(t *testing.T, p *CreditProfile) uint64 {
	t.Helper()
	score, err := ComputeScore(p)
	require.NoError(t, err)
	return score
}

func TestComputeScore_EmptyProfileIsBase(t *testing.T) {
	assert.Equal(t, BaseScore, mustScore(t, &CreditProfile{}))
}

func TestComputeScore_FreshProfileScenario(t *testing.T) {
	// 500 tx -> 100, 5 whole units -> 50, no payments, 100 days -> 10.
	p := &CreditProfile{
		TotalTransactions: 500,
		TotalVolume:       5 * OneUnit,
		AccountAgeDays:    100,
	}
	score := mustScore(t, p)
	assert.Equal(t, uint64(460), score)
	assert.Equal(t, RatingPoor, RatingFor(score))
}

func TestComputeScore_SingleOnTimePayment(t *testing.T) {
	// Same profile plus one on-time payment: ratio 100 -> +200, no penalty.
	p := &CreditProfile{
		TotalTransactions: 500,
		TotalVolume:       5 * OneUnit,
		AccountAgeDays:    100,
		OnTimePayments:    1,
	}
	score := mustScore(t, p)
	assert.Equal(t, uint64(660), score)
	assert.Equal(t, RatingGood, RatingFor(score))
}

func TestComputeScore_FactorCaps(t *testing.T) {
	tests := []struct {
		name string
		p    CreditProfile
		want uint64
	}{
		{"transactions at cap boundary", CreditProfile{TotalTransactions: 1000}, 300 + 200},
		{"transactions beyond cap", CreditProfile{TotalTransactions: math.MaxUint64}, 300 + 200},
		{"transactions below cap", CreditProfile{TotalTransactions: 999}, 300 + 199},
		{"volume at cap boundary", CreditProfile{TotalVolume: 15 * OneUnit}, 300 + 150},
		{"volume beyond cap", CreditProfile{TotalVolume: math.MaxUint64}, 300 + 150},
		{"volume below cap", CreditProfile{TotalVolume: 14 * OneUnit}, 300 + 140},
		{"sub-unit volume floors to zero", CreditProfile{TotalVolume: OneUnit - 1}, 300},
		{"age at cap boundary", CreditProfile{AccountAgeDays: 1000}, 300 + 100},
		{"age beyond cap", CreditProfile{AccountAgeDays: math.MaxUint64}, 300 + 100},
		{"age floors", CreditProfile{AccountAgeDays: 99}, 300 + 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustScore(t, &tt.p))
		})
	}
}

func TestComputeScore_PaymentRatioFloors(t *testing.T) {
	// 2 of 3 on time: ratio = floor(200/3) = 66, factor = 132.
	p := &CreditProfile{OnTimePayments: 2, DefaultCount: 1}
	// 300 + 132 - penalty. Penalty = 1*50, headroom = 132, so -50.
	assert.Equal(t, uint64(300+132-50), mustScore(t, p))
}

func TestComputeScore_PenaltyClampedToRunningScore(t *testing.T) {
	// All defaults: ratio 0, payment factor 0, headroom 0 -> penalty fully
	// clamped, score stays at base plus later factors.
	p := &CreditProfile{OnTimePayments: 0, DefaultCount: 5}
	assert.Equal(t, BaseScore, mustScore(t, p))
}

func TestComputeScore_PenaltyClampPrecedesAgeFactor(t *testing.T) {
	// The clamp must not see the age bonus. 1 on-time + 5 defaults:
	// ratio = floor(100/6) = 16, factor = 32; penalty 250 clamps to
	// headroom 32 (not 32+age); then age adds on top.
	p := &CreditProfile{OnTimePayments: 1, DefaultCount: 5, AccountAgeDays: 400}
	assert.Equal(t, uint64(300+32-32+40), mustScore(t, p))
}

func TestComputeScore_PartialPenalty(t *testing.T) {
	// High transaction base gives headroom for the full penalty.
	p := &CreditProfile{
		TotalTransactions: 1000, // +200
		OnTimePayments:    8,    // ratio 80 of 10 -> +160
		DefaultCount:      2,    // -100, headroom 360
	}
	assert.Equal(t, uint64(300+200+160-100), mustScore(t, p))
}

func TestComputeScore_FinalCapAt850(t *testing.T) {
	p := &CreditProfile{
		TotalTransactions: 5000,
		TotalVolume:       math.MaxUint64,
		OnTimePayments:    50,
		AccountAgeDays:    10000,
	}
	assert.Equal(t, MaxScore, mustScore(t, p))
}

func TestComputeScore_AlwaysInRange(t *testing.T) {
	profiles := []CreditProfile{
		{},
		{TotalTransactions: 1, TotalVolume: 1, AccountAgeDays: 1},
		{OnTimePayments: 1},
		{DefaultCount: 1},
		{OnTimePayments: 3, DefaultCount: 7, TotalTransactions: 123, TotalVolume: 9 * OneUnit, AccountAgeDays: 77},
		{TotalTransactions: math.MaxUint64, TotalVolume: math.MaxUint64, OnTimePayments: math.MaxUint64 - 1, DefaultCount: 1, AccountAgeDays: math.MaxUint64},
	}
	for _, p := range profiles {
		score := mustScore(t, &p)
		assert.GreaterOrEqual(t, score, BaseScore)
		assert.LessOrEqual(t, score, MaxScore)
	}
}

func TestComputeScore_Deterministic(t *testing.T) {
	p := &CreditProfile{TotalTransactions: 321, TotalVolume: 7 * OneUnit, OnTimePayments: 9, DefaultCount: 2, AccountAgeDays: 365}
	first := mustScore(t, p)
	second := mustScore(t, p)
	assert.Equal(t, first, second)
}

func TestComputeScore_OnTimeMonotonic(t *testing.T) {
	p := CreditProfile{TotalTransactions: 200, TotalVolume: 3 * OneUnit, OnTimePayments: 4, DefaultCount: 3, AccountAgeDays: 50}
	for i := 0; i < 20; i++ {
		before := mustScore(t, &p)
		p.OnTimePayments++
		after := mustScore(t, &p)
		assert.GreaterOrEqual(t, after, before)
	}
}

func TestComputeScore_DefaultMonotonic(t *testing.T) {
	p := CreditProfile{TotalTransactions: 900, TotalVolume: 12 * OneUnit, OnTimePayments: 30, AccountAgeDays: 700}
	for i := 0; i < 20; i++ {
		before := mustScore(t, &p)
		p.DefaultCount++
		after := mustScore(t, &p)
		assert.LessOrEqual(t, after, before)
	}
}

func TestComputeScore_CounterOverflowRejected(t *testing.T) {
	p := &CreditProfile{OnTimePayments: math.MaxUint64, DefaultCount: 1}
	_, err := ComputeScore(p)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestComputeScore_HugeCountersStayExact(t *testing.T) {
	// 3 of 4 on time at a scale where onTime*100 no longer fits in 64 bits.
	const quarter = math.MaxUint64 / 4
	p := &CreditProfile{OnTimePayments: 3 * quarter, DefaultCount: quarter}
	// ratio = 75 -> +150, penalty clamps to headroom 150.
	assert.Equal(t, BaseScore, mustScore(t, p))
}

func TestRatingFor_Thresholds(t *testing.T) {
	tests := []struct {
		score uint64
		want  Rating
	}{
		{850, RatingExcellent},
		{750, RatingExcellent},
		{749, RatingGood},
		{650, RatingGood},
		{649, RatingFair},
		{550, RatingFair},
		{549, RatingPoor},
		{300, RatingPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RatingFor(tt.score), "score %d", tt.score)
	}
}
