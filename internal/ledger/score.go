package ledger

import (
	"math"
	"math/bits"

	dErrors "bureau/pkg/domain-errors"
)

// Scoring constants. OneUnit is the smallest-subunit scaling divisor for the
// volume factor (volume is tracked in 10^-18ths of a whole unit); it is part
// of the scoring contract and changing it changes every score.
const (
	BaseScore uint64 = 300
	MaxScore  uint64 = 850
	OneUnit   uint64 = 1_000_000_000_000_000_000

	transactionCap    uint64 = 200
	volumeCap         uint64 = 150
	paymentHistoryCap uint64 = 200
	accountAgeCap     uint64 = 100
	defaultPenalty    uint64 = 50
)

// ComputeScore derives the credit score from a profile. Pure integer
// arithmetic, floor division throughout; the factor order is part of the
// contract because the default penalty clamps against the running score
// before the account-age factor is added. The result is always within
// [BaseScore, MaxScore].
func ComputeScore(p *CreditProfile) (uint64, error) {
	score := BaseScore

	// Transaction factor: transactions*200/1000, capped at 200. The cap is
	// reached at 1000 transactions, so larger inputs short-circuit and the
	// multiplication below cannot overflow.
	if p.TotalTransactions > 0 {
		if p.TotalTransactions >= 1000 {
			score += transactionCap
		} else {
			score += p.TotalTransactions * transactionCap / 1000
		}
	}

	// Volume factor: 10 points per whole unit, capped at 150. Dividing first
	// keeps the arithmetic inside uint64 for any volume.
	wholeUnits := p.TotalVolume / OneUnit
	if wholeUnits >= volumeCap/10 {
		score += volumeCap
	} else {
		score += wholeUnits * 10
	}

	// Payment-history factor, only once any payment has been recorded.
	totalPayments, ok := addChecked(p.OnTimePayments, p.DefaultCount)
	if !ok {
		return 0, dErrors.New(dErrors.CodeInvariantViolation, "payment counters overflow")
	}
	if totalPayments > 0 {
		ratio := ratioPercent(p.OnTimePayments, totalPayments)
		score += ratio * paymentHistoryCap / 100

		// Default penalty: 50 per default, clamped so this step alone can
		// never push the running score below the base. The clamp uses the
		// score accumulated so far, before the account-age factor.
		if p.DefaultCount > 0 {
			headroom := score - BaseScore
			if p.DefaultCount <= headroom/defaultPenalty {
				score -= p.DefaultCount * defaultPenalty
			} else {
				score -= headroom
			}
		}
	}

	// Account-age factor: one point per ten days, capped at 100.
	ageBonus := p.AccountAgeDays / 10
	if ageBonus > accountAgeCap {
		ageBonus = accountAgeCap
	}
	score += ageBonus

	if score > MaxScore {
		score = MaxScore
	}
	return score, nil
}

// RatingFor maps a score to its bucket, highest threshold first.
func RatingFor(score uint64) Rating {
	switch {
	case score >= 750:
		return RatingExcellent
	case score >= 650:
		return RatingGood
	case score >= 550:
		return RatingFair
	default:
		return RatingPoor
	}
}

// ratioPercent computes floor(onTime*100/total) without overflowing uint64;
// the 128-bit intermediate matters once counters pass ~1.8e17.
func ratioPercent(onTime, total uint64) uint64 {
	hi, lo := bits.Mul64(onTime, 100)
	ratio, _ := bits.Div64(hi, lo, total)
	return ratio
}

func addChecked(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}
