package events

import (
	"time"

	id "bureau/pkg/domain"
)

// Type names an observable credit event.
type Type string

const (
	// TypeProfileCreated fires once, when a profile is lazily created by the
	// first authorized update for an account.
	TypeProfileCreated Type = "profile_created"
	// TypeScoreUpdated fires after every mutation, carrying the recomputed score.
	TypeScoreUpdated Type = "score_updated"
	// TypeLenderAuthorized fires when the admin grants a lender. Revocation is
	// deliberately silent; consumers learn of it only through denied mutations.
	TypeLenderAuthorized Type = "lender_authorized"
	// TypePaymentRecorded fires before the score update it triggers.
	TypePaymentRecorded Type = "payment_recorded"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out. Consumers (lending
// protocols, dashboards) subscribe to this stream instead of polling.
type Event struct {
	ID        string
	Type      Type
	Timestamp time.Time

	// Account keyed by the event, when profile-scoped.
	Account id.AccountID
	// Principal is the lender granted or the caller that mutated, depending on Type.
	Principal id.PrincipalID
	// Actor is the caller that performed the operation.
	Actor id.PrincipalID
	// Device is a coarse client summary for audit attribution, when known.
	Device string

	// Score carries the recomputed score on TypeScoreUpdated.
	Score uint64
	// Amount and OnTime carry the payment payload on TypePaymentRecorded.
	// Amount is echoed as received; it is never folded into the profile.
	Amount uint64
	OnTime bool
}
