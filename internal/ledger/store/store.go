// Package store persists credit profiles. Implementations are plain keyed
// CRUD; the service above them owns locking and score recomputation.
package store

import (
	"context"

	"bureau/internal/ledger"
	"bureau/internal/sentinel"
	id "bureau/pkg/domain"
)

// ErrNotFound is returned when no profile exists for an account.
var ErrNotFound = sentinel.ErrNotFound

// ProfileStore persists the account -> profile mapping.
type ProfileStore interface {
	Find(ctx context.Context, account id.AccountID) (*ledger.CreditProfile, error)
	Save(ctx context.Context, account id.AccountID, profile *ledger.CreditProfile) error
	Exists(ctx context.Context, account id.AccountID) (bool, error)
}
