package events

import (
	"context"

	id "bureau/pkg/domain"
	pkgerrors "bureau/pkg/domain-errors"
)

var (
	// ErrNotFound keeps storage-specific 404s consistent across implementations.
	ErrNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
)

// Store persists the append-only event stream.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByAccount(ctx context.Context, account id.AccountID) ([]Event, error)
}
