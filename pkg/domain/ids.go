// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"regexp"

	dErrors "bureau/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing an AccountID where a
// PrincipalID is expected. Both are opaque, caller-supplied identifiers:
// the hosting environment authenticates principals and keys accounts, the
// core never inspects the contents.
type (
	// AccountID keys a credit profile.
	AccountID string
	// PrincipalID identifies a caller: the admin or a lender.
	PrincipalID string
)

// MaxIDLength bounds identifiers to keep logs and storage keys sane.
const MaxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9:._-]+$`)

// Parse functions - use at trust boundaries (handlers, CLI inputs).

func ParseAccountID(s string) (AccountID, error) {
	if err := validate(s, "account ID"); err != nil {
		return "", err
	}
	return AccountID(s), nil
}

func ParsePrincipalID(s string) (PrincipalID, error) {
	if err := validate(s, "principal ID"); err != nil {
		return "", err
	}
	return PrincipalID(s), nil
}

// String methods - for logging and debugging.

func (id AccountID) String() string   { return string(id) }
func (id PrincipalID) String() string { return string(id) }

// IsZero checks - used for service-layer validation.

func (id AccountID) IsZero() bool   { return id == "" }
func (id PrincipalID) IsZero() bool { return id == "" }

// validate is the shared validation logic. Identifiers are opaque but must be
// non-empty, bounded, and free of characters that could pollute logs or keys.
func validate(s, label string) error {
	if s == "" {
		return dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	if len(s) > MaxIDLength {
		return dErrors.New(dErrors.CodeInvalidInput, label+" exceeds maximum length")
	}
	if !validID.MatchString(s) {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return nil
}
