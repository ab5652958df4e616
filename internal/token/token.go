// Package token issues and validates the bearer tokens lenders present on
// mutating calls. Tokens are HS256 JWTs carrying the lender principal as the
// subject; possession of a token proves identity only, the authorization
// registry decides whether that identity may mutate.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	id "bureau/pkg/domain"
	dErrors "bureau/pkg/domain-errors"
)

const issuer = "bureau"

// LenderClaims are the JWT claims on a lender token.
type LenderClaims struct {
	jwt.RegisteredClaims
}

// Service signs and verifies lender tokens.
type Service struct {
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
}

type Option func(s *Service)

// WithClock overrides the time source used for issued-at and expiry claims.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(signingKey string, tokenTTL time.Duration, opts ...Option) *Service {
	s := &Service{
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for the given principal.
func (s *Service) Issue(principal id.PrincipalID) (string, error) {
	if principal.IsZero() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal required")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	jti := hex.EncodeToString(b)
	now := s.now()

	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, LenderClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			ID:        jti,
		},
	})
	return newToken.SignedString(s.signingKey)
}

// Validate verifies the signature, expiry and issuer of a lender token and
// returns its claims.
func (s *Service) Validate(tokenString string) (*LenderClaims, error) {
	if tokenString == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "empty token")
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &LenderClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*LenderClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.Subject == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token missing subject")
	}
	return claims, nil
}
