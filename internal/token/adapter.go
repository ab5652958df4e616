package token

import (
	id "bureau/pkg/domain"
	"bureau/pkg/platform/middleware/auth"
)

// Adapter exposes the token service through the middleware's validator port.
type Adapter struct {
	service *Service
}

func NewAdapter(service *Service) *Adapter {
	return &Adapter{service: service}
}

func (a *Adapter) ValidateToken(tokenString string) (*auth.Claims, error) {
	claims, err := a.service.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return &auth.Claims{
		Principal: id.PrincipalID(claims.Subject),
		JTI:       claims.ID,
	}, nil
}

var _ auth.TokenValidator = (*Adapter)(nil)
