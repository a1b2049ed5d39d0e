package auth

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/exceptions"
	"strings"
)

type identityGate struct {
	IdentityProvider contracts.IdentityProvider
}

// NewIdentityGate resolves every request afresh. Nothing is cached, so a
// revoked or disabled identity is rejected on its next call.
func NewIdentityGate(identityProvider contracts.IdentityProvider) contracts.IdentityGate {
	return &identityGate{IdentityProvider: identityProvider}
}

func (g *identityGate) Resolve(ctx context.Context, assertion string) (*models.Principal, error) {
	assertion = strings.TrimSpace(assertion)
	if assertion == "" {
		return nil, exceptions.ErrTokenMissing(nil)
	}

	claims, err := g.IdentityProvider.VerifyAssertion(ctx, assertion)
	if err != nil {
		return nil, err
	}

	return &models.Principal{
		SubjectID: claims.SubjectID,
		Role:      claims.Role,
		Email:     claims.Email,
	}, nil
}
