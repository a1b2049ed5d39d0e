package contracts

import (
	"context"
	"homevisit-service/internal/app/models"
	"time"
)

type CreateIdentityInput struct {
	Email    string
	Password string
	Role     string
}

type UpdateCredentialsInput struct {
	Email    *string
	Password *string
}

type SignInOutput struct {
	Token     string
	ExpiresAt time.Time
	Role      string
}

// IdentityProvider issues and verifies identity assertions and owns the
// credential records behind them.
type IdentityProvider interface {
	VerifyAssertion(ctx context.Context, assertion string) (*models.IdentityClaims, error)
	CreateUser(ctx context.Context, input *CreateIdentityInput) (string, error)
	SetRoleClaim(ctx context.Context, subjectID, role string) error
	SetDisabled(ctx context.Context, subjectID string, disabled bool) error
	UpdateCredentials(ctx context.Context, subjectID string, input *UpdateCredentialsInput) error
	DeleteUser(ctx context.Context, subjectID string) error
	LookupByEmail(ctx context.Context, email string) (*models.Identity, error)
	SignIn(ctx context.Context, email, password string) (*SignInOutput, error)
}

type IdentityRepository interface {
	Create(ctx context.Context, identity *models.Identity) error
	FindByID(ctx context.Context, id string) (*models.Identity, error)
	FindByEmail(ctx context.Context, email string) (*models.Identity, error)
	Update(ctx context.Context, identity *models.Identity) error
	Delete(ctx context.Context, id string) error
}

// IdentityGate turns a raw assertion into the caller principal.
type IdentityGate interface {
	Resolve(ctx context.Context, assertion string) (*models.Principal, error)
}

type AuthUsecase interface {
	Login(ctx context.Context, email, password string) (*SignInOutput, error)
}
