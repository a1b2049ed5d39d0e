package auth

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/app/services/shared/jwtmanager"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"homevisit-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type localIdentityProvider struct {
	IdentityRepository contracts.IdentityRepository
	JWTManager         *jwtmanager.JWTManager
	Log                *zap.Logger
}

// NewLocalIdentityProvider keeps credentials in the identity repository and
// issues HS256 assertions. Any change to a role, credential or the disabled
// flag bumps the token version, which revokes every earlier assertion.
func NewLocalIdentityProvider(
	identityRepository contracts.IdentityRepository,
	jwtManager *jwtmanager.JWTManager,
	logger *zap.Logger,
) contracts.IdentityProvider {
	return &localIdentityProvider{
		IdentityRepository: identityRepository,
		JWTManager:         jwtManager,
		Log:                logger,
	}
}

func (p *localIdentityProvider) VerifyAssertion(ctx context.Context, assertion string) (*models.IdentityClaims, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	claims, err := p.JWTManager.VerifyToken(ctx, assertion)
	if err != nil {
		p.Log.Info("localIdentityProvider.VerifyAssertion rejected token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	identity, err := p.IdentityRepository.FindByID(ctx, claims.SubjectID)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, exceptions.ErrIdentityNotFound(nil)
	}
	if identity.Disabled {
		return nil, exceptions.ErrIdentityDisabled(nil)
	}
	if identity.TokenVersion != claims.TokenVersion {
		return nil, exceptions.ErrTokenRevoked(fmt.Errorf("token version %d, current %d", claims.TokenVersion, identity.TokenVersion))
	}
	if !constvars.IsKnownRole(claims.Role) {
		return nil, exceptions.ErrUnknownRoleClaim(nil, claims.Role)
	}

	p.Log.Info("localIdentityProvider.VerifyAssertion succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, claims.SubjectID),
		zap.String(constvars.LoggingRoleKey, claims.Role),
	)
	return claims, nil
}

func (p *localIdentityProvider) CreateUser(ctx context.Context, input *contracts.CreateIdentityInput) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Info("localIdentityProvider.CreateUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleKey, input.Role),
	)

	if !constvars.IsKnownRole(input.Role) {
		return "", exceptions.ErrInputValidationMessage(fmt.Sprintf(constvars.ErrClientUnknownRole, input.Role))
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return "", err
	}

	identity := &models.Identity{
		ID:           utils.NewID(),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         input.Role,
		TokenVersion: 1,
	}
	identity.SetCreatedAtUpdatedAt()

	if err := p.IdentityRepository.Create(ctx, identity); err != nil {
		p.Log.Error("localIdentityProvider.CreateUser error creating identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}

	p.Log.Info("localIdentityProvider.CreateUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, identity.ID),
	)
	return identity.ID, nil
}

func (p *localIdentityProvider) SetRoleClaim(ctx context.Context, subjectID, role string) error {
	if !constvars.IsKnownRole(role) {
		return exceptions.ErrInputValidationMessage(fmt.Sprintf(constvars.ErrClientUnknownRole, role))
	}
	return p.mutate(ctx, subjectID, "SetRoleClaim", func(identity *models.Identity) (bool, error) {
		if identity.Role == role {
			return false, nil
		}
		identity.Role = role
		return true, nil
	})
}

func (p *localIdentityProvider) SetDisabled(ctx context.Context, subjectID string, disabled bool) error {
	return p.mutate(ctx, subjectID, "SetDisabled", func(identity *models.Identity) (bool, error) {
		if identity.Disabled == disabled {
			return false, nil
		}
		identity.Disabled = disabled
		return true, nil
	})
}

func (p *localIdentityProvider) UpdateCredentials(ctx context.Context, subjectID string, input *contracts.UpdateCredentialsInput) error {
	return p.mutate(ctx, subjectID, "UpdateCredentials", func(identity *models.Identity) (bool, error) {
		changed := false
		if input.Email != nil && normalizeEmail(*input.Email) != identity.Email {
			identity.Email = normalizeEmail(*input.Email)
			changed = true
		}
		if input.Password != nil {
			hash, err := hashPassword(*input.Password)
			if err != nil {
				return false, err
			}
			identity.PasswordHash = hash
			changed = true
		}
		return changed, nil
	})
}

func (p *localIdentityProvider) DeleteUser(ctx context.Context, subjectID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Info("localIdentityProvider.DeleteUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)
	return p.IdentityRepository.Delete(ctx, subjectID)
}

func (p *localIdentityProvider) LookupByEmail(ctx context.Context, email string) (*models.Identity, error) {
	return p.IdentityRepository.FindByEmail(ctx, normalizeEmail(email))
}

func (p *localIdentityProvider) SignIn(ctx context.Context, email, password string) (*contracts.SignInOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	identity, err := p.IdentityRepository.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, exceptions.ErrInvalidEmailOrPassword(err)
	}
	if identity.Disabled {
		return nil, exceptions.ErrIdentityDisabled(nil)
	}

	token, err := p.JWTManager.CreateToken(ctx, &models.IdentityClaims{
		SubjectID:    identity.ID,
		Role:         identity.Role,
		Email:        identity.Email,
		TokenVersion: identity.TokenVersion,
	})
	if err != nil {
		p.Log.Error("localIdentityProvider.SignIn error creating token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenGenerate(err)
	}

	return &contracts.SignInOutput{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		Role:      identity.Role,
	}, nil
}

// mutate loads the identity, applies change and bumps the token version when
// change reports a modification.
func (p *localIdentityProvider) mutate(ctx context.Context, subjectID, operation string, change func(identity *models.Identity) (bool, error)) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Info("localIdentityProvider."+operation+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)

	identity, err := p.IdentityRepository.FindByID(ctx, subjectID)
	if err != nil {
		return err
	}
	if identity == nil {
		return exceptions.ErrNotFound(nil, constvars.ResourceUser, subjectID)
	}

	changed, err := change(identity)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	identity.TokenVersion++
	identity.SetUpdatedAt()
	if err := p.IdentityRepository.Update(ctx, identity); err != nil {
		p.Log.Error("localIdentityProvider."+operation+" error updating identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", exceptions.ErrHashPassword(err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
