package users

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/app/services/core/roles"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/exceptions"
	"strings"

	"go.uber.org/zap"
)

type userUsecase struct {
	UserRepository   contracts.UserRepository
	IdentityProvider contracts.IdentityProvider
	Log              *zap.Logger
}

func NewUserUsecase(
	userRepository contracts.UserRepository,
	identityProvider contracts.IdentityProvider,
	logger *zap.Logger,
) contracts.UserUsecase {
	return &userUsecase{
		UserRepository:   userRepository,
		IdentityProvider: identityProvider,
		Log:              logger,
	}
}

func (uc *userUsecase) GetProfile(ctx context.Context, principal *models.Principal) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.GetProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, principal.SubjectID),
	)
	return uc.findUser(ctx, principal.SubjectID)
}

func (uc *userUsecase) UpdateProfile(ctx context.Context, principal *models.Principal, request *requests.UpdateProfile) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.UpdateProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, principal.SubjectID),
	)

	user, err := uc.findUser(ctx, principal.SubjectID)
	if err != nil {
		return nil, err
	}

	if request.DisplayName != nil {
		user.DisplayName = *request.DisplayName
	}
	if request.Phone != nil {
		user.Phone = *request.Phone
	}
	user.SetUpdatedAt()

	if err := uc.UserRepository.Update(ctx, user); err != nil {
		uc.Log.Error("userUsecase.UpdateProfile error updating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("userUsecase.UpdateProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return user, nil
}

func (uc *userUsecase) SetAvailability(ctx context.Context, principal *models.Principal, request *requests.SetAvailability) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.SetAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, principal.SubjectID),
		zap.Bool("is_available", *request.IsAvailable),
	)

	user, err := uc.findUser(ctx, principal.SubjectID)
	if err != nil {
		return nil, err
	}

	user.IsAvailable = *request.IsAvailable
	user.SetUpdatedAt()
	if err := uc.UserRepository.Update(ctx, user); err != nil {
		uc.Log.Error("userUsecase.SetAvailability error updating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return user, nil
}

// CreateUser provisions the identity first and the profile second. A failed
// profile write deletes the identity again so no orphan can sign in.
func (uc *userUsecase) CreateUser(ctx context.Context, principal *models.Principal, request *requests.CreateUser) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.CreateUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, principal.SubjectID),
		zap.String(constvars.LoggingRoleKey, request.Role),
	)

	if !roles.CanManage(principal.Role, request.Role) {
		return nil, exceptions.ErrRoleHierarchy(nil, principal.Role, request.Role)
	}

	subjectID, err := uc.IdentityProvider.CreateUser(ctx, &contracts.CreateIdentityInput{
		Email:    request.Email,
		Password: request.Password,
		Role:     request.Role,
	})
	if err != nil {
		uc.Log.Error("userUsecase.CreateUser error creating identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	user := &models.User{
		ID:          subjectID,
		Role:        request.Role,
		Email:       normalizeEmail(request.Email),
		DisplayName: request.DisplayName,
		Phone:       request.Phone,
		Status:      constvars.UserStatusActive,
	}
	user.SetCreatedAtUpdatedAt()

	if err := uc.UserRepository.Create(ctx, user); err != nil {
		uc.Log.Error("userUsecase.CreateUser error creating profile, removing identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, subjectID),
			zap.Error(err),
		)
		if compensateErr := uc.IdentityProvider.DeleteUser(ctx, subjectID); compensateErr != nil {
			uc.Log.Error("userUsecase.CreateUser error removing identity",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingUserIDKey, subjectID),
				zap.Error(compensateErr),
			)
		}
		return nil, err
	}

	uc.Log.Info("userUsecase.CreateUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, subjectID),
	)
	return user, nil
}

func (uc *userUsecase) ListUsers(ctx context.Context, principal *models.Principal, filter *models.UserFilter) ([]models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.ListUsers called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, principal.SubjectID),
	)

	users, err := uc.UserRepository.FindAll(ctx, filter)
	if err != nil {
		uc.Log.Error("userUsecase.ListUsers error listing users",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("userUsecase.ListUsers succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(users)),
	)
	return users, nil
}

func (uc *userUsecase) FindUser(ctx context.Context, principal *models.Principal, userID string) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.FindUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return uc.findUser(ctx, userID)
}

// UpdateUser applies identity changes before the profile write. When the
// profile write fails after a role change, the previous role claim is put back.
func (uc *userUsecase) UpdateUser(ctx context.Context, principal *models.Principal, userID string, request *requests.UpdateUser) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.UpdateUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, principal.SubjectID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !roles.CanManage(principal.Role, user.Role) {
		return nil, exceptions.ErrRoleHierarchy(nil, principal.Role, user.Role)
	}
	if request.Role != nil && !roles.CanManage(principal.Role, *request.Role) {
		return nil, exceptions.ErrRoleHierarchy(nil, principal.Role, *request.Role)
	}

	if request.Email != nil || request.Password != nil {
		err := uc.IdentityProvider.UpdateCredentials(ctx, userID, &contracts.UpdateCredentialsInput{
			Email:    request.Email,
			Password: request.Password,
		})
		if err != nil {
			uc.Log.Error("userUsecase.UpdateUser error updating credentials",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		if request.Email != nil {
			user.Email = normalizeEmail(*request.Email)
		}
	}

	if request.Status != nil && *request.Status != user.Status {
		disabled := *request.Status == constvars.UserStatusInactive
		if err := uc.IdentityProvider.SetDisabled(ctx, userID, disabled); err != nil {
			uc.Log.Error("userUsecase.UpdateUser error toggling identity",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		user.Status = *request.Status
	}

	previousRole := user.Role
	roleChanged := request.Role != nil && *request.Role != previousRole
	if roleChanged {
		if err := uc.IdentityProvider.SetRoleClaim(ctx, userID, *request.Role); err != nil {
			uc.Log.Error("userUsecase.UpdateUser error setting role claim",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		user.Role = *request.Role
	}

	if request.DisplayName != nil {
		user.DisplayName = *request.DisplayName
	}
	if request.Phone != nil {
		user.Phone = *request.Phone
	}
	user.SetUpdatedAt()

	if err := uc.UserRepository.Update(ctx, user); err != nil {
		uc.Log.Error("userUsecase.UpdateUser error updating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if roleChanged {
			if restoreErr := uc.IdentityProvider.SetRoleClaim(ctx, userID, previousRole); restoreErr != nil {
				uc.Log.Error("userUsecase.UpdateUser error restoring role claim",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingRoleKey, previousRole),
					zap.Error(restoreErr),
				)
			}
		}
		return nil, err
	}

	uc.Log.Info("userUsecase.UpdateUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return user, nil
}

func (uc *userUsecase) DeleteUser(ctx context.Context, principal *models.Principal, userID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.DeleteUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, principal.SubjectID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	if principal.SubjectID == userID {
		return exceptions.ErrCannotDeleteSelf(nil)
	}

	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if !roles.CanManage(principal.Role, user.Role) {
		return exceptions.ErrRoleHierarchy(nil, principal.Role, user.Role)
	}

	if err := uc.IdentityProvider.DeleteUser(ctx, userID); err != nil {
		uc.Log.Error("userUsecase.DeleteUser error deleting identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if err := uc.UserRepository.Delete(ctx, userID); err != nil {
		uc.Log.Error("userUsecase.DeleteUser error deleting profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("userUsecase.DeleteUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return nil
}

func (uc *userUsecase) findUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrNotFound(fmt.Errorf("user %s", userID), constvars.ResourceUser, userID)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
