package users

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/exceptions"
	"homevisit-service/internal/pkg/utils"
)

// BootstrapSuperadmin provisions the first superadmin account. It reports false
// and changes nothing when the email is already registered.
func BootstrapSuperadmin(
	ctx context.Context,
	identityProvider contracts.IdentityProvider,
	userUsecase contracts.UserUsecase,
	email, password string,
) (bool, error) {
	request := &requests.CreateUser{
		Email:       email,
		Password:    password,
		DisplayName: "Superadmin",
		Role:        constvars.RoleSuperadmin,
	}
	if err := utils.ValidateStruct(request); err != nil {
		return false, exceptions.ErrInputValidation(err)
	}

	existing, err := identityProvider.LookupByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	system := &models.Principal{SubjectID: constvars.SystemActorID, Role: constvars.RoleSuperadmin}
	if _, err := userUsecase.CreateUser(ctx, system, request); err != nil {
		return false, err
	}
	return true, nil
}
