package contracts

import (
	"context"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/dto/requests"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindAll(ctx context.Context, filter *models.UserFilter) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

type UserUsecase interface {
	GetProfile(ctx context.Context, principal *models.Principal) (*models.User, error)
	UpdateProfile(ctx context.Context, principal *models.Principal, request *requests.UpdateProfile) (*models.User, error)
	SetAvailability(ctx context.Context, principal *models.Principal, request *requests.SetAvailability) (*models.User, error)
	CreateUser(ctx context.Context, principal *models.Principal, request *requests.CreateUser) (*models.User, error)
	ListUsers(ctx context.Context, principal *models.Principal, filter *models.UserFilter) ([]models.User, error)
	FindUser(ctx context.Context, principal *models.Principal, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, principal *models.Principal, userID string, request *requests.UpdateUser) (*models.User, error)
	DeleteUser(ctx context.Context, principal *models.Principal, userID string) error
}
