package contracts

import (
	"context"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/dto/requests"
)

type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	FindByID(ctx context.Context, id string) (*models.Address, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Address, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id string) error
	// ClearDefaultExcept unsets is_default on every other address of the owner.
	ClearDefaultExcept(ctx context.Context, ownerID, exceptID string) error
	// EnsureOwnerGuard creates the per-owner guard document outside a transaction.
	EnsureOwnerGuard(ctx context.Context, ownerID string) error
	// LockOwner writes the owner's guard document so that concurrent
	// transactions touching the same address book conflict.
	LockOwner(ctx context.Context, ownerID string) error
}

type AddressUsecase interface {
	ListAddresses(ctx context.Context, principal *models.Principal) ([]models.Address, error)
	CreateAddress(ctx context.Context, principal *models.Principal, request *requests.CreateAddress) (*models.Address, error)
	UpdateAddress(ctx context.Context, principal *models.Principal, addressID string, request *requests.UpdateAddress) (*models.Address, error)
	DeleteAddress(ctx context.Context, principal *models.Principal, addressID string) error
}
