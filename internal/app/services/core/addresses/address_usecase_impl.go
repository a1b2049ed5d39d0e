package addresses

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/exceptions"
	"homevisit-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type addressUsecase struct {
	Transactor        contracts.Transactor
	AddressRepository contracts.AddressRepository
	Log               *zap.Logger
}

func NewAddressUsecase(
	transactor contracts.Transactor,
	addressRepository contracts.AddressRepository,
	logger *zap.Logger,
) contracts.AddressUsecase {
	return &addressUsecase{
		Transactor:        transactor,
		AddressRepository: addressRepository,
		Log:               logger,
	}
}

func (uc *addressUsecase) ListAddresses(ctx context.Context, principal *models.Principal) ([]models.Address, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("addressUsecase.ListAddresses called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.SubjectID),
	)

	addresses, err := uc.AddressRepository.FindByOwner(ctx, principal.SubjectID)
	if err != nil {
		uc.Log.Error("addressUsecase.ListAddresses error fetching addresses",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return addresses, nil
}

func (uc *addressUsecase) CreateAddress(ctx context.Context, principal *models.Principal, request *requests.CreateAddress) (*models.Address, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("addressUsecase.CreateAddress called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.SubjectID),
		zap.Bool("is_default", request.IsDefault),
	)

	address := &models.Address{
		ID:        utils.NewID(),
		OwnerID:   principal.SubjectID,
		Line1:     request.Line1,
		Line2:     request.Line2,
		City:      request.City,
		State:     request.State,
		Zip:       request.Zip,
		Label:     request.Label,
		IsDefault: request.IsDefault,
	}
	address.SetCreatedAtUpdatedAt()

	if address.IsDefault {
		if err := uc.AddressRepository.EnsureOwnerGuard(ctx, principal.SubjectID); err != nil {
			return nil, err
		}
	}

	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if address.IsDefault {
			if err := uc.claimDefault(txCtx, address); err != nil {
				return err
			}
		}
		return uc.AddressRepository.Create(txCtx, address)
	})
	if err != nil {
		uc.Log.Error("addressUsecase.CreateAddress error creating address",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("addressUsecase.CreateAddress succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAddressIDKey, address.ID),
	)
	return address, nil
}

func (uc *addressUsecase) UpdateAddress(ctx context.Context, principal *models.Principal, addressID string, request *requests.UpdateAddress) (*models.Address, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("addressUsecase.UpdateAddress called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.SubjectID),
		zap.String(constvars.LoggingAddressIDKey, addressID),
	)

	settingDefault := request.IsDefault != nil && *request.IsDefault
	if settingDefault {
		if err := uc.AddressRepository.EnsureOwnerGuard(ctx, principal.SubjectID); err != nil {
			return nil, err
		}
	}

	var updated *models.Address
	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		address, err := uc.findOwned(txCtx, principal.SubjectID, addressID)
		if err != nil {
			return err
		}

		applyAddressUpdate(address, request)
		address.SetUpdatedAt()

		if settingDefault {
			if err := uc.claimDefault(txCtx, address); err != nil {
				return err
			}
		}
		if err := uc.AddressRepository.Update(txCtx, address); err != nil {
			return err
		}
		updated = address
		return nil
	})
	if err != nil {
		uc.Log.Error("addressUsecase.UpdateAddress error updating address",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("addressUsecase.UpdateAddress succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAddressIDKey, addressID),
	)
	return updated, nil
}

func (uc *addressUsecase) DeleteAddress(ctx context.Context, principal *models.Principal, addressID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("addressUsecase.DeleteAddress called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.SubjectID),
		zap.String(constvars.LoggingAddressIDKey, addressID),
	)

	if _, err := uc.findOwned(ctx, principal.SubjectID, addressID); err != nil {
		return err
	}
	if err := uc.AddressRepository.Delete(ctx, addressID); err != nil {
		uc.Log.Error("addressUsecase.DeleteAddress error deleting address",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// claimDefault must run inside the transaction that writes address.
func (uc *addressUsecase) claimDefault(ctx context.Context, address *models.Address) error {
	if err := uc.AddressRepository.LockOwner(ctx, address.OwnerID); err != nil {
		return err
	}
	return uc.AddressRepository.ClearDefaultExcept(ctx, address.OwnerID, address.ID)
}

// findOwned reports a foreign address exactly like a missing one.
func (uc *addressUsecase) findOwned(ctx context.Context, ownerID, addressID string) (*models.Address, error) {
	address, err := uc.AddressRepository.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address == nil || address.OwnerID != ownerID {
		return nil, exceptions.ErrNotFound(fmt.Errorf("address %s", addressID), constvars.ResourceAddress, addressID)
	}
	return address, nil
}

func applyAddressUpdate(address *models.Address, request *requests.UpdateAddress) {
	if request.Line1 != nil {
		address.Line1 = *request.Line1
	}
	if request.Line2 != nil {
		address.Line2 = *request.Line2
	}
	if request.City != nil {
		address.City = *request.City
	}
	if request.State != nil {
		address.State = *request.State
	}
	if request.Zip != nil {
		address.Zip = *request.Zip
	}
	if request.Label != nil {
		address.Label = *request.Label
	}
	if request.IsDefault != nil {
		address.IsDefault = *request.IsDefault
	}
}
