package catalog

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/exceptions"
	"homevisit-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type catalogUsecase struct {
	CatalogRepository contracts.CatalogRepository
	// Cache is optional. A nil cache reads straight from the repository.
	Cache           contracts.RedisRepository
	CacheTTL        time.Duration
	DefaultCurrency string
	Log             *zap.Logger
	now             func() time.Time
}

func NewCatalogUsecase(
	catalogRepository contracts.CatalogRepository,
	cache contracts.RedisRepository,
	cacheTTL time.Duration,
	defaultCurrency string,
	logger *zap.Logger,
) contracts.CatalogUsecase {
	return &catalogUsecase{
		CatalogRepository: catalogRepository,
		Cache:             cache,
		CacheTTL:          cacheTTL,
		DefaultCurrency:   defaultCurrency,
		Log:               logger,
		now:               time.Now,
	}
}

func (uc *catalogUsecase) ListServices(ctx context.Context) ([]models.Service, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("catalogUsecase.ListServices called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var services []models.Service
	if uc.readCache(ctx, constvars.RedisKeyCatalogServices, &services) {
		return services, nil
	}

	services, err := uc.CatalogRepository.FindServices(ctx, true)
	if err != nil {
		uc.Log.Error("catalogUsecase.ListServices error fetching services",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.writeCache(ctx, constvars.RedisKeyCatalogServices, services)
	return services, nil
}

func (uc *catalogUsecase) FindService(ctx context.Context, serviceID string) (*models.Service, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("catalogUsecase.FindService called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)

	service, err := uc.CatalogRepository.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil || !service.IsActive {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourceService, serviceID)
	}
	return service, nil
}

// ListOffers returns active offers whose validity window contains the current time.
func (uc *catalogUsecase) ListOffers(ctx context.Context) ([]models.Offer, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("catalogUsecase.ListOffers called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var offers []models.Offer
	if !uc.readCache(ctx, constvars.RedisKeyCatalogOffers, &offers) {
		var err error
		offers, err = uc.CatalogRepository.FindOffers(ctx, true)
		if err != nil {
			uc.Log.Error("catalogUsecase.ListOffers error fetching offers",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		uc.writeCache(ctx, constvars.RedisKeyCatalogOffers, offers)
	}

	now := uc.now()
	current := make([]models.Offer, 0, len(offers))
	for _, offer := range offers {
		if offer.ValidFrom != nil && now.Before(*offer.ValidFrom) {
			continue
		}
		if offer.ValidUntil != nil && now.After(*offer.ValidUntil) {
			continue
		}
		current = append(current, offer)
	}
	return current, nil
}

func (uc *catalogUsecase) CreateService(ctx context.Context, request *requests.CreateService) (*models.Service, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("catalogUsecase.CreateService called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingExternalIDKey, request.ExternalID),
	)

	service := &models.Service{
		ID:              utils.NewID(),
		ExternalID:      request.ExternalID,
		Name:            request.Name,
		Description:     request.Description,
		Category:        request.Category,
		BasePrice:       request.BasePrice,
		Currency:        request.Currency,
		DurationMinutes: request.DurationMinutes,
		IsActive:        true,
	}
	if service.ExternalID == "" {
		service.ExternalID = service.ID
	}
	if service.Currency == "" {
		service.Currency = uc.DefaultCurrency
	}
	if request.IsActive != nil {
		service.IsActive = *request.IsActive
	}
	service.SetCreatedAtUpdatedAt()

	if err := uc.CatalogRepository.CreateService(ctx, service); err != nil {
		uc.Log.Error("catalogUsecase.CreateService error creating service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.invalidate(ctx, constvars.RedisKeyCatalogServices)

	uc.Log.Info("catalogUsecase.CreateService succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, service.ID),
	)
	return service, nil
}

func (uc *catalogUsecase) UpdateService(ctx context.Context, serviceID string, request *requests.UpdateService) (*models.Service, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("catalogUsecase.UpdateService called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)

	service, err := uc.CatalogRepository.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourceService, serviceID)
	}

	if request.Name != nil {
		service.Name = *request.Name
	}
	if request.Description != nil {
		service.Description = *request.Description
	}
	if request.Category != nil {
		service.Category = *request.Category
	}
	if request.BasePrice != nil {
		service.BasePrice = *request.BasePrice
	}
	if request.Currency != nil {
		service.Currency = *request.Currency
	}
	if request.DurationMinutes != nil {
		service.DurationMinutes = *request.DurationMinutes
	}
	if request.IsActive != nil {
		service.IsActive = *request.IsActive
	}
	service.SetUpdatedAt()

	if err := uc.CatalogRepository.UpdateService(ctx, service); err != nil {
		uc.Log.Error("catalogUsecase.UpdateService error updating service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.invalidate(ctx, constvars.RedisKeyCatalogServices)
	return service, nil
}

func (uc *catalogUsecase) DeleteService(ctx context.Context, serviceID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("catalogUsecase.DeleteService called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)

	service, err := uc.CatalogRepository.FindServiceByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if service == nil {
		return exceptions.ErrNotFound(nil, constvars.ResourceService, serviceID)
	}
	if err := uc.CatalogRepository.DeleteService(ctx, serviceID); err != nil {
		uc.Log.Error("catalogUsecase.DeleteService error deleting service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	uc.invalidate(ctx, constvars.RedisKeyCatalogServices)
	return nil
}

func (uc *catalogUsecase) CreateOffer(ctx context.Context, request *requests.CreateOffer) (*models.Offer, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("catalogUsecase.CreateOffer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingExternalIDKey, request.ExternalID),
	)

	offer := &models.Offer{
		ID:              utils.NewID(),
		ExternalID:      request.ExternalID,
		Title:           request.Title,
		Description:     request.Description,
		DiscountPercent: request.DiscountPercent,
		ServiceIDs:      request.ServiceIDs,
		ValidFrom:       request.ValidFrom,
		ValidUntil:      request.ValidUntil,
		IsActive:        true,
	}
	if offer.ExternalID == "" {
		offer.ExternalID = offer.ID
	}
	if request.IsActive != nil {
		offer.IsActive = *request.IsActive
	}
	if err := uc.validateOffer(ctx, offer); err != nil {
		return nil, err
	}
	offer.SetCreatedAtUpdatedAt()

	if err := uc.CatalogRepository.CreateOffer(ctx, offer); err != nil {
		uc.Log.Error("catalogUsecase.CreateOffer error creating offer",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.invalidate(ctx, constvars.RedisKeyCatalogOffers)

	uc.Log.Info("catalogUsecase.CreateOffer succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOfferIDKey, offer.ID),
	)
	return offer, nil
}

func (uc *catalogUsecase) UpdateOffer(ctx context.Context, offerID string, request *requests.UpdateOffer) (*models.Offer, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("catalogUsecase.UpdateOffer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOfferIDKey, offerID),
	)

	offer, err := uc.CatalogRepository.FindOfferByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourceOffer, offerID)
	}

	if request.Title != nil {
		offer.Title = *request.Title
	}
	if request.Description != nil {
		offer.Description = *request.Description
	}
	if request.DiscountPercent != nil {
		offer.DiscountPercent = *request.DiscountPercent
	}
	if request.ServiceIDs != nil {
		offer.ServiceIDs = request.ServiceIDs
	}
	if request.ValidFrom != nil {
		offer.ValidFrom = request.ValidFrom
	}
	if request.ValidUntil != nil {
		offer.ValidUntil = request.ValidUntil
	}
	if request.IsActive != nil {
		offer.IsActive = *request.IsActive
	}
	if err := uc.validateOffer(ctx, offer); err != nil {
		return nil, err
	}
	offer.SetUpdatedAt()

	if err := uc.CatalogRepository.UpdateOffer(ctx, offer); err != nil {
		uc.Log.Error("catalogUsecase.UpdateOffer error updating offer",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.invalidate(ctx, constvars.RedisKeyCatalogOffers)
	return offer, nil
}

func (uc *catalogUsecase) DeleteOffer(ctx context.Context, offerID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("catalogUsecase.DeleteOffer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOfferIDKey, offerID),
	)

	offer, err := uc.CatalogRepository.FindOfferByID(ctx, offerID)
	if err != nil {
		return err
	}
	if offer == nil {
		return exceptions.ErrNotFound(nil, constvars.ResourceOffer, offerID)
	}
	if err := uc.CatalogRepository.DeleteOffer(ctx, offerID); err != nil {
		uc.Log.Error("catalogUsecase.DeleteOffer error deleting offer",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	uc.invalidate(ctx, constvars.RedisKeyCatalogOffers)
	return nil
}

func (uc *catalogUsecase) Seed(ctx context.Context) (int, error) {
	uc.Log.Info("catalogUsecase.Seed called", zap.Int(constvars.LoggingCountKey, len(seedServices)+len(seedOffers)))

	now := uc.now()
	for _, seed := range seedServices {
		service := seed
		service.ID = utils.NewID()
		service.CreatedAt = now
		service.UpdatedAt = now
		if err := uc.CatalogRepository.UpsertServiceByExternalID(ctx, &service); err != nil {
			uc.Log.Error("catalogUsecase.Seed error upserting service",
				zap.String(constvars.LoggingExternalIDKey, service.ExternalID),
				zap.Error(err),
			)
			return 0, err
		}
	}

	services, err := uc.CatalogRepository.FindServices(ctx, false)
	if err != nil {
		return 0, err
	}
	serviceIDs := make(map[string]string, len(services))
	for _, service := range services {
		serviceIDs[service.ExternalID] = service.ID
	}

	for _, seed := range seedOffers {
		offer := seed.Offer
		offer.ID = utils.NewID()
		offer.ServiceIDs = make([]string, 0, len(seed.ServiceExternalIDs))
		for _, externalID := range seed.ServiceExternalIDs {
			if id, ok := serviceIDs[externalID]; ok {
				offer.ServiceIDs = append(offer.ServiceIDs, id)
			}
		}
		offer.CreatedAt = now
		offer.UpdatedAt = now
		if err := uc.CatalogRepository.UpsertOfferByExternalID(ctx, &offer); err != nil {
			uc.Log.Error("catalogUsecase.Seed error upserting offer",
				zap.String(constvars.LoggingExternalIDKey, offer.ExternalID),
				zap.Error(err),
			)
			return 0, err
		}
	}

	uc.invalidate(ctx, constvars.RedisKeyCatalogServices, constvars.RedisKeyCatalogOffers)

	count := len(seedServices) + len(seedOffers)
	uc.Log.Info("catalogUsecase.Seed succeeded", zap.Int(constvars.LoggingCountKey, count))
	return count, nil
}

func (uc *catalogUsecase) validateOffer(ctx context.Context, offer *models.Offer) error {
	if offer.ValidFrom != nil && offer.ValidUntil != nil && !offer.ValidUntil.After(*offer.ValidFrom) {
		return exceptions.ErrInputValidationMessage(constvars.ErrClientOfferWindowInvalid)
	}
	for _, serviceID := range offer.ServiceIDs {
		service, err := uc.CatalogRepository.FindServiceByID(ctx, serviceID)
		if err != nil {
			return err
		}
		if service == nil {
			return exceptions.ErrInputValidationMessage(constvars.ErrClientServiceUnavailable)
		}
	}
	return nil
}

// readCache reports whether dst was filled from the cache. Cache failures fall
// through to the repository.
func (uc *catalogUsecase) readCache(ctx context.Context, key string, dst interface{}) bool {
	if uc.Cache == nil {
		return false
	}
	raw, err := uc.Cache.Get(ctx, key)
	if err != nil {
		uc.Log.Warn("catalogUsecase cache read failed",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false
	}
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		uc.Log.Warn("catalogUsecase cache entry unreadable",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (uc *catalogUsecase) writeCache(ctx context.Context, key string, value interface{}) {
	if uc.Cache == nil {
		return
	}
	if err := uc.Cache.Set(ctx, key, value, uc.CacheTTL); err != nil {
		uc.Log.Warn("catalogUsecase cache write failed",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
}

func (uc *catalogUsecase) invalidate(ctx context.Context, keys ...string) {
	if uc.Cache == nil {
		return
	}
	if err := uc.Cache.Delete(ctx, keys...); err != nil {
		uc.Log.Warn("catalogUsecase cache invalidation failed",
			zap.Strings(constvars.LoggingRedisKey, keys),
			zap.Error(err),
		)
	}
}
