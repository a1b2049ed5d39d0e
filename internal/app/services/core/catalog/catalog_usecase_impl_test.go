package catalog

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/exceptions"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		c.deletes = append(c.deletes, key)
	}
	return nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = string(raw)
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *fakeCache) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return false, nil
	}
	raw, _ := json.Marshal(value)
	c.entries[key] = string(raw)
	return true, nil
}

func (c *fakeCache) CompareAndDelete(ctx context.Context, key string, expected interface{}) (bool, error) {
	return false, nil
}

func (c *fakeCache) CompareAndExpire(ctx context.Context, key string, expected interface{}, exp time.Duration) (bool, error) {
	return false, nil
}

func newTestUsecase(cache contracts.RedisRepository) (contracts.CatalogUsecase, contracts.CatalogRepository) {
	repo := NewCatalogMemoryRepository(database.NewMemoryDB())
	return NewCatalogUsecase(repo, cache, time.Minute, "INR", zap.NewNop()), repo
}

func TestCatalogUsecase_Seed(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUsecase(nil)

	count, err := uc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(seedServices)+len(seedOffers), count)

	first, err := repo.FindServices(ctx, false)
	require.NoError(t, err)
	require.Len(t, first, len(seedServices))

	_, err = uc.Seed(ctx)
	require.NoError(t, err)

	second, err := repo.FindServices(ctx, false)
	require.NoError(t, err)
	require.Len(t, second, len(seedServices))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID, "seed must keep ids of %s", first[i].ExternalID)
	}

	offers, err := repo.FindOffers(ctx, false)
	require.NoError(t, err)
	require.Len(t, offers, len(seedOffers))
	for _, offer := range offers {
		assert.NotEmpty(t, offer.ServiceIDs)
	}
}

func TestCatalogUsecase_Services(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults currency and external id", func(t *testing.T) {
		uc, _ := newTestUsecase(nil)
		service, err := uc.CreateService(ctx, &requests.CreateService{Name: "Checkup", Category: "consultation", BasePrice: 1500, DurationMinutes: 30})
		require.NoError(t, err)
		assert.Equal(t, "INR", service.Currency)
		assert.Equal(t, service.ID, service.ExternalID)
		assert.True(t, service.IsActive)
	})

	t.Run("inactive service is hidden from public reads", func(t *testing.T) {
		uc, _ := newTestUsecase(nil)
		inactive := false
		service, err := uc.CreateService(ctx, &requests.CreateService{Name: "Hidden", Category: "x", BasePrice: 10, DurationMinutes: 10, IsActive: &inactive})
		require.NoError(t, err)

		_, err = uc.FindService(ctx, service.ID)
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))

		services, err := uc.ListServices(ctx)
		require.NoError(t, err)
		assert.Empty(t, services)
	})

	t.Run("admin writes invalidate the cache", func(t *testing.T) {
		cache := newFakeCache()
		uc, _ := newTestUsecase(cache)

		services, err := uc.ListServices(ctx)
		require.NoError(t, err)
		assert.Empty(t, services)
		assert.NotEmpty(t, cache.entries[constvars.RedisKeyCatalogServices])

		created, err := uc.CreateService(ctx, &requests.CreateService{Name: "Checkup", Category: "consultation", BasePrice: 1500, DurationMinutes: 30})
		require.NoError(t, err)
		assert.Contains(t, cache.deletes, constvars.RedisKeyCatalogServices)

		services, err = uc.ListServices(ctx)
		require.NoError(t, err)
		require.Len(t, services, 1)
		assert.Equal(t, created.ID, services[0].ID)

		price := 2000.0
		_, err = uc.UpdateService(ctx, created.ID, &requests.UpdateService{BasePrice: &price})
		require.NoError(t, err)
		services, err = uc.ListServices(ctx)
		require.NoError(t, err)
		assert.Equal(t, price, services[0].BasePrice)
	})

	t.Run("unknown service", func(t *testing.T) {
		uc, _ := newTestUsecase(nil)
		err := uc.DeleteService(ctx, "missing")
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	})
}

func TestCatalogUsecase_Offers(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an inverted validity window", func(t *testing.T) {
		uc, _ := newTestUsecase(nil)
		from := time.Now()
		until := from.Add(-time.Hour)
		_, err := uc.CreateOffer(ctx, &requests.CreateOffer{Title: "Bad", DiscountPercent: 10, ValidFrom: &from, ValidUntil: &until})
		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
	})

	t.Run("rejects unknown services", func(t *testing.T) {
		uc, _ := newTestUsecase(nil)
		_, err := uc.CreateOffer(ctx, &requests.CreateOffer{Title: "Bad", DiscountPercent: 10, ServiceIDs: []string{"5d1f2f9e-5f4b-4a57-9b0c-6a3f7c2a1e11"}})
		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
	})

	t.Run("lists only offers inside their window", func(t *testing.T) {
		uc, _ := newTestUsecase(nil)
		now := time.Now()
		past := now.Add(-48 * time.Hour)
		expired := now.Add(-24 * time.Hour)
		future := now.Add(24 * time.Hour)

		current, err := uc.CreateOffer(ctx, &requests.CreateOffer{Title: "Current", DiscountPercent: 10, ValidFrom: &past, ValidUntil: &future})
		require.NoError(t, err)
		_, err = uc.CreateOffer(ctx, &requests.CreateOffer{Title: "Expired", DiscountPercent: 10, ValidFrom: &past, ValidUntil: &expired})
		require.NoError(t, err)

		offers, err := uc.ListOffers(ctx)
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, current.ID, offers[0].ID)
	})
}
