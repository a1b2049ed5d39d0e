package addresses

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/app/services/shared/transaction"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/exceptions"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUsecase() contracts.AddressUsecase {
	db := database.NewMemoryDB()
	return NewAddressUsecase(transaction.NewMemoryTransactor(db), NewAddressMemoryRepository(db), zap.NewNop())
}

func countDefaults(addresses []models.Address) int {
	count := 0
	for _, address := range addresses {
		if address.IsDefault {
			count++
		}
	}
	return count
}

func newAddressRequest(isDefault bool) *requests.CreateAddress {
	return &requests.CreateAddress{Line1: "1 Main St", City: "Pune", State: "MH", Zip: "411001", IsDefault: isDefault}
}

func TestAddressUsecase_SingleDefault(t *testing.T) {
	ctx := context.Background()
	patient := &models.Principal{SubjectID: "patient-1", Role: constvars.RolePatient}

	t.Run("new default clears the previous one", func(t *testing.T) {
		uc := newTestUsecase()
		first, err := uc.CreateAddress(ctx, patient, newAddressRequest(true))
		require.NoError(t, err)
		second, err := uc.CreateAddress(ctx, patient, newAddressRequest(true))
		require.NoError(t, err)

		addresses, err := uc.ListAddresses(ctx, patient)
		require.NoError(t, err)
		require.Len(t, addresses, 2)
		assert.Equal(t, 1, countDefaults(addresses))
		for _, address := range addresses {
			assert.Equal(t, address.ID == second.ID, address.IsDefault, "address %s", address.ID)
		}
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("update to default clears the others", func(t *testing.T) {
		uc := newTestUsecase()
		_, err := uc.CreateAddress(ctx, patient, newAddressRequest(true))
		require.NoError(t, err)
		other, err := uc.CreateAddress(ctx, patient, newAddressRequest(false))
		require.NoError(t, err)

		isDefault := true
		_, err = uc.UpdateAddress(ctx, patient, other.ID, &requests.UpdateAddress{IsDefault: &isDefault})
		require.NoError(t, err)

		addresses, err := uc.ListAddresses(ctx, patient)
		require.NoError(t, err)
		assert.Equal(t, 1, countDefaults(addresses))
	})

	t.Run("concurrent default requests leave one default", func(t *testing.T) {
		uc := newTestUsecase()
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.CreateAddress(ctx, patient, newAddressRequest(true))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		addresses, err := uc.ListAddresses(ctx, patient)
		require.NoError(t, err)
		assert.Len(t, addresses, 20)
		assert.Equal(t, 1, countDefaults(addresses))
	})

	t.Run("defaults are tracked per owner", func(t *testing.T) {
		uc := newTestUsecase()
		other := &models.Principal{SubjectID: "patient-2", Role: constvars.RolePatient}
		_, err := uc.CreateAddress(ctx, patient, newAddressRequest(true))
		require.NoError(t, err)
		_, err = uc.CreateAddress(ctx, other, newAddressRequest(true))
		require.NoError(t, err)

		mine, err := uc.ListAddresses(ctx, patient)
		require.NoError(t, err)
		assert.Equal(t, 1, countDefaults(mine))
	})
}

func TestAddressUsecase_Ownership(t *testing.T) {
	ctx := context.Background()
	owner := &models.Principal{SubjectID: "patient-1", Role: constvars.RolePatient}
	stranger := &models.Principal{SubjectID: "patient-2", Role: constvars.RolePatient}
	uc := newTestUsecase()

	address, err := uc.CreateAddress(ctx, owner, newAddressRequest(false))
	require.NoError(t, err)

	city := "Mumbai"
	_, err = uc.UpdateAddress(ctx, stranger, address.ID, &requests.UpdateAddress{City: &city})
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))

	err = uc.DeleteAddress(ctx, stranger, address.ID)
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))

	err = uc.DeleteAddress(ctx, owner, "missing")
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))

	updated, err := uc.UpdateAddress(ctx, owner, address.ID, &requests.UpdateAddress{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", updated.City)

	require.NoError(t, uc.DeleteAddress(ctx, owner, address.ID))
	addresses, err := uc.ListAddresses(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, addresses)
}
