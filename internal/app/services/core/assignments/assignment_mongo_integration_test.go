//go:build integration

package assignments

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/app/services/core/addresses"
	"homevisit-service/internal/app/services/core/appointments"
	"homevisit-service/internal/app/services/core/catalog"
	"homevisit-service/internal/app/services/core/users"
	"homevisit-service/internal/app/services/shared/events"
	"homevisit-service/internal/app/services/shared/transaction"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/exceptions"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Run with: MONGODB_HOST=... go test -tags integration ./internal/app/services/core/assignments/
func TestAssignmentUsecase_MongoConcurrentAccept(t *testing.T) {
	if os.Getenv("MONGODB_HOST") == "" {
		t.Skip("MONGODB_HOST not set")
	}
	ctx := context.Background()
	log := zap.NewNop()

	driverConfig := config.NewDriverConfig()
	dbName := fmt.Sprintf("homevisit_it_%d", time.Now().UnixNano())
	client := database.NewMongoDB(driverConfig)
	require.NoError(t, database.EnsureMongoIndexes(ctx, client, dbName))
	t.Cleanup(func() {
		_ = client.Database(dbName).Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	transactor := transaction.NewMongoTransactor(client, log)
	publisher := events.NewLoggingPublisher(log)
	catalogRepo := catalog.NewCatalogMongoRepository(client, dbName)
	addressRepo := addresses.NewAddressMongoRepository(client, dbName)
	userRepo := users.NewUserMongoRepository(client, dbName)
	appointmentRepo := appointments.NewAppointmentMongoRepository(client, dbName)

	patient := &models.Principal{SubjectID: "patient-1", Role: constvars.RolePatient}
	service := &models.Service{ID: "3b0f4a57-8f54-4c4e-9f0e-1d2f5b8c7a10", ExternalID: "svc-checkup", Name: "General Health Checkup", BasePrice: 1500, IsActive: true}
	require.NoError(t, catalogRepo.CreateService(ctx, service))
	address := &models.Address{ID: "9a1c3e52-2b7d-4f61-8c0a-5e4d3b2a1f00", OwnerID: patient.SubjectID, Line1: "1 Main St", City: "Pune"}
	require.NoError(t, addressRepo.Create(ctx, address))

	appointmentUsecase := appointments.NewAppointmentUsecase(transactor, appointmentRepo, addressRepo, catalogRepo, publisher, false, log)
	assignmentUsecase := NewAssignmentUsecase(transactor, appointmentRepo, userRepo, addressRepo, catalogRepo, publisher, log)

	appointment, err := appointmentUsecase.CreateAppointment(ctx, patient, &requests.CreateAppointment{
		ServiceID:         service.ID,
		AddressID:         address.ID,
		RequestedDate:     "2030-01-01",
		RequestedTimeSlot: "09:00-10:00",
	})
	require.NoError(t, err)

	doctors := []string{"doctor-1", "doctor-2", "doctor-3", "doctor-4"}
	results := make([]error, len(doctors))
	var wg sync.WaitGroup
	for i, id := range doctors {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, results[i] = assignmentUsecase.Accept(ctx, doctor(id), appointment.ID)
		}(i, id)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err), err.Error())
	}
	assert.Equal(t, 1, winners)
}
