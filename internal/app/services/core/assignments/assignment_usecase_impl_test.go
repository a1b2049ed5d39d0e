package assignments

import (
	"context"
	"homevisit-service/internal/app/contracts"
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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	appointments contracts.AppointmentUsecase
	assignments  contracts.AssignmentUsecase
	patient      *models.Principal
	request      *requests.CreateAppointment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := database.NewMemoryDB()
	log := zap.NewNop()
	transactor := transaction.NewMemoryTransactor(db)
	publisher := events.NewLoggingPublisher(log)

	catalogRepo := catalog.NewCatalogMemoryRepository(db)
	addressRepo := addresses.NewAddressMemoryRepository(db)
	userRepo := users.NewUserMemoryRepository(db)
	appointmentRepo := appointments.NewAppointmentMemoryRepository(db)

	patient := &models.Principal{SubjectID: "patient-1", Role: constvars.RolePatient}
	require.NoError(t, userRepo.Create(ctx, &models.User{ID: patient.SubjectID, Role: constvars.RolePatient, DisplayName: "Asha Rao", Status: constvars.UserStatusActive}))
	service := &models.Service{ID: "3b0f4a57-8f54-4c4e-9f0e-1d2f5b8c7a10", ExternalID: "svc-checkup", Name: "General Health Checkup", BasePrice: 1500, IsActive: true}
	require.NoError(t, catalogRepo.CreateService(ctx, service))
	address := &models.Address{ID: "9a1c3e52-2b7d-4f61-8c0a-5e4d3b2a1f00", OwnerID: patient.SubjectID, Line1: "1 Main St", City: "Pune"}
	require.NoError(t, addressRepo.Create(ctx, address))

	return &fixture{
		appointments: appointments.NewAppointmentUsecase(transactor, appointmentRepo, addressRepo, catalogRepo, publisher, false, log),
		assignments:  NewAssignmentUsecase(transactor, appointmentRepo, userRepo, addressRepo, catalogRepo, publisher, log),
		patient:      patient,
		request: &requests.CreateAppointment{
			ServiceID:         service.ID,
			AddressID:         address.ID,
			RequestedDate:     "2030-01-01",
			RequestedTimeSlot: "09:00-10:00",
		},
	}
}

func doctor(id string) *models.Principal {
	return &models.Principal{SubjectID: id, Role: constvars.RoleDoctor}
}

func TestAssignmentUsecase_ListAvailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.appointments.CreateAppointment(ctx, f.patient, f.request)
	require.NoError(t, err)
	taken, err := f.appointments.CreateAppointment(ctx, f.patient, f.request)
	require.NoError(t, err)
	_, err = f.assignments.Accept(ctx, doctor("doctor-1"), taken.ID)
	require.NoError(t, err)

	available, err := f.assignments.ListAvailable(ctx, doctor("doctor-2"))
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, created.ID, available[0].ID)
	assert.Equal(t, "Asha Rao", available[0].PatientName)
	assert.Equal(t, "General Health Checkup", available[0].ServiceName)
	require.NotNil(t, available[0].Address)
	assert.Equal(t, "Pune", available[0].Address.City)
}

func TestAssignmentUsecase_ConcurrentAccept(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	appointment, err := f.appointments.CreateAppointment(ctx, f.patient, f.request)
	require.NoError(t, err)

	doctors := []string{"doctor-1", "doctor-2", "doctor-3", "doctor-4", "doctor-5"}
	results := make([]error, len(doctors))
	var wg sync.WaitGroup
	for i, id := range doctors {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, results[i] = f.assignments.Accept(ctx, doctor(id), appointment.ID)
		}(i, id)
	}
	wg.Wait()

	winner := ""
	for i, err := range results {
		if err == nil {
			require.Empty(t, winner, "more than one accept succeeded")
			winner = doctors[i]
			continue
		}
		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrClientAppointmentAlreadyAssigned, customErr.ClientMessage)
	}
	require.NotEmpty(t, winner)

	stored, err := f.appointments.FindDoctorAppointment(ctx, doctor(winner), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, constvars.AppointmentStatusAssigned, stored.Status)
	assert.True(t, stored.IsAssignedTo(winner))
}

func TestAssignmentUsecase_Decline(t *testing.T) {
	ctx := context.Background()

	t.Run("decline removes it from the pool", func(t *testing.T) {
		f := newFixture(t)
		appointment, err := f.appointments.CreateAppointment(ctx, f.patient, f.request)
		require.NoError(t, err)

		declined, err := f.assignments.Decline(ctx, doctor("doctor-1"), appointment.ID, &requests.DeclineAppointment{Reason: "out of range"})
		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusDeclinedByDoctor, declined.Status)

		available, err := f.assignments.ListAvailable(ctx, doctor("doctor-2"))
		require.NoError(t, err)
		assert.Empty(t, available)

		_, err = f.assignments.Accept(ctx, doctor("doctor-2"), appointment.ID)
		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
	})

	t.Run("assigned appointment cannot be declined", func(t *testing.T) {
		f := newFixture(t)
		appointment, err := f.appointments.CreateAppointment(ctx, f.patient, f.request)
		require.NoError(t, err)
		_, err = f.assignments.Accept(ctx, doctor("doctor-1"), appointment.ID)
		require.NoError(t, err)

		_, err = f.assignments.Decline(ctx, doctor("doctor-2"), appointment.ID, &requests.DeclineAppointment{})
		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
	})

	t.Run("unknown appointment", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.assignments.Accept(ctx, doctor("doctor-1"), "missing")
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	})
}
