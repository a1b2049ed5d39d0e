package feedbacks

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/app/services/core/appointments"
	"homevisit-service/internal/app/services/shared/events"
	"homevisit-service/internal/app/services/shared/transaction"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	usecase      contracts.FeedbackUsecase
	appointments contracts.AppointmentRepository
	patient      *models.Principal
	doctorID     string
}

func newFixture() *fixture {
	db := database.NewMemoryDB()
	log := zap.NewNop()
	appointmentRepo := appointments.NewAppointmentMemoryRepository(db)
	return &fixture{
		usecase:      NewFeedbackUsecase(transaction.NewMemoryTransactor(db), appointmentRepo, NewFeedbackMemoryRepository(db), events.NewLoggingPublisher(log), log),
		appointments: appointmentRepo,
		patient:      &models.Principal{SubjectID: "patient-1", Role: constvars.RolePatient},
		doctorID:     "doctor-1",
	}
}

func (f *fixture) seed(t *testing.T, id, status, paymentStatus string) {
	t.Helper()
	appointment := &models.Appointment{
		ID:            id,
		PatientID:     f.patient.SubjectID,
		DoctorID:      &f.doctorID,
		Status:        status,
		PaymentStatus: paymentStatus,
	}
	appointment.SetCreatedAtUpdatedAt()
	require.NoError(t, f.appointments.Create(context.Background(), appointment))
}

func TestFeedbackUsecase_Rating(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		rating  int
		wantErr bool
	}{
		{rating: 0, wantErr: true},
		{rating: 1, wantErr: false},
		{rating: 5, wantErr: false},
		{rating: 6, wantErr: true},
	}

	for _, tt := range tests {
		f := newFixture()
		f.seed(t, "appt-1", constvars.AppointmentStatusCompleted, constvars.PaymentStatusPending)

		feedback, err := f.usecase.SubmitFeedback(ctx, f.patient, "appt-1", &requests.SubmitFeedback{Rating: tt.rating})
		if tt.wantErr {
			assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err), "rating %d", tt.rating)
			continue
		}
		require.NoError(t, err, "rating %d", tt.rating)
		assert.Equal(t, tt.rating, feedback.Rating)
		require.NotNil(t, feedback.DoctorID)
		assert.Equal(t, f.doctorID, *feedback.DoctorID)
	}
}

func TestFeedbackUsecase_Eligibility(t *testing.T) {
	ctx := context.Background()

	t.Run("paid but not completed is allowed", func(t *testing.T) {
		f := newFixture()
		f.seed(t, "appt-1", constvars.AppointmentStatusServiceStarted, constvars.PaymentStatusPaid)
		_, err := f.usecase.SubmitFeedback(ctx, f.patient, "appt-1", &requests.SubmitFeedback{Rating: 4})
		assert.NoError(t, err)
	})

	t.Run("in progress and unpaid is rejected", func(t *testing.T) {
		f := newFixture()
		f.seed(t, "appt-1", constvars.AppointmentStatusArrived, constvars.PaymentStatusPending)
		_, err := f.usecase.SubmitFeedback(ctx, f.patient, "appt-1", &requests.SubmitFeedback{Rating: 4})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrClientFeedbackNotAllowed, customErr.ClientMessage)
	})

	t.Run("paid but back in the pool or cancelled is rejected", func(t *testing.T) {
		for _, status := range []string{
			constvars.AppointmentStatusPendingAssignment,
			constvars.AppointmentStatusCancelledByPatient,
			constvars.AppointmentStatusDeclinedByDoctor,
		} {
			f := newFixture()
			f.seed(t, "appt-1", status, constvars.PaymentStatusPaid)
			_, err := f.usecase.SubmitFeedback(ctx, f.patient, "appt-1", &requests.SubmitFeedback{Rating: 4})
			var customErr *exceptions.CustomError
			require.ErrorAs(t, err, &customErr, status)
			assert.Equal(t, constvars.ErrClientFeedbackNotAllowed, customErr.ClientMessage, status)
		}
	})

	t.Run("only once per appointment", func(t *testing.T) {
		f := newFixture()
		f.seed(t, "appt-1", constvars.AppointmentStatusCompleted, constvars.PaymentStatusPaid)
		_, err := f.usecase.SubmitFeedback(ctx, f.patient, "appt-1", &requests.SubmitFeedback{Rating: 5})
		require.NoError(t, err)

		_, err = f.usecase.SubmitFeedback(ctx, f.patient, "appt-1", &requests.SubmitFeedback{Rating: 3})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrClientFeedbackAlreadySubmitted, customErr.ClientMessage)
	})

	t.Run("someone else's appointment", func(t *testing.T) {
		f := newFixture()
		f.seed(t, "appt-1", constvars.AppointmentStatusCompleted, constvars.PaymentStatusPaid)
		stranger := &models.Principal{SubjectID: "patient-2", Role: constvars.RolePatient}
		_, err := f.usecase.SubmitFeedback(ctx, stranger, "appt-1", &requests.SubmitFeedback{Rating: 5})
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	})
}

func TestFeedbackUsecase_Lists(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t, "appt-1", constvars.AppointmentStatusCompleted, constvars.PaymentStatusPaid)
	f.seed(t, "appt-2", constvars.AppointmentStatusCompleted, constvars.PaymentStatusPaid)

	_, err := f.usecase.SubmitFeedback(ctx, f.patient, "appt-1", &requests.SubmitFeedback{Rating: 5})
	require.NoError(t, err)
	_, err = f.usecase.SubmitFeedback(ctx, f.patient, "appt-2", &requests.SubmitFeedback{Rating: 2, Comments: "late"})
	require.NoError(t, err)

	mine, err := f.usecase.ListPatientFeedback(ctx, f.patient)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	doctor := &models.Principal{SubjectID: f.doctorID, Role: constvars.RoleDoctor}
	received, err := f.usecase.ListDoctorFeedback(ctx, doctor)
	require.NoError(t, err)
	assert.Len(t, received, 2)

	other := &models.Principal{SubjectID: "doctor-2", Role: constvars.RoleDoctor}
	none, err := f.usecase.ListDoctorFeedback(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, none)
}
