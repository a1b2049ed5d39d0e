package payments

import (
	"context"
	"errors"
	"fmt"
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/app/services/core/appointments"
	"homevisit-service/internal/app/services/core/earnings"
	"homevisit-service/internal/app/services/shared/events"
	"homevisit-service/internal/app/services/shared/locker"
	"homevisit-service/internal/app/services/shared/payment_gateway"
	"homevisit-service/internal/app/services/shared/transaction"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/exceptions"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Charge(ctx context.Context, request *models.ChargeRequest) (*models.ChargeResult, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*models.ChargeResult)
	return result, args.Error(1)
}

type memoryArchive struct {
	mu      sync.Mutex
	objects map[string]*models.Payment
}

func newMemoryArchive() *memoryArchive {
	return &memoryArchive{objects: make(map[string]*models.Payment)}
}

func (a *memoryArchive) Store(ctx context.Context, payment *models.Payment) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.objects[payment.ReceiptObjectKey] = payment
	return nil
}

func (a *memoryArchive) Exists(ctx context.Context, objectKey string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.objects[objectKey]
	return ok, nil
}

func (a *memoryArchive) PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	return "https://receipts.local/" + objectKey, nil
}

func testConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Fee: config.AppFee{PlatformPercent: 0.15, DoctorPercent: 0.70, AdminPercent: 0.15},
		Payment: config.AppPayment{
			DefaultCurrency:              "INR",
			SettlementLockTTLInSeconds:   30,
			GatewayRequestTimeoutSeconds: 5,
		},
		Minio: config.AppMinio{PresignedURLExpiryInMinutes: 15},
	}
}

type fixture struct {
	usecase      contracts.PaymentUsecase
	appointments contracts.AppointmentRepository
	payments     contracts.PaymentRepository
	earnings     contracts.EarningsRepository
	locker       contracts.LockerService
	archive      *memoryArchive
	patient      *models.Principal
}

func newFixture(t *testing.T, gateway contracts.PaymentGateway) *fixture {
	t.Helper()
	db := database.NewMemoryDB()
	log := zap.NewNop()
	f := &fixture{
		appointments: appointments.NewAppointmentMemoryRepository(db),
		payments:     NewPaymentMemoryRepository(db),
		earnings:     earnings.NewEarningsMemoryRepository(db),
		locker:       locker.NewMemoryLockService(),
		archive:      newMemoryArchive(),
		patient:      &models.Principal{SubjectID: "patient-1", Role: constvars.RolePatient},
	}
	if gateway == nil {
		gateway = payment_gateway.NewApprovingGateway(log)
	}
	f.usecase = NewPaymentUsecase(
		transaction.NewMemoryTransactor(db),
		f.appointments,
		f.payments,
		f.earnings,
		gateway,
		f.locker,
		f.archive,
		events.NewLoggingPublisher(log),
		testConfig(),
		log,
	)
	return f
}

func (f *fixture) seedAppointment(t *testing.T, status string, doctorID *string) *models.Appointment {
	t.Helper()
	appointment := &models.Appointment{
		ID:            fmt.Sprintf("appt-%d", time.Now().UnixNano()),
		PatientID:     f.patient.SubjectID,
		ServiceID:     "service-1",
		AddressID:     "address-1",
		DoctorID:      doctorID,
		EstimatedCost: 1500,
		Status:        status,
		PaymentStatus: constvars.PaymentStatusPending,
	}
	appointment.SetCreatedAtUpdatedAt()
	require.NoError(t, f.appointments.Create(context.Background(), appointment))
	return appointment
}

func settleRequest() *requests.SettlePayment {
	return &requests.SettlePayment{Amount: 1500, Method: "card"}
}

func TestPaymentUsecase_Settle(t *testing.T) {
	ctx := context.Background()
	doctorID := "doctor-1"

	t.Run("successful settlement splits fees and credits the doctor", func(t *testing.T) {
		f := newFixture(t, nil)
		appointment := f.seedAppointment(t, constvars.AppointmentStatusCompleted, &doctorID)

		result, err := f.usecase.Settle(ctx, f.patient, appointment.ID, settleRequest())
		require.NoError(t, err)
		assert.Equal(t, constvars.PaymentRecordStatusSuccessful, result.Status)
		assert.Equal(t, constvars.PaymentStatusPaid, result.PaymentStatus)
		assert.Equal(t, "INR", result.Currency)
		assert.InDelta(t, 1050.0, result.DoctorFee, 1e-9)
		assert.InDelta(t, 1500.0, result.DoctorFee+result.PlatformFee+result.AdminFee, 1e-9)

		stored, err := f.appointments.FindByID(ctx, appointment.ID)
		require.NoError(t, err)
		assert.Equal(t, constvars.PaymentStatusPaid, stored.PaymentStatus)
		require.NotNil(t, stored.PaymentID)
		assert.Equal(t, result.PaymentID, *stored.PaymentID)

		payment, err := f.payments.FindByID(ctx, result.PaymentID)
		require.NoError(t, err)
		require.NotNil(t, payment.DoctorID)
		assert.Equal(t, doctorID, *payment.DoctorID)
		assert.Equal(t, fmt.Sprintf(constvars.ReceiptObjectKeyFormat, f.patient.SubjectID, payment.ID), payment.ReceiptObjectKey)

		exists, err := f.archive.Exists(ctx, payment.ReceiptObjectKey)
		require.NoError(t, err)
		assert.True(t, exists)

		summary, err := f.earnings.FindByDoctor(ctx, doctorID)
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.InDelta(t, 1050.0, summary.TotalDoctorFee, 1e-9)
		assert.Equal(t, 1, summary.SettledAppointments)
	})

	t.Run("second settlement is rejected", func(t *testing.T) {
		f := newFixture(t, nil)
		appointment := f.seedAppointment(t, constvars.AppointmentStatusCompleted, &doctorID)

		_, err := f.usecase.Settle(ctx, f.patient, appointment.ID, settleRequest())
		require.NoError(t, err)
		_, err = f.usecase.Settle(ctx, f.patient, appointment.ID, settleRequest())
		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrClientAlreadySettled, customErr.ClientMessage)

		successful, err := f.payments.FindSuccessfulByAppointment(ctx, appointment.ID)
		require.NoError(t, err)
		assert.Len(t, successful, 1)

		summary, err := f.earnings.FindByDoctor(ctx, doctorID)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.SettledAppointments)
	})

	t.Run("failed charge leaves the appointment payable", func(t *testing.T) {
		gateway := &mockGateway{}
		gateway.On("Charge", mock.Anything, mock.Anything).
			Return(&models.ChargeResult{Successful: false, GatewayTransactionID: "txn_declined", FailureReason: "card declined"}, nil).Once()
		gateway.On("Charge", mock.Anything, mock.Anything).
			Return(&models.ChargeResult{Successful: true, GatewayTransactionID: "txn_ok"}, nil).Once()

		f := newFixture(t, gateway)
		appointment := f.seedAppointment(t, constvars.AppointmentStatusCompleted, &doctorID)

		failed, err := f.usecase.Settle(ctx, f.patient, appointment.ID, settleRequest())
		require.NoError(t, err)
		assert.Equal(t, constvars.PaymentRecordStatusFailed, failed.Status)
		assert.Equal(t, constvars.PaymentStatusFailed, failed.PaymentStatus)
		assert.Zero(t, failed.DoctorFee)

		summary, err := f.earnings.FindByDoctor(ctx, doctorID)
		require.NoError(t, err)
		assert.Nil(t, summary)

		retried, err := f.usecase.Settle(ctx, f.patient, appointment.ID, settleRequest())
		require.NoError(t, err)
		assert.Equal(t, constvars.PaymentRecordStatusSuccessful, retried.Status)
		assert.Equal(t, constvars.PaymentStatusPaid, retried.PaymentStatus)

		all, err := f.usecase.ListPayments(ctx, f.patient)
		require.NoError(t, err)
		assert.Len(t, all, 2)
		gateway.AssertExpectations(t)
	})

	t.Run("gateway error records nothing", func(t *testing.T) {
		gateway := &mockGateway{}
		gateway.On("Charge", mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()

		f := newFixture(t, gateway)
		appointment := f.seedAppointment(t, constvars.AppointmentStatusCompleted, &doctorID)

		_, err := f.usecase.Settle(ctx, f.patient, appointment.ID, settleRequest())
		assert.Equal(t, constvars.StatusInternalServerError, exceptions.StatusCodeOf(err))

		payments, err := f.usecase.ListPayments(ctx, f.patient)
		require.NoError(t, err)
		assert.Empty(t, payments)

		stored, err := f.appointments.FindByID(ctx, appointment.ID)
		require.NoError(t, err)
		assert.Equal(t, constvars.PaymentStatusPending, stored.PaymentStatus)
	})

	t.Run("held lock reports settlement in progress", func(t *testing.T) {
		gateway := &mockGateway{}
		f := newFixture(t, gateway)
		appointment := f.seedAppointment(t, constvars.AppointmentStatusCompleted, &doctorID)

		acquired, _, err := f.locker.TryLock(ctx, fmt.Sprintf(constvars.RedisKeySettlementLockFormat, appointment.ID), time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		_, err = f.usecase.Settle(ctx, f.patient, appointment.ID, settleRequest())
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrClientSettlementInProgress, customErr.ClientMessage)
		gateway.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
	})

	t.Run("cancelled appointment cannot be settled", func(t *testing.T) {
		f := newFixture(t, nil)
		appointment := f.seedAppointment(t, constvars.AppointmentStatusCancelledByPatient, nil)

		_, err := f.usecase.Settle(ctx, f.patient, appointment.ID, settleRequest())
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrClientAppointmentNotPayable, customErr.ClientMessage)
	})

	t.Run("unassigned appointment settles without earnings", func(t *testing.T) {
		f := newFixture(t, nil)
		appointment := f.seedAppointment(t, constvars.AppointmentStatusPendingAssignment, nil)

		result, err := f.usecase.Settle(ctx, f.patient, appointment.ID, settleRequest())
		require.NoError(t, err)
		assert.Equal(t, constvars.PaymentStatusPaid, result.PaymentStatus)

		summaries, err := f.earnings.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})

	t.Run("other patient gets not found", func(t *testing.T) {
		f := newFixture(t, nil)
		appointment := f.seedAppointment(t, constvars.AppointmentStatusCompleted, &doctorID)
		stranger := &models.Principal{SubjectID: "patient-2", Role: constvars.RolePatient}

		_, err := f.usecase.Settle(ctx, stranger, appointment.ID, settleRequest())
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	})

	t.Run("concurrent settlements charge once", func(t *testing.T) {
		f := newFixture(t, nil)
		appointment := f.seedAppointment(t, constvars.AppointmentStatusCompleted, &doctorID)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = f.usecase.Settle(ctx, f.patient, appointment.ID, settleRequest())
			}()
		}
		wg.Wait()

		successful, err := f.payments.FindSuccessfulByAppointment(ctx, appointment.ID)
		require.NoError(t, err)
		assert.Len(t, successful, 1)
	})
}

func TestPaymentUsecase_GetReceipt(t *testing.T) {
	ctx := context.Background()
	doctorID := "doctor-1"

	t.Run("missing receipt is uploaded again", func(t *testing.T) {
		f := newFixture(t, nil)
		appointment := f.seedAppointment(t, constvars.AppointmentStatusCompleted, &doctorID)
		result, err := f.usecase.Settle(ctx, f.patient, appointment.ID, settleRequest())
		require.NoError(t, err)

		f.archive.objects = make(map[string]*models.Payment)

		receipt, err := f.usecase.GetReceipt(ctx, f.patient, result.PaymentID)
		require.NoError(t, err)
		assert.Equal(t, result.PaymentID, receipt.PaymentID)
		assert.Contains(t, receipt.URL, result.PaymentID)

		key := fmt.Sprintf(constvars.ReceiptObjectKeyFormat, f.patient.SubjectID, result.PaymentID)
		exists, err := f.archive.Exists(ctx, key)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("failed payments have no receipt", func(t *testing.T) {
		gateway := &mockGateway{}
		gateway.On("Charge", mock.Anything, mock.Anything).Return(&models.ChargeResult{Successful: false}, nil)
		f := newFixture(t, gateway)
		appointment := f.seedAppointment(t, constvars.AppointmentStatusCompleted, &doctorID)
		result, err := f.usecase.Settle(ctx, f.patient, appointment.ID, settleRequest())
		require.NoError(t, err)

		_, err = f.usecase.GetReceipt(ctx, f.patient, result.PaymentID)
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	})

	t.Run("receipt of another patient", func(t *testing.T) {
		f := newFixture(t, nil)
		appointment := f.seedAppointment(t, constvars.AppointmentStatusCompleted, &doctorID)
		result, err := f.usecase.Settle(ctx, f.patient, appointment.ID, settleRequest())
		require.NoError(t, err)

		stranger := &models.Principal{SubjectID: "patient-2", Role: constvars.RolePatient}
		_, err = f.usecase.GetReceipt(ctx, stranger, result.PaymentID)
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	})
}
