package payments

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/app/services/shared/events"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/dto/responses"
	"homevisit-service/internal/pkg/exceptions"
	"homevisit-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type paymentUsecase struct {
	Transactor            contracts.Transactor
	AppointmentRepository contracts.AppointmentRepository
	PaymentRepository     contracts.PaymentRepository
	EarningsRepository    contracts.EarningsRepository
	PaymentGateway        contracts.PaymentGateway
	Locker                contracts.LockerService
	ReceiptArchive        contracts.ReceiptArchive
	EventPublisher        contracts.EventPublisher
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
}

func NewPaymentUsecase(
	transactor contracts.Transactor,
	appointmentRepository contracts.AppointmentRepository,
	paymentRepository contracts.PaymentRepository,
	earningsRepository contracts.EarningsRepository,
	paymentGateway contracts.PaymentGateway,
	locker contracts.LockerService,
	receiptArchive contracts.ReceiptArchive,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	return &paymentUsecase{
		Transactor:            transactor,
		AppointmentRepository: appointmentRepository,
		PaymentRepository:     paymentRepository,
		EarningsRepository:    earningsRepository,
		PaymentGateway:        paymentGateway,
		Locker:                locker,
		ReceiptArchive:        receiptArchive,
		EventPublisher:        eventPublisher,
		InternalConfig:        internalConfig,
		Log:                   logger,
		now:                   time.Now,
	}
}

func (uc *paymentUsecase) Settle(ctx context.Context, principal *models.Principal, appointmentID string, request *requests.SettlePayment) (*responses.SettlePayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.Settle called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.SubjectID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.Float64(constvars.LoggingAmountKey, request.Amount),
	)

	lockKey := fmt.Sprintf(constvars.RedisKeySettlementLockFormat, appointmentID)
	lockTTL := time.Duration(uc.InternalConfig.Payment.SettlementLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.Locker.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		uc.Log.Error("paymentUsecase.Settle error acquiring settlement lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSettlementInProgress(nil, appointmentID)
	}
	defer func() {
		if err := uc.Locker.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.Log.Warn("paymentUsecase.Settle error releasing settlement lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	appointment, err := uc.findForPatient(ctx, principal.SubjectID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := checkPayable(appointment); err != nil {
		return nil, err
	}

	currency := request.Currency
	if currency == "" {
		currency = uc.InternalConfig.Payment.DefaultCurrency
	}

	gatewayCtx, cancel := context.WithTimeout(ctx, time.Duration(uc.InternalConfig.Payment.GatewayRequestTimeoutSeconds)*time.Second)
	defer cancel()
	result, err := uc.PaymentGateway.Charge(gatewayCtx, &models.ChargeRequest{
		AppointmentID: appointmentID,
		PatientID:     principal.SubjectID,
		Amount:        request.Amount,
		Currency:      currency,
		Method:        request.Method,
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.Settle error charging gateway",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPaymentGatewayCharge(err)
	}

	payment := &models.Payment{
		ID:                   utils.NewID(),
		AppointmentID:        appointmentID,
		PatientID:            principal.SubjectID,
		Amount:               request.Amount,
		Currency:             currency,
		Method:               request.Method,
		GatewayTransactionID: result.GatewayTransactionID,
		Status:               constvars.PaymentRecordStatusFailed,
		FailureReason:        result.FailureReason,
		TransactionDate:      uc.now().UTC(),
	}
	if result.Successful {
		split := SplitFees(request.Amount, uc.InternalConfig.Fee)
		payment.Status = constvars.PaymentRecordStatusSuccessful
		payment.FailureReason = ""
		payment.PlatformFeeAmount = split.PlatformFeeAmount
		payment.DoctorFeeAmount = split.DoctorFeeAmount
		payment.AdminFeeAmount = split.AdminFeeAmount
		payment.ReceiptObjectKey = fmt.Sprintf(constvars.ReceiptObjectKeyFormat, principal.SubjectID, payment.ID)
	}

	err = uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := uc.findForPatient(txCtx, principal.SubjectID, appointmentID)
		if err != nil {
			return err
		}
		if err := checkPayable(current); err != nil {
			return err
		}
		payment.DoctorID = current.DoctorID

		if err := uc.PaymentRepository.Create(txCtx, payment); err != nil {
			return err
		}

		current.PaymentID = &payment.ID
		current.PaymentStatus = constvars.PaymentStatusFailed
		if result.Successful {
			current.PaymentStatus = constvars.PaymentStatusPaid
		}
		current.SetUpdatedAt()
		updated, err := uc.AppointmentRepository.UpdateIfStatus(txCtx, current, current.Status)
		if err != nil {
			return err
		}
		if !updated {
			return exceptions.ErrInvalidTransition(nil, constvars.ErrClientAppointmentNotPayable, current.Status, constvars.TransitionSettle)
		}

		if result.Successful && current.DoctorID != nil {
			if err := uc.EarningsRepository.Increment(txCtx, *current.DoctorID, payment.DoctorFeeAmount, payment.TransactionDate); err != nil {
				return err
			}
		}
		appointment = current
		return nil
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.Settle error recording payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingGatewayTransactionKey, result.GatewayTransactionID),
			zap.Error(err),
		)
		return nil, err
	}

	eventType := constvars.EventPaymentFailed
	if result.Successful {
		eventType = constvars.EventPaymentSettled
		if err := uc.ReceiptArchive.Store(ctx, payment); err != nil {
			uc.Log.Warn("paymentUsecase.Settle error storing receipt",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingObjectKey, payment.ReceiptObjectKey),
				zap.Error(err),
			)
		}
	}
	events.PublishBestEffort(ctx, uc.EventPublisher, uc.Log,
		events.NewAppointmentEvent(eventType, appointment, principal.SubjectID, map[string]interface{}{
			"payment_id":        payment.ID,
			"amount":            payment.Amount,
			"currency":          payment.Currency,
			"doctor_fee_amount": payment.DoctorFeeAmount,
		}),
	)

	uc.Log.Info("paymentUsecase.Settle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
		zap.String(constvars.LoggingPaymentStatusKey, payment.Status),
	)
	return &responses.SettlePayment{
		PaymentID:     payment.ID,
		Status:        payment.Status,
		PaymentStatus: appointment.PaymentStatus,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		DoctorFee:     payment.DoctorFeeAmount,
		PlatformFee:   payment.PlatformFeeAmount,
		AdminFee:      payment.AdminFeeAmount,
	}, nil
}

func (uc *paymentUsecase) ListPayments(ctx context.Context, principal *models.Principal) ([]models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.ListPayments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.SubjectID),
	)

	payments, err := uc.PaymentRepository.FindByPatient(ctx, principal.SubjectID)
	if err != nil {
		uc.Log.Error("paymentUsecase.ListPayments error fetching payments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return payments, nil
}

// GetReceipt returns a presigned download URL, uploading the receipt first
// when the archive does not have it yet.
func (uc *paymentUsecase) GetReceipt(ctx context.Context, principal *models.Principal, paymentID string) (*responses.Receipt, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetReceipt called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, paymentID),
	)

	payment, err := uc.PaymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.PatientID != principal.SubjectID || payment.ReceiptObjectKey == "" {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourcePayment, paymentID)
	}

	exists, err := uc.ReceiptArchive.Exists(ctx, payment.ReceiptObjectKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := uc.ReceiptArchive.Store(ctx, payment); err != nil {
			uc.Log.Error("paymentUsecase.GetReceipt error storing receipt",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	expiry := time.Duration(uc.InternalConfig.Minio.PresignedURLExpiryInMinutes) * time.Minute
	url, err := uc.ReceiptArchive.PresignedURL(ctx, payment.ReceiptObjectKey, expiry)
	if err != nil {
		uc.Log.Error("paymentUsecase.GetReceipt error presigning receipt",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return &responses.Receipt{PaymentID: payment.ID, URL: url}, nil
}

func (uc *paymentUsecase) findForPatient(ctx context.Context, patientID, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil || appointment.PatientID != patientID {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourceAppointment, appointmentID)
	}
	return appointment, nil
}

func checkPayable(appointment *models.Appointment) error {
	if appointment.PaymentStatus == constvars.PaymentStatusPaid {
		return exceptions.ErrAlreadySettled(nil, appointment.ID)
	}
	switch appointment.Status {
	case constvars.AppointmentStatusCancelledByPatient, constvars.AppointmentStatusDeclinedByDoctor:
		return exceptions.ErrInvalidTransition(nil, constvars.ErrClientAppointmentNotPayable, appointment.Status, constvars.TransitionSettle)
	}
	return nil
}
