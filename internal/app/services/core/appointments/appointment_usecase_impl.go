package appointments

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/app/services/shared/events"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/exceptions"
	"homevisit-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	Transactor              contracts.Transactor
	AppointmentRepository   contracts.AppointmentRepository
	AddressRepository       contracts.AddressRepository
	CatalogRepository       contracts.CatalogRepository
	EventPublisher          contracts.EventPublisher
	StrictStatusProgression bool
	Log                     *zap.Logger
	now                     func() time.Time
}

func NewAppointmentUsecase(
	transactor contracts.Transactor,
	appointmentRepository contracts.AppointmentRepository,
	addressRepository contracts.AddressRepository,
	catalogRepository contracts.CatalogRepository,
	eventPublisher contracts.EventPublisher,
	strictStatusProgression bool,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		Transactor:              transactor,
		AppointmentRepository:   appointmentRepository,
		AddressRepository:       addressRepository,
		CatalogRepository:       catalogRepository,
		EventPublisher:          eventPublisher,
		StrictStatusProgression: strictStatusProgression,
		Log:                     logger,
		now:                     time.Now,
	}
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, principal *models.Principal, request *requests.CreateAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.SubjectID),
		zap.String(constvars.LoggingServiceIDKey, request.ServiceID),
	)

	appointment := &models.Appointment{
		ID:                utils.NewID(),
		PatientID:         principal.SubjectID,
		ServiceID:         request.ServiceID,
		AddressID:         request.AddressID,
		RequestedDate:     request.RequestedDate,
		RequestedTimeSlot: request.RequestedTimeSlot,
		Notes:             request.Notes,
		Status:            constvars.AppointmentStatusPendingAssignment,
		PaymentStatus:     constvars.PaymentStatusPending,
	}
	now := uc.now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		service, err := uc.CatalogRepository.FindServiceByID(txCtx, request.ServiceID)
		if err != nil {
			return err
		}
		if service == nil || !service.IsActive {
			return exceptions.ErrInputValidationMessage(constvars.ErrClientServiceUnavailable)
		}

		address, err := uc.AddressRepository.FindByID(txCtx, request.AddressID)
		if err != nil {
			return err
		}
		if address == nil || address.OwnerID != principal.SubjectID {
			return exceptions.ErrInputValidationMessage(constvars.ErrClientAddressUnavailable)
		}

		appointment.EstimatedCost = service.BasePrice
		return uc.AppointmentRepository.Create(txCtx, appointment)
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error creating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	events.PublishBestEffort(ctx, uc.EventPublisher, uc.Log,
		events.NewAppointmentEvent(constvars.EventAppointmentCreated, appointment, principal.SubjectID, map[string]interface{}{
			"service_id":     appointment.ServiceID,
			"estimated_cost": appointment.EstimatedCost,
		}),
	)

	uc.Log.Info("appointmentUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) ListPatientAppointments(ctx context.Context, principal *models.Principal) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListPatientAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.SubjectID),
	)

	appointments, err := uc.AppointmentRepository.FindByPatient(ctx, principal.SubjectID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.ListPatientAppointments error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return appointments, nil
}

func (uc *appointmentUsecase) FindPatientAppointment(ctx context.Context, principal *models.Principal, appointmentID string) (*models.Appointment, error) {
	return uc.findForPatient(ctx, principal.SubjectID, appointmentID)
}

func (uc *appointmentUsecase) RescheduleAppointment(ctx context.Context, principal *models.Principal, appointmentID string, request *requests.RescheduleAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.RescheduleAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.SubjectID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	var previousDoctor string
	appointment, err := uc.transition(ctx, constvars.TransitionReschedule,
		func(txCtx context.Context) (*models.Appointment, error) {
			return uc.findForPatient(txCtx, principal.SubjectID, appointmentID)
		},
		func(appointment *models.Appointment) error {
			if appointment.DoctorID != nil {
				previousDoctor = *appointment.DoctorID
			}
			return Reschedule(appointment, request.RequestedDate, request.RequestedTimeSlot, uc.now())
		},
	)
	if err != nil {
		uc.Log.Error("appointmentUsecase.RescheduleAppointment error rescheduling appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	payload := map[string]interface{}{
		"requested_date":      appointment.RequestedDate,
		"requested_time_slot": appointment.RequestedTimeSlot,
	}
	if previousDoctor != "" {
		payload["previous_doctor_id"] = previousDoctor
	}
	events.PublishBestEffort(ctx, uc.EventPublisher, uc.Log,
		events.NewAppointmentEvent(constvars.EventAppointmentRescheduled, appointment, principal.SubjectID, payload),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, principal *models.Principal, appointmentID string, request *requests.CancelAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.SubjectID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.transition(ctx, constvars.TransitionCancel,
		func(txCtx context.Context) (*models.Appointment, error) {
			return uc.findForPatient(txCtx, principal.SubjectID, appointmentID)
		},
		func(appointment *models.Appointment) error {
			return Cancel(appointment, request.Reason, uc.now())
		},
	)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CancelAppointment error cancelling appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	events.PublishBestEffort(ctx, uc.EventPublisher, uc.Log,
		events.NewAppointmentEvent(constvars.EventAppointmentCancelled, appointment, principal.SubjectID, map[string]interface{}{
			"reason": appointment.CancellationReason,
		}),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) ListDoctorAppointments(ctx context.Context, principal *models.Principal) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListDoctorAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, principal.SubjectID),
	)

	appointments, err := uc.AppointmentRepository.FindByDoctor(ctx, principal.SubjectID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.ListDoctorAppointments error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return appointments, nil
}

func (uc *appointmentUsecase) FindDoctorAppointment(ctx context.Context, principal *models.Principal, appointmentID string) (*models.Appointment, error) {
	return uc.findForDoctor(ctx, principal.SubjectID, appointmentID)
}

func (uc *appointmentUsecase) AdvanceStatus(ctx context.Context, principal *models.Principal, appointmentID string, request *requests.AdvanceAppointmentStatus) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.AdvanceStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, principal.SubjectID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingTargetStatusKey, request.Status),
	)

	var previousStatus string
	appointment, err := uc.transition(ctx, constvars.TransitionAdvance,
		func(txCtx context.Context) (*models.Appointment, error) {
			return uc.findForDoctor(txCtx, principal.SubjectID, appointmentID)
		},
		func(appointment *models.Appointment) error {
			previousStatus = appointment.Status
			return Advance(appointment, request.Status, uc.StrictStatusProgression, uc.now())
		},
	)
	if err != nil {
		uc.Log.Error("appointmentUsecase.AdvanceStatus error advancing appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	events.PublishBestEffort(ctx, uc.EventPublisher, uc.Log,
		events.NewAppointmentEvent(constvars.EventAppointmentStatusChanged, appointment, principal.SubjectID, map[string]interface{}{
			"previous_status": previousStatus,
		}),
	)

	uc.Log.Info("appointmentUsecase.AdvanceStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentStatusKey, appointment.Status),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) ListAllAppointments(ctx context.Context, principal *models.Principal, filter *models.AppointmentFilter) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListAllAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleKey, principal.Role),
	)

	if filter != nil && filter.Status != "" && !IsKnownStatus(filter.Status) {
		return nil, exceptions.ErrInputValidationMessage(fmt.Sprintf(constvars.ErrClientAppointmentStatusUnknown, filter.Status))
	}

	appointments, err := uc.AppointmentRepository.FindAll(ctx, filter)
	if err != nil {
		uc.Log.Error("appointmentUsecase.ListAllAppointments error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return appointments, nil
}

// transition loads and mutates an appointment inside a transaction and stores
// it only if the status it was loaded with is still current.
func (uc *appointmentUsecase) transition(
	ctx context.Context,
	event string,
	load func(txCtx context.Context) (*models.Appointment, error),
	apply func(appointment *models.Appointment) error,
) (*models.Appointment, error) {
	var result *models.Appointment
	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		appointment, err := load(txCtx)
		if err != nil {
			return err
		}
		expectedStatus := appointment.Status
		if err := apply(appointment); err != nil {
			return err
		}

		updated, err := uc.AppointmentRepository.UpdateIfStatus(txCtx, appointment, expectedStatus)
		if err != nil {
			return err
		}
		if !updated {
			return exceptions.ErrInvalidTransition(nil, constvars.ErrClientAppointmentNotActive, expectedStatus, event)
		}
		result = appointment
		return nil
	})
	return result, err
}

func (uc *appointmentUsecase) findForPatient(ctx context.Context, patientID, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil || appointment.PatientID != patientID {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourceAppointment, appointmentID)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) findForDoctor(ctx context.Context, doctorID, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil || !appointment.IsAssignedTo(doctorID) {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourceAppointment, appointmentID)
	}
	return appointment, nil
}
