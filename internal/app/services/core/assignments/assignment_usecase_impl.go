package assignments

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/app/services/core/appointments"
	"homevisit-service/internal/app/services/shared/events"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type assignmentUsecase struct {
	Transactor            contracts.Transactor
	AppointmentRepository contracts.AppointmentRepository
	UserRepository        contracts.UserRepository
	AddressRepository     contracts.AddressRepository
	CatalogRepository     contracts.CatalogRepository
	EventPublisher        contracts.EventPublisher
	Log                   *zap.Logger
	now                   func() time.Time
}

func NewAssignmentUsecase(
	transactor contracts.Transactor,
	appointmentRepository contracts.AppointmentRepository,
	userRepository contracts.UserRepository,
	addressRepository contracts.AddressRepository,
	catalogRepository contracts.CatalogRepository,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) contracts.AssignmentUsecase {
	return &assignmentUsecase{
		Transactor:            transactor,
		AppointmentRepository: appointmentRepository,
		UserRepository:        userRepository,
		AddressRepository:     addressRepository,
		CatalogRepository:     catalogRepository,
		EventPublisher:        eventPublisher,
		Log:                   logger,
		now:                   time.Now,
	}
}

// ListAvailable returns every appointment waiting for a doctor, oldest first.
func (uc *assignmentUsecase) ListAvailable(ctx context.Context, principal *models.Principal) ([]models.AvailableAppointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("assignmentUsecase.ListAvailable called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, principal.SubjectID),
	)

	pending, err := uc.AppointmentRepository.FindByStatus(ctx, constvars.AppointmentStatusPendingAssignment)
	if err != nil {
		uc.Log.Error("assignmentUsecase.ListAvailable error fetching pending appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	patientNames := make(map[string]string)
	serviceNames := make(map[string]string)
	available := make([]models.AvailableAppointment, 0, len(pending))
	for _, appointment := range pending {
		item := models.AvailableAppointment{Appointment: appointment}

		name, ok := patientNames[appointment.PatientID]
		if !ok {
			patient, err := uc.UserRepository.FindByID(ctx, appointment.PatientID)
			if err != nil {
				return nil, err
			}
			if patient != nil {
				name = patient.DisplayName
			}
			patientNames[appointment.PatientID] = name
		}
		item.PatientName = name

		serviceName, ok := serviceNames[appointment.ServiceID]
		if !ok {
			service, err := uc.CatalogRepository.FindServiceByID(ctx, appointment.ServiceID)
			if err != nil {
				return nil, err
			}
			if service != nil {
				serviceName = service.Name
			}
			serviceNames[appointment.ServiceID] = serviceName
		}
		item.ServiceName = serviceName

		address, err := uc.AddressRepository.FindByID(ctx, appointment.AddressID)
		if err != nil {
			return nil, err
		}
		item.Address = address

		available = append(available, item)
	}

	uc.Log.Info("assignmentUsecase.ListAvailable succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(available)),
	)
	return available, nil
}

// Accept assigns the appointment to the calling doctor. Of several concurrent
// callers exactly one succeeds; the rest see an already assigned error.
func (uc *assignmentUsecase) Accept(ctx context.Context, principal *models.Principal, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("assignmentUsecase.Accept called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, principal.SubjectID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	var accepted *models.Appointment
	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		appointment, err := uc.findAppointment(txCtx, appointmentID)
		if err != nil {
			return err
		}
		if err := appointments.Accept(appointment, principal.SubjectID, uc.now()); err != nil {
			return err
		}

		updated, err := uc.AppointmentRepository.UpdateIfStatus(txCtx, appointment, constvars.AppointmentStatusPendingAssignment)
		if err != nil {
			return err
		}
		if !updated {
			return exceptions.ErrInvalidTransition(nil, constvars.ErrClientAppointmentAlreadyAssigned, constvars.AppointmentStatusPendingAssignment, constvars.TransitionAccept)
		}
		accepted = appointment
		return nil
	})
	if err != nil {
		uc.Log.Error("assignmentUsecase.Accept error accepting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return nil, err
	}

	events.PublishBestEffort(ctx, uc.EventPublisher, uc.Log,
		events.NewAppointmentEvent(constvars.EventAppointmentAssigned, accepted, principal.SubjectID, nil),
	)

	uc.Log.Info("assignmentUsecase.Accept succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return accepted, nil
}

func (uc *assignmentUsecase) Decline(ctx context.Context, principal *models.Principal, appointmentID string, request *requests.DeclineAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("assignmentUsecase.Decline called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, principal.SubjectID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	var declined *models.Appointment
	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		appointment, err := uc.findAppointment(txCtx, appointmentID)
		if err != nil {
			return err
		}
		if err := appointments.Decline(appointment, principal.SubjectID, request.Reason, uc.now()); err != nil {
			return err
		}

		updated, err := uc.AppointmentRepository.UpdateIfStatus(txCtx, appointment, constvars.AppointmentStatusPendingAssignment)
		if err != nil {
			return err
		}
		if !updated {
			return exceptions.ErrInvalidTransition(nil, constvars.ErrClientAppointmentNotPending, constvars.AppointmentStatusPendingAssignment, constvars.TransitionDecline)
		}
		declined = appointment
		return nil
	})
	if err != nil {
		uc.Log.Error("assignmentUsecase.Decline error declining appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	events.PublishBestEffort(ctx, uc.EventPublisher, uc.Log,
		events.NewAppointmentEvent(constvars.EventAppointmentDeclined, declined, principal.SubjectID, map[string]interface{}{
			"reason": declined.DeclinedReason,
		}),
	)
	return declined, nil
}

func (uc *assignmentUsecase) findAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourceAppointment, appointmentID)
	}
	return appointment, nil
}
