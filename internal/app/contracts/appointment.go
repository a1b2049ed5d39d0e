package contracts

import (
	"context"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/dto/requests"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	FindByStatus(ctx context.Context, status string) ([]models.Appointment, error)
	FindAll(ctx context.Context, filter *models.AppointmentFilter) ([]models.Appointment, error)
	FindPaidByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	// UpdateIfStatus replaces the appointment only while its stored status
	// still equals expectedStatus and reports whether it did.
	UpdateIfStatus(ctx context.Context, appointment *models.Appointment, expectedStatus string) (bool, error)
}

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, principal *models.Principal, request *requests.CreateAppointment) (*models.Appointment, error)
	ListPatientAppointments(ctx context.Context, principal *models.Principal) ([]models.Appointment, error)
	FindPatientAppointment(ctx context.Context, principal *models.Principal, appointmentID string) (*models.Appointment, error)
	RescheduleAppointment(ctx context.Context, principal *models.Principal, appointmentID string, request *requests.RescheduleAppointment) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, principal *models.Principal, appointmentID string, request *requests.CancelAppointment) (*models.Appointment, error)
	ListDoctorAppointments(ctx context.Context, principal *models.Principal) ([]models.Appointment, error)
	FindDoctorAppointment(ctx context.Context, principal *models.Principal, appointmentID string) (*models.Appointment, error)
	AdvanceStatus(ctx context.Context, principal *models.Principal, appointmentID string, request *requests.AdvanceAppointmentStatus) (*models.Appointment, error)
	ListAllAppointments(ctx context.Context, principal *models.Principal, filter *models.AppointmentFilter) ([]models.Appointment, error)
}

type AssignmentUsecase interface {
	ListAvailable(ctx context.Context, principal *models.Principal) ([]models.AvailableAppointment, error)
	Accept(ctx context.Context, principal *models.Principal, appointmentID string) (*models.Appointment, error)
	Decline(ctx context.Context, principal *models.Principal, appointmentID string, request *requests.DeclineAppointment) (*models.Appointment, error)
}
