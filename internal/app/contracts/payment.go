package contracts

import (
	"context"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/dto/responses"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Payment, error)
	FindSuccessfulByAppointment(ctx context.Context, appointmentID string) ([]models.Payment, error)
}

// PaymentGateway decides the outcome of a charge. A returned error means the
// outcome is unknown; a declined charge is a result with Successful false.
type PaymentGateway interface {
	Charge(ctx context.Context, request *models.ChargeRequest) (*models.ChargeResult, error)
}

type PaymentUsecase interface {
	Settle(ctx context.Context, principal *models.Principal, appointmentID string, request *requests.SettlePayment) (*responses.SettlePayment, error)
	ListPayments(ctx context.Context, principal *models.Principal) ([]models.Payment, error)
	GetReceipt(ctx context.Context, principal *models.Principal, paymentID string) (*responses.Receipt, error)
}
