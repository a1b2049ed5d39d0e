package payment_gateway

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type approvingGateway struct {
	Log *zap.Logger
}

// NewApprovingGateway returns a gateway that approves every charge. It stands
// in for a real processor and never produces a random outcome.
func NewApprovingGateway(logger *zap.Logger) contracts.PaymentGateway {
	return &approvingGateway{
		Log: logger,
	}
}

func (g *approvingGateway) Charge(ctx context.Context, request *models.ChargeRequest) (*models.ChargeResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &models.ChargeResult{
		Successful:           true,
		GatewayTransactionID: "txn_" + uuid.NewString(),
	}

	g.Log.Info("approvingGateway.Charge approved",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.Float64(constvars.LoggingAmountKey, request.Amount),
	)
	return result, nil
}
