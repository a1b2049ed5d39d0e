package contracts

import (
	"context"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/dto/responses"
	"time"
)

type EarningsRepository interface {
	FindByDoctor(ctx context.Context, doctorID string) (*models.EarningsSummary, error)
	FindAll(ctx context.Context) ([]models.EarningsSummary, error)
	Increment(ctx context.Context, doctorID string, doctorFee float64, settledAt time.Time) error
	Replace(ctx context.Context, summary *models.EarningsSummary) error
}

type EarningsUsecase interface {
	GetEarnings(ctx context.Context, principal *models.Principal) (*responses.Earnings, error)
	// Reconcile recomputes every running total from settled payments and
	// returns how many summaries were corrected.
	Reconcile(ctx context.Context) (int, error)
}
