package earnings

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"time"
)

type EarningsMemoryRepository struct {
	DB *database.MemoryDB
}

func NewEarningsMemoryRepository(db *database.MemoryDB) contracts.EarningsRepository {
	return &EarningsMemoryRepository{DB: db}
}

func (r *EarningsMemoryRepository) FindByDoctor(ctx context.Context, doctorID string) (*models.EarningsSummary, error) {
	doc, ok := r.DB.Get(ctx, constvars.MongoCollectionEarningsSummaries, doctorID)
	if !ok {
		return nil, nil
	}
	summary := doc.(models.EarningsSummary)
	return &summary, nil
}

func (r *EarningsMemoryRepository) FindAll(ctx context.Context) ([]models.EarningsSummary, error) {
	docs := r.DB.Scan(ctx, constvars.MongoCollectionEarningsSummaries, nil)
	summaries := make([]models.EarningsSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, doc.(models.EarningsSummary))
	}
	return summaries, nil
}

func (r *EarningsMemoryRepository) Increment(ctx context.Context, doctorID string, doctorFee float64, settledAt time.Time) error {
	return r.DB.RunInTransaction(ctx, func(ctx context.Context) error {
		summary := models.EarningsSummary{DoctorID: doctorID}
		if doc, ok := r.DB.Get(ctx, constvars.MongoCollectionEarningsSummaries, doctorID); ok {
			summary = doc.(models.EarningsSummary)
		}
		summary.TotalDoctorFee += doctorFee
		summary.SettledAppointments++
		if summary.LastSettledAt == nil || settledAt.After(*summary.LastSettledAt) {
			summary.LastSettledAt = &settledAt
		}
		summary.UpdatedAt = time.Now()
		r.DB.Put(ctx, constvars.MongoCollectionEarningsSummaries, doctorID, summary)
		return nil
	})
}

func (r *EarningsMemoryRepository) Replace(ctx context.Context, summary *models.EarningsSummary) error {
	r.DB.Put(ctx, constvars.MongoCollectionEarningsSummaries, summary.DoctorID, *summary)
	return nil
}
