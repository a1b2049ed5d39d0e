package earnings

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/responses"
	"homevisit-service/internal/pkg/utils"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
)

// driftTolerance is half a cent.
const driftTolerance = 0.005

type earningsUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	PaymentRepository     contracts.PaymentRepository
	EarningsRepository    contracts.EarningsRepository
	UserRepository        contracts.UserRepository
	Log                   *zap.Logger
}

func NewEarningsUsecase(
	appointmentRepository contracts.AppointmentRepository,
	paymentRepository contracts.PaymentRepository,
	earningsRepository contracts.EarningsRepository,
	userRepository contracts.UserRepository,
	logger *zap.Logger,
) contracts.EarningsUsecase {
	return &earningsUsecase{
		AppointmentRepository: appointmentRepository,
		PaymentRepository:     paymentRepository,
		EarningsRepository:    earningsRepository,
		UserRepository:        userRepository,
		Log:                   logger,
	}
}

// GetEarnings reports the itemized history and its total. The history is
// scanned from appointments the doctor currently holds, so the total always
// matches it; a drifted running summary is only logged until Reconcile runs.
func (uc *earningsUsecase) GetEarnings(ctx context.Context, principal *models.Principal) (*responses.Earnings, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("earningsUsecase.GetEarnings called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, principal.SubjectID),
	)

	history, err := uc.scan(ctx, principal.SubjectID)
	if err != nil {
		uc.Log.Error("earningsUsecase.GetEarnings error scanning settled appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	summary, err := uc.EarningsRepository.FindByDoctor(ctx, principal.SubjectID)
	if err != nil {
		uc.Log.Error("earningsUsecase.GetEarnings error fetching summary",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := &responses.Earnings{
		DoctorID: principal.SubjectID,
		History:  history,
	}
	result.TotalEarnings, result.SettledAppointments = totals(history)
	if summary != nil && !agrees(summary, result.TotalEarnings, result.SettledAppointments) {
		uc.Log.Warn("earningsUsecase.GetEarnings summary drifted from settled history",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, principal.SubjectID),
			zap.Float64("summary_total", summary.TotalDoctorFee),
			zap.Float64(constvars.LoggingAmountKey, result.TotalEarnings),
		)
	}

	uc.Log.Info("earningsUsecase.GetEarnings succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Float64(constvars.LoggingAmountKey, result.TotalEarnings),
	)
	return result, nil
}

func (uc *earningsUsecase) Reconcile(ctx context.Context) (int, error) {
	uc.Log.Info("earningsUsecase.Reconcile called")

	doctorIDs := make(map[string]*models.EarningsSummary)
	summaries, err := uc.EarningsRepository.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	for i := range summaries {
		doctorIDs[summaries[i].DoctorID] = &summaries[i]
	}
	doctors, err := uc.UserRepository.FindAll(ctx, &models.UserFilter{Role: constvars.RoleDoctor})
	if err != nil {
		return 0, err
	}
	for _, doctor := range doctors {
		if _, ok := doctorIDs[doctor.ID]; !ok {
			doctorIDs[doctor.ID] = nil
		}
	}

	corrected := 0
	for doctorID, summary := range doctorIDs {
		history, err := uc.scan(ctx, doctorID)
		if err != nil {
			return corrected, err
		}
		total, count := totals(history)
		if summary == nil && count == 0 {
			continue
		}
		if summary != nil && agrees(summary, total, count) {
			continue
		}

		rebuilt := &models.EarningsSummary{
			DoctorID:            doctorID,
			TotalDoctorFee:      total,
			SettledAppointments: count,
			UpdatedAt:           time.Now(),
		}
		if len(history) > 0 {
			last := history[0].TransactionDate
			rebuilt.LastSettledAt = &last
		}
		if err := uc.EarningsRepository.Replace(ctx, rebuilt); err != nil {
			return corrected, err
		}
		uc.Log.Warn("earningsUsecase.Reconcile corrected drifted summary",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Float64(constvars.LoggingAmountKey, total),
		)
		corrected++
	}

	uc.Log.Info("earningsUsecase.Reconcile succeeded", zap.Int(constvars.LoggingCountKey, corrected))
	return corrected, nil
}

// scan itemizes the successful payments of every paid appointment assigned to
// the doctor, newest first.
func (uc *earningsUsecase) scan(ctx context.Context, doctorID string) ([]models.EarningsItem, error) {
	paid, err := uc.AppointmentRepository.FindPaidByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	items := make([]models.EarningsItem, 0, len(paid))
	for _, appointment := range paid {
		payments, err := uc.PaymentRepository.FindSuccessfulByAppointment(ctx, appointment.ID)
		if err != nil {
			return nil, err
		}
		for _, payment := range payments {
			items = append(items, models.EarningsItem{
				AppointmentID:   appointment.ID,
				PaymentID:       payment.ID,
				ServiceID:       appointment.ServiceID,
				Amount:          payment.Amount,
				Currency:        payment.Currency,
				DoctorFeeAmount: payment.DoctorFeeAmount,
				TransactionDate: payment.TransactionDate,
			})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].TransactionDate.After(items[j].TransactionDate) })
	return items, nil
}

func totals(history []models.EarningsItem) (float64, int) {
	total := 0.0
	for _, item := range history {
		total += item.DoctorFeeAmount
	}
	return utils.RoundToCents(total), len(history)
}

func agrees(summary *models.EarningsSummary, total float64, count int) bool {
	return math.Abs(summary.TotalDoctorFee-total) < driftTolerance && summary.SettledAppointments == count
}
