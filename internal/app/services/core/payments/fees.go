package payments

import (
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/utils"
)

// SplitFees divides amount by the configured percentages. Platform and doctor
// shares are rounded to cents and the admin share takes the remainder, so the
// three always add up to amount.
func SplitFees(amount float64, fee config.AppFee) models.FeeSplit {
	platform := utils.RoundToCents(amount * fee.PlatformPercent)
	doctor := utils.RoundToCents(amount * fee.DoctorPercent)
	return models.FeeSplit{
		PlatformFeeAmount: platform,
		DoctorFeeAmount:   doctor,
		AdminFeeAmount:    utils.RoundToCents(amount - platform - doctor),
	}
}
