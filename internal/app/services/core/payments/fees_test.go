package payments

import (
	"homevisit-service/internal/app/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFees(t *testing.T) {
	fee := config.AppFee{PlatformPercent: 0.15, DoctorPercent: 0.70, AdminPercent: 0.15}

	tests := []struct {
		amount   float64
		platform float64
		doctor   float64
		admin    float64
	}{
		{amount: 1500, platform: 225, doctor: 1050, admin: 225},
		{amount: 100, platform: 15, doctor: 70, admin: 15},
		{amount: 0.01, platform: 0, doctor: 0.01, admin: 0},
		{amount: 333.33, platform: 50, doctor: 233.33, admin: 50},
		{amount: 999.99, platform: 150, doctor: 699.99, admin: 150},
	}

	for _, tt := range tests {
		split := SplitFees(tt.amount, fee)
		assert.InDelta(t, tt.platform, split.PlatformFeeAmount, 1e-9, "platform for %v", tt.amount)
		assert.InDelta(t, tt.doctor, split.DoctorFeeAmount, 1e-9, "doctor for %v", tt.amount)
		assert.InDelta(t, tt.admin, split.AdminFeeAmount, 1e-9, "admin for %v", tt.amount)
		assert.InDelta(t, tt.amount, split.PlatformFeeAmount+split.DoctorFeeAmount+split.AdminFeeAmount, 1e-9, "sum for %v", tt.amount)
	}
}
