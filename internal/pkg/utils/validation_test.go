package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct_CustomTags(t *testing.T) {
	type payload struct {
		Date     string `validate:"required,not_past_date"`
		Slot     string `validate:"required,time_slot"`
		Currency string `validate:"required,currency_code"`
		Role     string `validate:"required,role"`
	}

	today := time.Now().Format("2006-01-02")
	valid := payload{Date: today, Slot: "09:00-11:00", Currency: "INR", Role: "doctor"}

	t.Run("valid payload", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(valid))
	})

	t.Run("past date", func(t *testing.T) {
		p := valid
		p.Date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
		assert.Error(t, ValidateStruct(p))
	})

	t.Run("malformed date", func(t *testing.T) {
		p := valid
		p.Date = "15/01/2030"
		assert.Error(t, ValidateStruct(p))
	})

	t.Run("slot end before start", func(t *testing.T) {
		p := valid
		p.Slot = "11:00-09:00"
		assert.Error(t, ValidateStruct(p))
	})

	t.Run("slot out of range", func(t *testing.T) {
		p := valid
		p.Slot = "24:00-25:00"
		assert.Error(t, ValidateStruct(p))
	})

	t.Run("lowercase currency", func(t *testing.T) {
		p := valid
		p.Currency = "inr"
		assert.Error(t, ValidateStruct(p))
	})

	t.Run("unknown role", func(t *testing.T) {
		p := valid
		p.Role = "nurse"
		assert.Error(t, ValidateStruct(p))
	})
}

func TestValidateStruct_Password(t *testing.T) {
	type payload struct {
		Password string `validate:"required,password"`
	}

	assert.NoError(t, ValidateStruct(payload{Password: "Secret#123"}))
	assert.Error(t, ValidateStruct(payload{Password: "secret#123"}), "uppercase letter required")
	assert.Error(t, ValidateStruct(payload{Password: "Secret123"}), "special character required")
	assert.Error(t, ValidateStruct(payload{Password: "S#1"}), "minimum length required")
}

func TestRoundToCents(t *testing.T) {
	assert.Equal(t, 1050.0, RoundToCents(1500*0.70))
	assert.Equal(t, 0.15, RoundToCents(0.145000001))
	assert.Equal(t, 33.33, RoundToCents(100.0/3))
}
