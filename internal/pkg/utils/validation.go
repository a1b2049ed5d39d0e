package utils

import (
	"homevisit-service/internal/pkg/constvars"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	regexAtLeastOneSpecialChar = regexp.MustCompile(`[!@#~$%^&*()+|_.,<>?/\\-]`)
	regexAtLeastOneUppercase   = regexp.MustCompile(`[A-Z]`)
	regexPhoneNumber           = regexp.MustCompile(`^\+[1-9]\d{9,14}$`)
	regexCurrencyCode          = regexp.MustCompile(`^[A-Z]{3}$`)
	regexTimeSlot              = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)-([01]\d|2[0-3]):([0-5]\d)$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("role", validateRole)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("currency_code", validateCurrencyCode)
	validate.RegisterValidation("time_slot", validateTimeSlot)
	validate.RegisterValidation("not_past_date", validateNotPastDate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return len(password) >= 8 &&
		regexAtLeastOneSpecialChar.MatchString(password) &&
		regexAtLeastOneUppercase.MatchString(password)
}

func validateRole(fl validator.FieldLevel) bool {
	return constvars.IsKnownRole(fl.Field().String())
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return regexPhoneNumber.MatchString(fl.Field().String())
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return regexCurrencyCode.MatchString(fl.Field().String())
}

func validateTimeSlot(fl validator.FieldLevel) bool {
	slot := fl.Field().String()
	if !regexTimeSlot.MatchString(slot) {
		return false
	}
	// zero-padded HH:MM compares correctly as a string
	return slot[:5] < slot[6:]
}

func validateNotPastDate(fl validator.FieldLevel) bool {
	requested, err := time.ParseInLocation(constvars.DateFormat, fl.Field().String(), time.Local)
	if err != nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return !requested.Before(today)
}
