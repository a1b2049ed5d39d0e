package utils

import (
	"fmt"
	"homevisit-service/internal/pkg/constvars"
	"strings"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return fmt.Sprintf("%s%s", constvars.REQUEST_ID_PREFIX, strings.ReplaceAll(uuid.NewString(), "-", ""))
}

func NewID() string {
	return uuid.NewString()
}

func StringPtr(value string) *string {
	return &value
}
