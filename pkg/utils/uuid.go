package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// FormatDocNo renders a sequential document number, e.g. BILL-000042
func FormatDocNo(prefix string, n int64) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}
