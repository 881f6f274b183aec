package models

import (
	"strings"

	"github.com/google/uuid"
)

// TempIDPrefix marks steps and transitions created locally but not yet
// persisted by the backend. Save exchanges these for persisted ids.
const TempIDPrefix = "temp-"

// NewTempID generates a fresh temporary id.
func NewTempID() string {
	return TempIDPrefix + uuid.New().String()
}

// IsTempID reports whether the id denotes a not-yet-persisted entity.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}
