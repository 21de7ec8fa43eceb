package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Confirmation number format: SW + yyyymmdd + 8 hex chars.
// Sortable by creation date, globally unique via the reservations table constraint.
const (
	confirmationPrefix       = "SW"
	confirmationSuffixLength = 8
)

// NewConfirmationNumber generates a confirmation number for the given creation time.
// Uniqueness is guaranteed only by the database constraint; callers must retry
// the insert with a fresh number on collision.
func NewConfirmationNumber(createdAt time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:confirmationSuffixLength]
	return fmt.Sprintf("%s%s%s", confirmationPrefix, createdAt.UTC().Format("20060102"), suffix)
}
