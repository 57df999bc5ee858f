// Package event models coordinated festival gatherings.
package event

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
)

// MinNameLength is the minimum rune count for an event name.
const MinNameLength = 2

// Event is one coordinated gathering with code-gated membership.
type Event struct {
	ID        string
	Name      string
	CreatedBy string
	StartsAt  time.Time // zero when unscheduled
	EndsAt    time.Time // zero when open-ended
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeName trims and validates an event name.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if utf8.RuneCountInString(trimmed) < MinNameLength {
		return "", apperrors.WithMetadata(
			apperrors.CodeEventNameTooShort,
			"event name is too short",
			map[string]string{"Min": "2"},
		)
	}
	return trimmed, nil
}

// ValidateWindow checks that a scheduled window ends after it starts.
// Zero values mean the bound is unset and always pass.
func ValidateWindow(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() || endsAt.IsZero() {
		return nil
	}
	if !endsAt.After(startsAt) {
		return apperrors.New(apperrors.CodeEventWindowInvalid, "event window must end after it starts")
	}
	return nil
}

// ValidateID checks that an event identifier is present.
func ValidateID(eventID string) error {
	if strings.TrimSpace(eventID) == "" {
		return apperrors.New(apperrors.CodeEventEmptyID, "event id is required")
	}
	return nil
}
