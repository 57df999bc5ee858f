// Package report models the incident-report lifecycle.
//
// Reports are the safety-critical heart of an event: attendees raise them,
// organizers claim and resolve them. Status moves monotonically and every
// transition leaves an append-only action behind, because during an incident
// the question "who did what, when" must have exactly one answer.
package report

import (
	"strings"
	"time"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
)

// Report is one incident raised inside an event.
type Report struct {
	ID              string
	EventID         string
	CreatedByUID    string
	Status          Status
	Urgency         Urgency
	ImmediateDanger bool
	Category        Category
	Description     string

	LocationMode      LocationMode
	LocationLabel     string   // optional human label
	LocationLat       *float64 // nil unless a coordinate was captured
	LocationLng       *float64
	LocationAccuracyM *float64

	ContactNeedBack bool
	ContactMethod   ContactMethod
	ContactValue    string // optional; empty for in-app chat

	ClaimedByUID      string
	ClaimedAt         time.Time
	ResolvedAt        time.Time
	ResolutionCode    string
	ResolutionSummary string
	ClosedByUID       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Action is one append-only audit entry on a report.
type Action struct {
	ID       string
	EventID  string
	ReportID string
	At       time.Time
	ByUID    string
	Type     ActionType
	Details  string
}

// ActionType identifies what an audit entry records.
type ActionType string

const (
	ActionCreated  ActionType = "CREATED"
	ActionClaimed  ActionType = "CLAIMED"
	ActionResolved ActionType = "RESOLVED"
)

// Message is one chat message attached to a report.
type Message struct {
	ID         string
	EventID    string
	ReportID   string
	At         time.Time
	SenderRole member.Role
	SenderUID  string
	Text       string
}

// ValidateDescription checks that a report description is present.
func ValidateDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "", apperrors.New(apperrors.CodeReportDescriptionRequired, "report description is required")
	}
	return trimmed, nil
}

// ValidateResolution checks resolve inputs: both fields are required.
func ValidateResolution(code, summary string) (string, string, error) {
	trimmedCode := strings.TrimSpace(code)
	trimmedSummary := strings.TrimSpace(summary)
	if trimmedCode == "" || trimmedSummary == "" {
		return "", "", apperrors.New(apperrors.CodeReportResolutionRequired, "resolution code and summary are required")
	}
	return trimmedCode, trimmedSummary, nil
}

// ValidateMessageText checks that a report message has content.
func ValidateMessageText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", apperrors.New(apperrors.CodeMessageTextRequired, "message text is required")
	}
	return trimmed, nil
}
