package report

import "strings"

// Status describes the report lifecycle label used by domain decisions.
type Status string

const (
	StatusUnspecified Status = ""
	StatusOpen        Status = "OPEN"
	StatusClaimed     Status = "CLAIMED"
	StatusInProgress  Status = "IN_PROGRESS"
	StatusResolved    Status = "RESOLVED"
	StatusClosed      Status = "CLOSED"
	StatusEscalated   Status = "ESCALATED"
)

// NormalizeStatus parses a status label into a canonical value.
func NormalizeStatus(value string) (Status, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "OPEN":
		return StatusOpen, true
	case "CLAIMED":
		return StatusClaimed, true
	case "IN_PROGRESS":
		return StatusInProgress, true
	case "RESOLVED":
		return StatusResolved, true
	case "CLOSED":
		return StatusClosed, true
	case "ESCALATED":
		return StatusEscalated, true
	default:
		return StatusUnspecified, false
	}
}

// IsTerminal reports whether no further transitions leave this status.
func IsTerminal(s Status) bool {
	return s == StatusResolved || s == StatusClosed
}

// CanClaim reports whether a report in this status accepts a claim.
// Exactly one organizer wins the transition out of OPEN.
func CanClaim(s Status) bool {
	return s == StatusOpen
}

// CanResolve reports whether a report in this status accepts a resolution.
func CanResolve(s Status) bool {
	return s == StatusClaimed || s == StatusInProgress
}
