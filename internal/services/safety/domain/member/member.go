// Package member models event membership and roles.
package member

import (
	"strings"
	"time"
)

// Role identifies a member's capability level within one event.
type Role string

const (
	RoleUnspecified Role = ""
	RoleAttendee    Role = "ATTENDEE"
	RoleOrganizer   Role = "ORGANIZER"
)

// Member binds one user to one event with a role.
type Member struct {
	EventID   string
	UserID    string
	Role      Role
	JoinedAt  time.Time
	UpdatedAt time.Time
}

// NormalizeRole parses a role label into a canonical value.
func NormalizeRole(value string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "ATTENDEE":
		return RoleAttendee, true
	case "ORGANIZER":
		return RoleOrganizer, true
	default:
		return RoleUnspecified, false
	}
}

// rank orders roles by capability for no-demotion merging.
func rank(r Role) int {
	switch r {
	case RoleAttendee:
		return 1
	case RoleOrganizer:
		return 2
	default:
		return 0
	}
}

// Merge returns the role an existing member keeps when admitted again.
// A redemption never demotes: the higher of the two roles wins.
func Merge(existing, granted Role) Role {
	if rank(granted) > rank(existing) {
		return granted
	}
	return existing
}

// IsOrganizer reports whether the role carries organizer capability.
func IsOrganizer(r Role) bool {
	return r == RoleOrganizer
}
