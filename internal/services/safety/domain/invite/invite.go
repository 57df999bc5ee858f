// Package invite models code-gated event admission.
//
// Invites are the only admission path into an event: each carries a short
// human-enterable code that is globally unique across all events. The code
// index entry and the invite row move together so a code can never point at
// state the invite disagrees with.
package invite

import (
	"time"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
)

// Invite grants admission into one event at a fixed role.
type Invite struct {
	ID        string
	EventID   string
	Code      string
	Role      member.Role
	Active    bool
	Uses      int
	MaxUses   *int // nil means unlimited
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Exhausted reports whether the invite has no uses left.
func (i Invite) Exhausted() bool {
	return i.MaxUses != nil && i.Uses >= *i.MaxUses
}

// ValidateRole checks that a redeemed invite grants a known role.
func ValidateRole(value string) (member.Role, error) {
	role, ok := member.NormalizeRole(value)
	if !ok {
		return member.RoleUnspecified, apperrors.New(apperrors.CodeInviteInvalidRole, "invite role is invalid")
	}
	return role, nil
}

// ValidateMaxUses checks an optional use limit. Nil means unlimited.
func ValidateMaxUses(maxUses *int) error {
	if maxUses != nil && *maxUses < 1 {
		return apperrors.New(apperrors.CodeInviteInvalidMaxUses, "invite max uses must be at least 1")
	}
	return nil
}
