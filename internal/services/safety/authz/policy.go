// Package authz defines the event authorization policy matrix.
//
// The package centralizes role/capability authorization so operation
// handlers call one evaluator instead of duplicating role checks.
// Contextual guards (report ownership, claimant identity) stay with the
// operations because they depend on row state, not role alone.
package authz

import (
	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
)

// Capability identifies one gated thing a member can do inside an event.
type Capability string

const (
	CapabilityViewEvent      Capability = "view_event"
	CapabilityViewMembers    Capability = "view_members"
	CapabilityManageInvites  Capability = "manage_invites"
	CapabilityCreateReports  Capability = "create_reports"
	CapabilityTriageReports  Capability = "triage_reports"
	CapabilityViewAllReports Capability = "view_all_reports"
)

// Reason codes carried on decisions for logging and debugging.
const (
	ReasonAllowRole             = "ALLOW_ROLE"
	ReasonDenyRoleRequired      = "DENY_ROLE_REQUIRED"
	ReasonDenyNotMember         = "DENY_NOT_MEMBER"
	ReasonDenyUnknownCapability = "DENY_UNKNOWN_CAPABILITY"
)

// Decision is one authorization outcome with its reason.
type Decision struct {
	Allowed    bool
	ReasonCode string
}

// capabilityRoles maps each capability to the roles that hold it.
var capabilityRoles = map[Capability][]member.Role{
	CapabilityViewEvent:      {member.RoleAttendee, member.RoleOrganizer},
	CapabilityViewMembers:    {member.RoleOrganizer},
	CapabilityManageInvites:  {member.RoleOrganizer},
	CapabilityCreateReports:  {member.RoleAttendee, member.RoleOrganizer},
	CapabilityTriageReports:  {member.RoleOrganizer},
	CapabilityViewAllReports: {member.RoleOrganizer},
}

// Can evaluates whether a role holds a capability. An unspecified role means
// the caller is not a member of the event at all.
func Can(role member.Role, capability Capability) Decision {
	if role == member.RoleUnspecified {
		return Decision{Allowed: false, ReasonCode: ReasonDenyNotMember}
	}
	roles, ok := capabilityRoles[capability]
	if !ok {
		return Decision{Allowed: false, ReasonCode: ReasonDenyUnknownCapability}
	}
	for _, r := range roles {
		if r == role {
			return Decision{Allowed: true, ReasonCode: ReasonAllowRole}
		}
	}
	return Decision{Allowed: false, ReasonCode: ReasonDenyRoleRequired}
}
