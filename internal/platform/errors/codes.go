// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Auth errors
	CodeAuthGrantInvalid Code = "AUTH_GRANT_INVALID"
	CodeAuthGrantExpired Code = "AUTH_GRANT_EXPIRED"
	CodeCallerRequired   Code = "CALLER_REQUIRED"

	// Event errors
	CodeEventNameTooShort  Code = "EVENT_NAME_TOO_SHORT"
	CodeEventEmptyID       Code = "EVENT_EMPTY_ID"
	CodeEventWindowInvalid Code = "EVENT_WINDOW_INVALID"

	// Membership errors
	CodeMemberInvalidRole  Code = "MEMBER_INVALID_ROLE"
	CodeMembershipRequired Code = "MEMBERSHIP_REQUIRED"
	CodeOrganizerRequired  Code = "ORGANIZER_REQUIRED"

	// Invite errors
	CodeInviteInvalidRole        Code = "INVITE_INVALID_ROLE"
	CodeInviteInvalidMaxUses     Code = "INVITE_INVALID_MAX_USES"
	CodeInviteCodeRequired       Code = "INVITE_CODE_REQUIRED"
	CodeInviteInactive           Code = "INVITE_INACTIVE"
	CodeInviteUsesExhausted      Code = "INVITE_USES_EXHAUSTED"
	CodeInviteCodeSpaceExhausted Code = "INVITE_CODE_SPACE_EXHAUSTED"

	// Report errors
	CodeReportDescriptionRequired  Code = "REPORT_DESCRIPTION_REQUIRED"
	CodeReportInvalidUrgency       Code = "REPORT_INVALID_URGENCY"
	CodeReportInvalidCategory      Code = "REPORT_INVALID_CATEGORY"
	CodeReportInvalidLocationMode  Code = "REPORT_INVALID_LOCATION_MODE"
	CodeReportInvalidContactMethod Code = "REPORT_INVALID_CONTACT_METHOD"
	CodeReportInvalidStatus        Code = "REPORT_INVALID_STATUS"
	CodeReportResolutionRequired   Code = "REPORT_RESOLUTION_REQUIRED"
	CodeReportNotOpen              Code = "REPORT_NOT_OPEN"
	CodeReportAlreadyClosed        Code = "REPORT_ALREADY_CLOSED"
	CodeReportNotClaimant          Code = "REPORT_NOT_CLAIMANT"

	// Message errors
	CodeMessageTextRequired   Code = "MESSAGE_TEXT_REQUIRED"
	CodeMessageNotReportOwner Code = "MESSAGE_NOT_REPORT_OWNER"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// Unauthenticated - caller identity missing or unverifiable
	case CodeAuthGrantInvalid,
		CodeAuthGrantExpired,
		CodeCallerRequired:
		return codes.Unauthenticated

	// InvalidArgument - validation failures, bad input
	case CodeEventNameTooShort,
		CodeEventEmptyID,
		CodeEventWindowInvalid,
		CodeMemberInvalidRole,
		CodeInviteInvalidRole,
		CodeInviteInvalidMaxUses,
		CodeInviteCodeRequired,
		CodeReportDescriptionRequired,
		CodeReportInvalidUrgency,
		CodeReportInvalidCategory,
		CodeReportInvalidLocationMode,
		CodeReportInvalidContactMethod,
		CodeReportInvalidStatus,
		CodeReportResolutionRequired,
		CodeMessageTextRequired:
		return codes.InvalidArgument

	// PermissionDenied - caller lacks the required role or ownership
	case CodeMembershipRequired,
		CodeOrganizerRequired,
		CodeReportNotClaimant,
		CodeMessageNotReportOwner:
		return codes.PermissionDenied

	// FailedPrecondition - entity state doesn't allow the operation
	case CodeInviteInactive,
		CodeInviteUsesExhausted,
		CodeReportNotOpen,
		CodeReportAlreadyClosed:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// ResourceExhausted - allocation retries exhausted
	case CodeInviteCodeSpaceExhausted:
		return codes.ResourceExhausted

	default:
		return codes.Internal
	}
}
