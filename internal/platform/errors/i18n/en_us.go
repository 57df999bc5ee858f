package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeAuthGrantInvalid Code = "AUTH_GRANT_INVALID"
	CodeAuthGrantExpired Code = "AUTH_GRANT_EXPIRED"
	CodeCallerRequired   Code = "CALLER_REQUIRED"

	CodeEventNameTooShort  Code = "EVENT_NAME_TOO_SHORT"
	CodeEventEmptyID       Code = "EVENT_EMPTY_ID"
	CodeEventWindowInvalid Code = "EVENT_WINDOW_INVALID"

	CodeMemberInvalidRole  Code = "MEMBER_INVALID_ROLE"
	CodeMembershipRequired Code = "MEMBERSHIP_REQUIRED"
	CodeOrganizerRequired  Code = "ORGANIZER_REQUIRED"

	CodeInviteInvalidRole        Code = "INVITE_INVALID_ROLE"
	CodeInviteInvalidMaxUses     Code = "INVITE_INVALID_MAX_USES"
	CodeInviteCodeRequired       Code = "INVITE_CODE_REQUIRED"
	CodeInviteInactive           Code = "INVITE_INACTIVE"
	CodeInviteUsesExhausted      Code = "INVITE_USES_EXHAUSTED"
	CodeInviteCodeSpaceExhausted Code = "INVITE_CODE_SPACE_EXHAUSTED"

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

	CodeMessageTextRequired   Code = "MESSAGE_TEXT_REQUIRED"
	CodeMessageNotReportOwner Code = "MESSAGE_NOT_REPORT_OWNER"

	CodeNotFound Code = "NOT_FOUND"
)

// messagesEnUS holds the base-locale user-facing message templates.
var messagesEnUS = map[Code]string{
	CodeAuthGrantInvalid: "Login required.",
	CodeAuthGrantExpired: "Your session has expired. Please log in again.",
	CodeCallerRequired:   "Login required.",

	CodeEventNameTooShort:  "Event name must be at least {{.Min}} characters.",
	CodeEventEmptyID:       "Event is required.",
	CodeEventWindowInvalid: "Event end time must be after its start time.",

	CodeMemberInvalidRole:  "Unknown member role.",
	CodeMembershipRequired: "You must be a member of this event.",
	CodeOrganizerRequired:  "Organizer access required.",

	CodeInviteInvalidRole:        "Unknown invite role.",
	CodeInviteInvalidMaxUses:     "Invite use limit must be at least 1.",
	CodeInviteCodeRequired:       "Code required.",
	CodeInviteInactive:           "Code inactive.",
	CodeInviteUsesExhausted:      "This code has reached its use limit.",
	CodeInviteCodeSpaceExhausted: "Could not generate a unique invite code.",

	CodeReportDescriptionRequired:  "Description is required.",
	CodeReportInvalidUrgency:       "Unknown urgency level.",
	CodeReportInvalidCategory:      "Unknown report category.",
	CodeReportInvalidLocationMode:  "Unknown location mode.",
	CodeReportInvalidContactMethod: "Unknown contact method.",
	CodeReportInvalidStatus:        "Unknown report status.",
	CodeReportResolutionRequired:   "Resolution code and summary are required.",
	CodeReportNotOpen:              "Report is not open{{if .Status}} (status={{.Status}}){{end}}.",
	CodeReportAlreadyClosed:        "Report already resolved or closed.",
	CodeReportNotClaimant:          "Only the claiming organizer can resolve.",

	CodeMessageTextRequired:   "Message text is required.",
	CodeMessageNotReportOwner: "You can only message your own report.",

	CodeNotFound: "Not found.",
}
