// Package storage defines persistence contracts for the safety service.
//
// Stores own the transactional invariants: multi-row writes (invite plus its
// code index entry, report plus its audit action) commit or fail together,
// and state preconditions are re-checked inside the transaction so callers
// never race each other past a limit.
package storage

import (
	"context"
	"errors"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
	"github.com/festsafe/festsafe/internal/services/safety/domain/event"
	"github.com/festsafe/festsafe/internal/services/safety/domain/invite"
	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
	"github.com/festsafe/festsafe/internal/services/safety/domain/report"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrCodeTaken signals an invite code collision. It never crosses the API
// boundary; the allocator retries with a fresh candidate.
var ErrCodeTaken = errors.New("invite code already taken")

// ErrInviteInactive indicates the redeemed invite was deactivated.
var ErrInviteInactive = apperrors.New(apperrors.CodeInviteInactive, "invite is inactive")

// ErrInviteExhausted indicates the redeemed invite hit its use limit.
var ErrInviteExhausted = apperrors.New(apperrors.CodeInviteUsesExhausted, "invite uses are exhausted")

// ErrReportNotOpen indicates a claim raced another organizer or the report
// already moved on.
var ErrReportNotOpen = apperrors.New(apperrors.CodeReportNotOpen, "report is not open")

// ErrReportClosed indicates a resolve hit a terminal report.
var ErrReportClosed = apperrors.New(apperrors.CodeReportAlreadyClosed, "report is already resolved or closed")

// ErrReportNotClaimant indicates a resolve by someone other than the claimant.
var ErrReportNotClaimant = apperrors.New(apperrors.CodeReportNotClaimant, "caller did not claim this report")

// EventStore persists events.
type EventStore interface {
	// CreateEvent writes the event and its creator's organizer membership
	// atomically.
	CreateEvent(ctx context.Context, e event.Event, organizer member.Member) error
	GetEvent(ctx context.Context, eventID string) (event.Event, error)
}

// MemberStore persists event memberships.
type MemberStore interface {
	GetMember(ctx context.Context, eventID, userID string) (member.Member, error)
	ListMembers(ctx context.Context, eventID string, pageSize int, pageToken string) (MemberPage, error)
}

// MemberPage describes a page of membership records.
type MemberPage struct {
	Members       []member.Member
	NextPageToken string
}

// RedeemResult reports the membership granted by a successful redemption.
type RedeemResult struct {
	EventID  string
	InviteID string
	Role     member.Role
}

// InviteStore persists invites and the global code index.
type InviteStore interface {
	// CreateInvite writes the invite and its code index entry atomically.
	// Returns ErrCodeTaken when the code is already indexed.
	CreateInvite(ctx context.Context, inv invite.Invite) error
	GetInvite(ctx context.Context, eventID, inviteID string) (invite.Invite, error)
	ListInvites(ctx context.Context, eventID string, pageSize int, pageToken string) (InvitePage, error)

	// RedeemInvite resolves a normalized code, verifies the live invite row
	// (active, uses below the limit), upserts the membership without
	// demoting an existing role, and increments uses by exactly one. All of
	// it happens in one transaction; concurrent redemptions can never push
	// the counter past the limit.
	RedeemInvite(ctx context.Context, code, userID string) (RedeemResult, error)

	// RotateInviteCode retires the old code index entry, publishes the new
	// one, and repoints the invite in one transaction. A code redeemed
	// mid-rotation sees either the old state or the new, never a mix.
	// Returns ErrCodeTaken when the new code is already indexed.
	RotateInviteCode(ctx context.Context, eventID, inviteID, newCode string) error

	// DeactivateInvite turns off the invite and its code index entry.
	DeactivateInvite(ctx context.Context, eventID, inviteID string) error
}

// InvitePage describes a page of invite records.
type InvitePage struct {
	Invites       []invite.Invite
	NextPageToken string
}

// ReportStore persists incident reports, their audit trail, and messages.
type ReportStore interface {
	// CreateReport writes the report and its CREATED action atomically.
	CreateReport(ctx context.Context, r report.Report, action report.Action) error
	GetReport(ctx context.Context, eventID, reportID string) (report.Report, error)
	// ListReports returns one page of an event's reports, optionally
	// filtered by status (StatusUnspecified means all).
	ListReports(ctx context.Context, eventID string, status report.Status, pageSize int, pageToken string) (ReportPage, error)

	// ClaimReport moves OPEN to CLAIMED and appends the claim action in one
	// transaction. Exactly one concurrent caller wins; losers get
	// ErrReportNotOpen (or ErrReportClosed when terminal).
	ClaimReport(ctx context.Context, eventID, reportID string, action report.Action) (report.Report, error)

	// ResolveReport moves CLAIMED to RESOLVED and appends the resolve
	// action in one transaction. Only the claimant recorded on the row may
	// resolve; others get ErrReportNotClaimant.
	ResolveReport(ctx context.Context, eventID, reportID, resolutionCode, resolutionSummary string, action report.Action) (report.Report, error)

	// AppendReportMessage adds one message to an existing report and bumps
	// the report's updated_at in the same transaction.
	AppendReportMessage(ctx context.Context, msg report.Message) error

	ListReportActions(ctx context.Context, eventID, reportID string, pageSize int, pageToken string) (ActionPage, error)
	ListReportMessages(ctx context.Context, eventID, reportID string, pageSize int, pageToken string) (MessagePage, error)
}

// ReportPage describes a page of report records.
type ReportPage struct {
	Reports       []report.Report
	NextPageToken string
}

// ActionPage describes a page of report audit actions.
type ActionPage struct {
	Actions       []report.Action
	NextPageToken string
}

// MessagePage describes a page of report messages.
type MessagePage struct {
	Messages      []report.Message
	NextPageToken string
}
