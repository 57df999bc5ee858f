package api

import (
	"context"
	"fmt"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
	"github.com/festsafe/festsafe/internal/services/safety/authz"
	"github.com/festsafe/festsafe/internal/services/safety/domain/event"
	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
	"github.com/festsafe/festsafe/internal/services/safety/domain/report"
	"github.com/festsafe/festsafe/internal/services/safety/storage"
)

// CreateReportRequest identifies one incident report creation.
type CreateReportRequest struct {
	EventID         string
	Description     string
	Urgency         string
	Category        string
	ImmediateDanger bool

	LocationMode      string
	LocationLabel     string
	LocationLat       *float64
	LocationLng       *float64
	LocationAccuracyM *float64

	ContactNeedBack bool
	ContactMethod   string
	ContactValue    string
}

// CreateReportResponse carries the created report.
type CreateReportResponse struct {
	Report report.Report
}

// CreateReport files an incident report for a member.
func (s *Service) CreateReport(ctx context.Context, req CreateReportRequest) (CreateReportResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return CreateReportResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return CreateReportResponse{}, err
	}

	description, err := report.ValidateDescription(req.Description)
	if err != nil {
		return CreateReportResponse{}, err
	}
	urgency, err := report.NormalizeUrgency(req.Urgency)
	if err != nil {
		return CreateReportResponse{}, err
	}
	category, err := report.NormalizeCategory(req.Category)
	if err != nil {
		return CreateReportResponse{}, err
	}
	locationMode, err := report.NormalizeLocationMode(req.LocationMode)
	if err != nil {
		return CreateReportResponse{}, err
	}
	contactMethod, err := report.NormalizeContactMethod(req.ContactMethod)
	if err != nil {
		return CreateReportResponse{}, err
	}

	if _, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityCreateReports); err != nil {
		return CreateReportResponse{}, err
	}

	reportID, err := s.newID()
	if err != nil {
		return CreateReportResponse{}, fmt.Errorf("generate report id: %w", err)
	}
	actionID, err := s.newID()
	if err != nil {
		return CreateReportResponse{}, fmt.Errorf("generate action id: %w", err)
	}

	now := s.now().UTC()
	r := report.Report{
		ID:                reportID,
		EventID:           req.EventID,
		CreatedByUID:      userID,
		Status:            report.StatusOpen,
		Urgency:           urgency,
		ImmediateDanger:   req.ImmediateDanger,
		Category:          category,
		Description:       description,
		LocationMode:      locationMode,
		LocationLabel:     req.LocationLabel,
		LocationLat:       req.LocationLat,
		LocationLng:       req.LocationLng,
		LocationAccuracyM: req.LocationAccuracyM,
		ContactNeedBack:   req.ContactNeedBack,
		ContactMethod:     contactMethod,
		ContactValue:      req.ContactValue,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	action := report.Action{
		ID:       actionID,
		EventID:  req.EventID,
		ReportID: reportID,
		At:       now,
		ByUID:    userID,
		Type:     report.ActionCreated,
	}
	if err := s.stores.Reports.CreateReport(ctx, r, action); err != nil {
		return CreateReportResponse{}, fmt.Errorf("create report: %w", err)
	}
	return CreateReportResponse{Report: r}, nil
}

// ClaimReportRequest identifies one claim attempt.
type ClaimReportRequest struct {
	EventID  string
	ReportID string
}

// ClaimReportResponse carries the claimed report.
type ClaimReportResponse struct {
	Report report.Report
}

// ClaimReport lets an organizer take ownership of an open report.
func (s *Service) ClaimReport(ctx context.Context, req ClaimReportRequest) (ClaimReportResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return ClaimReportResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return ClaimReportResponse{}, err
	}
	if _, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityTriageReports); err != nil {
		return ClaimReportResponse{}, err
	}

	actionID, err := s.newID()
	if err != nil {
		return ClaimReportResponse{}, fmt.Errorf("generate action id: %w", err)
	}
	action := report.Action{
		ID:       actionID,
		EventID:  req.EventID,
		ReportID: req.ReportID,
		At:       s.now().UTC(),
		ByUID:    userID,
		Type:     report.ActionClaimed,
	}

	claimed, err := s.stores.Reports.ClaimReport(ctx, req.EventID, req.ReportID, action)
	if err != nil {
		return ClaimReportResponse{}, err
	}
	return ClaimReportResponse{Report: claimed}, nil
}

// ResolveReportRequest identifies one resolution.
type ResolveReportRequest struct {
	EventID           string
	ReportID          string
	ResolutionCode    string
	ResolutionSummary string
}

// ResolveReportResponse carries the resolved report.
type ResolveReportResponse struct {
	Report report.Report
}

// ResolveReport closes out a claimed report. Only the claimant may resolve.
func (s *Service) ResolveReport(ctx context.Context, req ResolveReportRequest) (ResolveReportResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return ResolveReportResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return ResolveReportResponse{}, err
	}
	resolutionCode, resolutionSummary, err := report.ValidateResolution(req.ResolutionCode, req.ResolutionSummary)
	if err != nil {
		return ResolveReportResponse{}, err
	}
	if _, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityTriageReports); err != nil {
		return ResolveReportResponse{}, err
	}

	actionID, err := s.newID()
	if err != nil {
		return ResolveReportResponse{}, fmt.Errorf("generate action id: %w", err)
	}
	action := report.Action{
		ID:       actionID,
		EventID:  req.EventID,
		ReportID: req.ReportID,
		At:       s.now().UTC(),
		ByUID:    userID,
		Type:     report.ActionResolved,
		Details:  resolutionSummary,
	}

	resolved, err := s.stores.Reports.ResolveReport(ctx, req.EventID, req.ReportID, resolutionCode, resolutionSummary, action)
	if err != nil {
		return ResolveReportResponse{}, err
	}
	return ResolveReportResponse{Report: resolved}, nil
}

// PostReportMessageRequest identifies one message post.
type PostReportMessageRequest struct {
	EventID  string
	ReportID string
	Text     string
}

// PostReportMessageResponse carries the appended message.
type PostReportMessageResponse struct {
	Message report.Message
}

// PostReportMessage appends a chat message to a report. Attendees may only
// message their own report; organizers may message any report in the event.
// The sender role on the message comes from the live membership, never from
// the request.
func (s *Service) PostReportMessage(ctx context.Context, req PostReportMessageRequest) (PostReportMessageResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return PostReportMessageResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return PostReportMessageResponse{}, err
	}
	text, err := report.ValidateMessageText(req.Text)
	if err != nil {
		return PostReportMessageResponse{}, err
	}

	m, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityViewEvent)
	if err != nil {
		return PostReportMessageResponse{}, err
	}

	r, err := s.stores.Reports.GetReport(ctx, req.EventID, req.ReportID)
	if err != nil {
		return PostReportMessageResponse{}, err
	}
	if !member.IsOrganizer(m.Role) && r.CreatedByUID != userID {
		return PostReportMessageResponse{}, apperrors.New(apperrors.CodeMessageNotReportOwner, "attendees may only message their own report")
	}

	messageID, err := s.newID()
	if err != nil {
		return PostReportMessageResponse{}, fmt.Errorf("generate message id: %w", err)
	}
	msg := report.Message{
		ID:         messageID,
		EventID:    req.EventID,
		ReportID:   req.ReportID,
		At:         s.now().UTC(),
		SenderRole: m.Role,
		SenderUID:  userID,
		Text:       text,
	}
	if err := s.stores.Reports.AppendReportMessage(ctx, msg); err != nil {
		return PostReportMessageResponse{}, err
	}
	return PostReportMessageResponse{Message: msg}, nil
}

// GetReportRequest identifies one report read.
type GetReportRequest struct {
	EventID  string
	ReportID string
}

// GetReportResponse carries one report.
type GetReportResponse struct {
	Report report.Report
}

// GetReport returns a report to an organizer or to its reporter.
func (s *Service) GetReport(ctx context.Context, req GetReportRequest) (GetReportResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return GetReportResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return GetReportResponse{}, err
	}

	m, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityViewEvent)
	if err != nil {
		return GetReportResponse{}, err
	}

	r, err := s.stores.Reports.GetReport(ctx, req.EventID, req.ReportID)
	if err != nil {
		return GetReportResponse{}, err
	}
	if !member.IsOrganizer(m.Role) && r.CreatedByUID != userID {
		// Attendees learn nothing about other people's reports.
		return GetReportResponse{}, storage.ErrNotFound
	}
	return GetReportResponse{Report: r}, nil
}

// ListReportsRequest identifies one report page read.
type ListReportsRequest struct {
	EventID   string
	Status    string // optional filter; empty means all
	PageSize  int
	PageToken string
}

// ListReportsResponse carries one page of reports.
type ListReportsResponse struct {
	Reports       []report.Report
	NextPageToken string
}

// ListReports returns one page of an event's reports to an organizer.
func (s *Service) ListReports(ctx context.Context, req ListReportsRequest) (ListReportsResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return ListReportsResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return ListReportsResponse{}, err
	}

	status := report.StatusUnspecified
	if req.Status != "" {
		parsed, ok := report.NormalizeStatus(req.Status)
		if !ok {
			return ListReportsResponse{}, apperrors.New(apperrors.CodeReportInvalidStatus, "report status filter is invalid")
		}
		status = parsed
	}

	if _, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityViewAllReports); err != nil {
		return ListReportsResponse{}, err
	}

	page, err := s.stores.Reports.ListReports(ctx, req.EventID, status, req.PageSize, req.PageToken)
	if err != nil {
		return ListReportsResponse{}, err
	}
	return ListReportsResponse{Reports: page.Reports, NextPageToken: page.NextPageToken}, nil
}

// ListReportActionsRequest identifies one audit page read.
type ListReportActionsRequest struct {
	EventID   string
	ReportID  string
	PageSize  int
	PageToken string
}

// ListReportActionsResponse carries one page of audit actions.
type ListReportActionsResponse struct {
	Actions       []report.Action
	NextPageToken string
}

// ListReportActions returns a report's audit trail to an organizer.
func (s *Service) ListReportActions(ctx context.Context, req ListReportActionsRequest) (ListReportActionsResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return ListReportActionsResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return ListReportActionsResponse{}, err
	}
	if _, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityViewAllReports); err != nil {
		return ListReportActionsResponse{}, err
	}

	page, err := s.stores.Reports.ListReportActions(ctx, req.EventID, req.ReportID, req.PageSize, req.PageToken)
	if err != nil {
		return ListReportActionsResponse{}, err
	}
	return ListReportActionsResponse{Actions: page.Actions, NextPageToken: page.NextPageToken}, nil
}

// ListReportMessagesRequest identifies one message page read.
type ListReportMessagesRequest struct {
	EventID   string
	ReportID  string
	PageSize  int
	PageToken string
}

// ListReportMessagesResponse carries one page of messages.
type ListReportMessagesResponse struct {
	Messages      []report.Message
	NextPageToken string
}

// ListReportMessages returns a report's messages to an organizer or to its
// reporter.
func (s *Service) ListReportMessages(ctx context.Context, req ListReportMessagesRequest) (ListReportMessagesResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return ListReportMessagesResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return ListReportMessagesResponse{}, err
	}

	m, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityViewEvent)
	if err != nil {
		return ListReportMessagesResponse{}, err
	}

	r, err := s.stores.Reports.GetReport(ctx, req.EventID, req.ReportID)
	if err != nil {
		return ListReportMessagesResponse{}, err
	}
	if !member.IsOrganizer(m.Role) && r.CreatedByUID != userID {
		return ListReportMessagesResponse{}, storage.ErrNotFound
	}

	page, err := s.stores.Reports.ListReportMessages(ctx, req.EventID, req.ReportID, req.PageSize, req.PageToken)
	if err != nil {
		return ListReportMessagesResponse{}, err
	}
	return ListReportMessagesResponse{Messages: page.Messages, NextPageToken: page.NextPageToken}, nil
}
