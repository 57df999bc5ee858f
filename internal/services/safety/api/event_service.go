package api

import (
	"context"
	"fmt"
	"time"

	"github.com/festsafe/festsafe/internal/services/safety/authz"
	"github.com/festsafe/festsafe/internal/services/safety/domain/event"
	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
)

// CreateEventRequest identifies one event creation.
type CreateEventRequest struct {
	Name     string
	StartsAt time.Time
	EndsAt   time.Time
}

// CreateEventResponse carries the created event.
type CreateEventResponse struct {
	Event event.Event
}

// CreateEvent creates an event and admits its creator as organizer in one
// store transaction.
func (s *Service) CreateEvent(ctx context.Context, req CreateEventRequest) (CreateEventResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return CreateEventResponse{}, err
	}

	name, err := event.NormalizeName(req.Name)
	if err != nil {
		return CreateEventResponse{}, err
	}
	if err := event.ValidateWindow(req.StartsAt, req.EndsAt); err != nil {
		return CreateEventResponse{}, err
	}

	eventID, err := s.newID()
	if err != nil {
		return CreateEventResponse{}, fmt.Errorf("generate event id: %w", err)
	}

	now := s.now().UTC()
	e := event.Event{
		ID:        eventID,
		Name:      name,
		CreatedBy: userID,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	organizer := member.Member{
		EventID:   eventID,
		UserID:    userID,
		Role:      member.RoleOrganizer,
		JoinedAt:  now,
		UpdatedAt: now,
	}
	if err := s.stores.Events.CreateEvent(ctx, e, organizer); err != nil {
		return CreateEventResponse{}, fmt.Errorf("create event: %w", err)
	}
	return CreateEventResponse{Event: e}, nil
}

// GetEventRequest identifies one event read.
type GetEventRequest struct {
	EventID string
}

// GetEventResponse carries one event.
type GetEventResponse struct {
	Event event.Event
}

// GetEvent returns an event to one of its members.
func (s *Service) GetEvent(ctx context.Context, req GetEventRequest) (GetEventResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return GetEventResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return GetEventResponse{}, err
	}
	if _, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityViewEvent); err != nil {
		return GetEventResponse{}, err
	}

	e, err := s.stores.Events.GetEvent(ctx, req.EventID)
	if err != nil {
		return GetEventResponse{}, err
	}
	return GetEventResponse{Event: e}, nil
}

// ListMembersRequest identifies one membership page read.
type ListMembersRequest struct {
	EventID   string
	PageSize  int
	PageToken string
}

// ListMembersResponse carries one page of memberships.
type ListMembersResponse struct {
	Members       []member.Member
	NextPageToken string
}

// ListMembers returns one page of an event's members to an organizer.
func (s *Service) ListMembers(ctx context.Context, req ListMembersRequest) (ListMembersResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return ListMembersResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return ListMembersResponse{}, err
	}
	if _, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityViewMembers); err != nil {
		return ListMembersResponse{}, err
	}

	page, err := s.stores.Members.ListMembers(ctx, req.EventID, req.PageSize, req.PageToken)
	if err != nil {
		return ListMembersResponse{}, err
	}
	return ListMembersResponse{Members: page.Members, NextPageToken: page.NextPageToken}, nil
}
