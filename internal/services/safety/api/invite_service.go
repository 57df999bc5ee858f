package api

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
	"github.com/festsafe/festsafe/internal/services/safety/authz"
	"github.com/festsafe/festsafe/internal/services/safety/domain/event"
	"github.com/festsafe/festsafe/internal/services/safety/domain/invite"
	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
	"github.com/festsafe/festsafe/internal/services/safety/storage"
)

// CreateInviteRequest identifies one invite creation.
type CreateInviteRequest struct {
	EventID string
	Role    string
	MaxUses *int // nil means unlimited
}

// CreateInviteResponse carries the created invite, code included.
type CreateInviteResponse struct {
	Invite invite.Invite
}

// CreateInvite mints an invite with a globally unique code.
func (s *Service) CreateInvite(ctx context.Context, req CreateInviteRequest) (CreateInviteResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return CreateInviteResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return CreateInviteResponse{}, err
	}
	role, err := invite.ValidateRole(req.Role)
	if err != nil {
		return CreateInviteResponse{}, err
	}
	if err := invite.ValidateMaxUses(req.MaxUses); err != nil {
		return CreateInviteResponse{}, err
	}
	if _, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityManageInvites); err != nil {
		return CreateInviteResponse{}, err
	}

	inviteID, err := s.newID()
	if err != nil {
		return CreateInviteResponse{}, fmt.Errorf("generate invite id: %w", err)
	}

	now := s.now().UTC()
	inv := invite.Invite{
		ID:        inviteID,
		EventID:   req.EventID,
		Role:      role,
		Active:    true,
		MaxUses:   req.MaxUses,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for attempt := 0; attempt < invite.MaxCodeAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return CreateInviteResponse{}, fmt.Errorf("generate invite code: %w", err)
		}
		inv.Code = invite.NormalizeCode(code)

		err = s.stores.Invites.CreateInvite(ctx, inv)
		if err == nil {
			return CreateInviteResponse{Invite: inv}, nil
		}
		if errors.Is(err, storage.ErrCodeTaken) {
			continue
		}
		return CreateInviteResponse{}, fmt.Errorf("create invite: %w", err)
	}
	return CreateInviteResponse{}, apperrors.New(apperrors.CodeInviteCodeSpaceExhausted, "invite code allocation retries exhausted")
}

// RedeemCodeRequest identifies one code redemption.
type RedeemCodeRequest struct {
	Code string
}

// RedeemCodeResponse reports the membership granted by the redemption.
type RedeemCodeResponse struct {
	EventID string
	Role    member.Role
}

// RedeemCode admits the caller into the event behind the code.
func (s *Service) RedeemCode(ctx context.Context, req RedeemCodeRequest) (RedeemCodeResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return RedeemCodeResponse{}, err
	}
	code, err := invite.ValidateCode(req.Code)
	if err != nil {
		return RedeemCodeResponse{}, err
	}

	result, err := s.stores.Invites.RedeemInvite(ctx, code, userID)
	if err != nil {
		return RedeemCodeResponse{}, err
	}
	return RedeemCodeResponse{EventID: result.EventID, Role: result.Role}, nil
}

// RotateInviteCodeRequest identifies one code rotation.
type RotateInviteCodeRequest struct {
	EventID  string
	InviteID string
}

// RotateInviteCodeResponse carries the invite with its replacement code.
type RotateInviteCodeResponse struct {
	Invite invite.Invite
}

// RotateInviteCode replaces an invite's code. The old code stops admitting
// anyone the moment the new one exists; there is no window where both work.
func (s *Service) RotateInviteCode(ctx context.Context, req RotateInviteCodeRequest) (RotateInviteCodeResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return RotateInviteCodeResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return RotateInviteCodeResponse{}, err
	}
	if _, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityManageInvites); err != nil {
		return RotateInviteCodeResponse{}, err
	}

	for attempt := 0; attempt < invite.MaxCodeAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return RotateInviteCodeResponse{}, fmt.Errorf("generate invite code: %w", err)
		}
		newCode := invite.NormalizeCode(code)

		err = s.stores.Invites.RotateInviteCode(ctx, req.EventID, req.InviteID, newCode)
		if err == nil {
			inv, err := s.stores.Invites.GetInvite(ctx, req.EventID, req.InviteID)
			if err != nil {
				return RotateInviteCodeResponse{}, err
			}
			return RotateInviteCodeResponse{Invite: inv}, nil
		}
		if errors.Is(err, storage.ErrCodeTaken) {
			continue
		}
		return RotateInviteCodeResponse{}, err
	}
	return RotateInviteCodeResponse{}, apperrors.New(apperrors.CodeInviteCodeSpaceExhausted, "invite code allocation retries exhausted")
}

// DeactivateInviteRequest identifies one invite deactivation.
type DeactivateInviteRequest struct {
	EventID  string
	InviteID string
}

// DeactivateInviteResponse is empty; absence of error means deactivated.
type DeactivateInviteResponse struct{}

// DeactivateInvite turns off an invite and its code.
func (s *Service) DeactivateInvite(ctx context.Context, req DeactivateInviteRequest) (DeactivateInviteResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return DeactivateInviteResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return DeactivateInviteResponse{}, err
	}
	if _, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityManageInvites); err != nil {
		return DeactivateInviteResponse{}, err
	}

	if err := s.stores.Invites.DeactivateInvite(ctx, req.EventID, req.InviteID); err != nil {
		return DeactivateInviteResponse{}, err
	}
	return DeactivateInviteResponse{}, nil
}

// ListInvitesRequest identifies one invite page read.
type ListInvitesRequest struct {
	EventID   string
	PageSize  int
	PageToken string
}

// ListInvitesResponse carries one page of invites.
type ListInvitesResponse struct {
	Invites       []invite.Invite
	NextPageToken string
}

// ListInvites returns one page of an event's invites to an organizer.
func (s *Service) ListInvites(ctx context.Context, req ListInvitesRequest) (ListInvitesResponse, error) {
	userID, err := requireCaller(ctx)
	if err != nil {
		return ListInvitesResponse{}, err
	}
	if err := event.ValidateID(req.EventID); err != nil {
		return ListInvitesResponse{}, err
	}
	if _, err := s.requireMember(ctx, req.EventID, userID, authz.CapabilityManageInvites); err != nil {
		return ListInvitesResponse{}, err
	}

	page, err := s.stores.Invites.ListInvites(ctx, req.EventID, req.PageSize, req.PageToken)
	if err != nil {
		return ListInvitesResponse{}, err
	}
	return ListInvitesResponse{Invites: page.Invites, NextPageToken: page.NextPageToken}, nil
}
