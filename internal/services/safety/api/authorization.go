package api

import (
	"context"
	"errors"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
	"github.com/festsafe/festsafe/internal/services/safety/authz"
	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
	"github.com/festsafe/festsafe/internal/services/safety/storage"
)

// requireMember loads the caller's membership and checks a capability.
// A missing membership is PermissionDenied, not NotFound: non-members must
// not learn whether an event exists.
func (s *Service) requireMember(ctx context.Context, eventID, userID string, capability authz.Capability) (member.Member, error) {
	m, err := s.stores.Members.GetMember(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return member.Member{}, apperrors.New(apperrors.CodeMembershipRequired, "caller is not a member of this event")
		}
		return member.Member{}, err
	}

	decision := authz.Can(m.Role, capability)
	if !decision.Allowed {
		return member.Member{}, denyError(decision)
	}
	return m, nil
}

// denyError maps an authorization denial to the caller-facing error.
func denyError(decision authz.Decision) error {
	switch decision.ReasonCode {
	case authz.ReasonDenyNotMember:
		return apperrors.New(apperrors.CodeMembershipRequired, "caller is not a member of this event")
	default:
		return apperrors.New(apperrors.CodeOrganizerRequired, "caller is not an organizer of this event")
	}
}
