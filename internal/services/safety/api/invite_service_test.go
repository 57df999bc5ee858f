package api

import (
	"testing"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
)

// codeSequence replays a fixed list of candidate codes, repeating the last
// one once the list runs out.
func codeSequence(codes ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		code := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return code, nil
	}
}

func TestCreateInviteRequiresOrganizer(t *testing.T) {
	svc := newTestService(t)
	eventID := createTestEvent(t, svc, "org-1")
	admitMember(t, svc, "org-1", eventID, "user-1", "ATTENDEE")

	_, err := svc.CreateInvite(asUser("user-1"), CreateInviteRequest{EventID: eventID, Role: "ATTENDEE"})
	wantCode(t, err, apperrors.CodeOrganizerRequired)

	_, err = svc.CreateInvite(asUser("stranger"), CreateInviteRequest{EventID: eventID, Role: "ATTENDEE"})
	wantCode(t, err, apperrors.CodeMembershipRequired)
}

func TestCreateInviteValidation(t *testing.T) {
	svc := newTestService(t)
	eventID := createTestEvent(t, svc, "org-1")

	_, err := svc.CreateInvite(asUser("org-1"), CreateInviteRequest{EventID: eventID, Role: "ADMIN"})
	wantCode(t, err, apperrors.CodeInviteInvalidRole)

	zero := 0
	_, err = svc.CreateInvite(asUser("org-1"), CreateInviteRequest{EventID: eventID, Role: "ATTENDEE", MaxUses: &zero})
	wantCode(t, err, apperrors.CodeInviteInvalidMaxUses)
}

func TestCreateInviteRetriesOnCodeCollision(t *testing.T) {
	svc := newTestService(t, WithCodeGenerator(codeSequence("AAAA22", "AAAA22", "BBBB33")))
	eventID := createTestEvent(t, svc, "org-1")

	first, err := svc.CreateInvite(asUser("org-1"), CreateInviteRequest{EventID: eventID, Role: "ATTENDEE"})
	if err != nil {
		t.Fatalf("create first invite: %v", err)
	}
	if first.Invite.Code != "AAAA22" {
		t.Fatalf("expected first code AAAA22, got %s", first.Invite.Code)
	}

	second, err := svc.CreateInvite(asUser("org-1"), CreateInviteRequest{EventID: eventID, Role: "ATTENDEE"})
	if err != nil {
		t.Fatalf("create second invite: %v", err)
	}
	if second.Invite.Code != "BBBB33" {
		t.Fatalf("expected retried code BBBB33, got %s", second.Invite.Code)
	}
}

func TestCreateInviteCodeSpaceExhausted(t *testing.T) {
	svc := newTestService(t, WithCodeGenerator(codeSequence("AAAA22")))
	eventID := createTestEvent(t, svc, "org-1")

	if _, err := svc.CreateInvite(asUser("org-1"), CreateInviteRequest{EventID: eventID, Role: "ATTENDEE"}); err != nil {
		t.Fatalf("create first invite: %v", err)
	}

	_, err := svc.CreateInvite(asUser("org-1"), CreateInviteRequest{EventID: eventID, Role: "ATTENDEE"})
	wantCode(t, err, apperrors.CodeInviteCodeSpaceExhausted)
}

func TestRedeemCodeGrantsMembership(t *testing.T) {
	svc := newTestService(t)
	eventID := createTestEvent(t, svc, "org-1")

	inv, err := svc.CreateInvite(asUser("org-1"), CreateInviteRequest{EventID: eventID, Role: "ATTENDEE"})
	if err != nil {
		t.Fatalf("create invite: %v", err)
	}

	resp, err := svc.RedeemCode(asUser("user-1"), RedeemCodeRequest{Code: inv.Invite.Code})
	if err != nil {
		t.Fatalf("redeem code: %v", err)
	}
	if resp.EventID != eventID {
		t.Fatalf("expected event %s, got %s", eventID, resp.EventID)
	}
	if resp.Role != member.RoleAttendee {
		t.Fatalf("expected ATTENDEE, got %s", resp.Role)
	}

	if _, err := svc.GetEvent(asUser("user-1"), GetEventRequest{EventID: eventID}); err != nil {
		t.Fatalf("get event after admission: %v", err)
	}
}

func TestRedeemCodeNormalizesInput(t *testing.T) {
	svc := newTestService(t, WithCodeGenerator(codeSequence("QRST77")))
	eventID := createTestEvent(t, svc, "org-1")

	if _, err := svc.CreateInvite(asUser("org-1"), CreateInviteRequest{EventID: eventID, Role: "ATTENDEE"}); err != nil {
		t.Fatalf("create invite: %v", err)
	}

	if _, err := svc.RedeemCode(asUser("user-1"), RedeemCodeRequest{Code: "  qrst77  "}); err != nil {
		t.Fatalf("redeem lowercased code: %v", err)
	}
}

func TestRedeemCodeUnknown(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RedeemCode(asUser("user-1"), RedeemCodeRequest{Code: "ZZZZ99"})
	wantCode(t, err, apperrors.CodeNotFound)
}

func TestRedeemCodeEmpty(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RedeemCode(asUser("user-1"), RedeemCodeRequest{Code: "   "})
	wantCode(t, err, apperrors.CodeInviteCodeRequired)
}

func TestRedeemCodeSingleUse(t *testing.T) {
	svc := newTestService(t)
	eventID := createTestEvent(t, svc, "org-1")

	one := 1
	inv, err := svc.CreateInvite(asUser("org-1"), CreateInviteRequest{EventID: eventID, Role: "ATTENDEE", MaxUses: &one})
	if err != nil {
		t.Fatalf("create invite: %v", err)
	}

	if _, err := svc.RedeemCode(asUser("user-1"), RedeemCodeRequest{Code: inv.Invite.Code}); err != nil {
		t.Fatalf("first redemption: %v", err)
	}

	_, err = svc.RedeemCode(asUser("user-2"), RedeemCodeRequest{Code: inv.Invite.Code})
	wantCode(t, err, apperrors.CodeInviteUsesExhausted)
}

func TestRotateInviteCodeRetiresOldCode(t *testing.T) {
	svc := newTestService(t, WithCodeGenerator(codeSequence("AAAA22", "BBBB33")))
	eventID := createTestEvent(t, svc, "org-1")

	inv, err := svc.CreateInvite(asUser("org-1"), CreateInviteRequest{EventID: eventID, Role: "ATTENDEE"})
	if err != nil {
		t.Fatalf("create invite: %v", err)
	}

	rotated, err := svc.RotateInviteCode(asUser("org-1"), RotateInviteCodeRequest{EventID: eventID, InviteID: inv.Invite.ID})
	if err != nil {
		t.Fatalf("rotate invite code: %v", err)
	}
	if rotated.Invite.Code != "BBBB33" {
		t.Fatalf("expected rotated code BBBB33, got %s", rotated.Invite.Code)
	}

	_, err = svc.RedeemCode(asUser("user-1"), RedeemCodeRequest{Code: "AAAA22"})
	wantCode(t, err, apperrors.CodeInviteInactive)

	if _, err := svc.RedeemCode(asUser("user-1"), RedeemCodeRequest{Code: "BBBB33"}); err != nil {
		t.Fatalf("redeem rotated code: %v", err)
	}
}

func TestDeactivateInviteStopsRedemption(t *testing.T) {
	svc := newTestService(t)
	eventID := createTestEvent(t, svc, "org-1")

	inv, err := svc.CreateInvite(asUser("org-1"), CreateInviteRequest{EventID: eventID, Role: "ATTENDEE"})
	if err != nil {
		t.Fatalf("create invite: %v", err)
	}

	if _, err := svc.DeactivateInvite(asUser("org-1"), DeactivateInviteRequest{EventID: eventID, InviteID: inv.Invite.ID}); err != nil {
		t.Fatalf("deactivate invite: %v", err)
	}

	_, err = svc.RedeemCode(asUser("user-1"), RedeemCodeRequest{Code: inv.Invite.Code})
	wantCode(t, err, apperrors.CodeInviteInactive)
}

func TestDeactivateInviteUnknown(t *testing.T) {
	svc := newTestService(t)
	eventID := createTestEvent(t, svc, "org-1")

	_, err := svc.DeactivateInvite(asUser("org-1"), DeactivateInviteRequest{EventID: eventID, InviteID: "no-such-invite"})
	wantCode(t, err, apperrors.CodeNotFound)
}

func TestListInvitesRequiresOrganizer(t *testing.T) {
	svc := newTestService(t)
	eventID := createTestEvent(t, svc, "org-1")
	admitMember(t, svc, "org-1", eventID, "user-1", "ATTENDEE")

	_, err := svc.ListInvites(asUser("user-1"), ListInvitesRequest{EventID: eventID})
	wantCode(t, err, apperrors.CodeOrganizerRequired)
}

func TestListInvitesReturnsCreated(t *testing.T) {
	svc := newTestService(t)
	eventID := createTestEvent(t, svc, "org-1")

	created := map[string]bool{}
	for i := 0; i < 3; i++ {
		inv, err := svc.CreateInvite(asUser("org-1"), CreateInviteRequest{EventID: eventID, Role: "ATTENDEE"})
		if err != nil {
			t.Fatalf("create invite %d: %v", i, err)
		}
		created[inv.Invite.ID] = true
	}

	page, err := svc.ListInvites(asUser("org-1"), ListInvitesRequest{EventID: eventID})
	if err != nil {
		t.Fatalf("list invites: %v", err)
	}
	if len(page.Invites) != len(created) {
		t.Fatalf("expected %d invites, got %d", len(created), len(page.Invites))
	}
	for _, inv := range page.Invites {
		if !created[inv.ID] {
			t.Fatalf("unexpected invite %s in listing", inv.ID)
		}
		if !inv.Active {
			t.Fatalf("expected invite %s to list as active", inv.ID)
		}
	}
}
