package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/festsafe/festsafe/internal/services/safety/domain/event"
	"github.com/festsafe/festsafe/internal/services/safety/domain/invite"
	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
	"github.com/festsafe/festsafe/internal/services/safety/domain/report"
	"github.com/festsafe/festsafe/internal/services/safety/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "safety.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func seedEvent(t *testing.T, store *Store, eventID, organizerID string) {
	t.Helper()
	now := time.Now().UTC()
	err := store.CreateEvent(context.Background(), event.Event{
		ID:        eventID,
		Name:      "Solstice Fest",
		CreatedBy: organizerID,
		CreatedAt: now,
		UpdatedAt: now,
	}, member.Member{
		EventID:   eventID,
		UserID:    organizerID,
		Role:      member.RoleOrganizer,
		JoinedAt:  now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}
}

func seedInvite(t *testing.T, store *Store, inv invite.Invite) invite.Invite {
	t.Helper()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
		inv.UpdatedAt = inv.CreatedAt
	}
	if inv.Role == member.RoleUnspecified {
		inv.Role = member.RoleAttendee
	}
	inv.Active = true
	if err := store.CreateInvite(context.Background(), inv); err != nil {
		t.Fatalf("seed invite: %v", err)
	}
	return inv
}

func seedReport(t *testing.T, store *Store, eventID, reportID, reporterID string) report.Report {
	t.Helper()
	now := time.Now().UTC()
	r := report.Report{
		ID:            reportID,
		EventID:       eventID,
		CreatedByUID:  reporterID,
		Status:        report.StatusOpen,
		Urgency:       report.UrgencyNeedsHelpSoon,
		Category:      report.CategoryMedical,
		Description:   "someone needs help near gate B",
		LocationMode:  report.LocationModeManual,
		LocationLabel: "gate B",
		ContactMethod: report.ContactMethodInAppChat,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	action := report.Action{
		ID:       reportID + "-created",
		EventID:  eventID,
		ReportID: reportID,
		At:       now,
		ByUID:    reporterID,
		Type:     report.ActionCreated,
	}
	if err := store.CreateReport(context.Background(), r, action); err != nil {
		t.Fatalf("seed report: %v", err)
	}
	return r
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("   "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestCreateEventPersistsOrganizer(t *testing.T) {
	store := openTestStore(t)
	seedEvent(t, store, "evt-1", "org-1")

	e, err := store.GetEvent(context.Background(), "evt-1")
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if e.Name != "Solstice Fest" || e.CreatedBy != "org-1" {
		t.Fatalf("unexpected event %+v", e)
	}

	m, err := store.GetMember(context.Background(), "evt-1", "org-1")
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if m.Role != member.RoleOrganizer {
		t.Fatalf("organizer role = %q, want %q", m.Role, member.RoleOrganizer)
	}
}

func TestGetEventNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.GetEvent(context.Background(), "nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetMemberNotFound(t *testing.T) {
	store := openTestStore(t)
	seedEvent(t, store, "evt-1", "org-1")

	_, err := store.GetMember(context.Background(), "evt-1", "stranger")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListMembersPaginates(t *testing.T) {
	store := openTestStore(t)
	seedEvent(t, store, "evt-1", "org-1")
	inv := seedInvite(t, store, invite.Invite{ID: "inv-1", EventID: "evt-1", Code: "AAAAAA", CreatedBy: "org-1"})

	for _, uid := range []string{"user-a", "user-b", "user-c"} {
		if _, err := store.RedeemInvite(context.Background(), inv.Code, uid); err != nil {
			t.Fatalf("redeem for %s: %v", uid, err)
		}
	}

	page, err := store.ListMembers(context.Background(), "evt-1", 2, "")
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(page.Members) != 2 {
		t.Fatalf("expected 2 members on first page, got %d", len(page.Members))
	}
	if page.NextPageToken == "" {
		t.Fatal("expected next page token")
	}

	rest, err := store.ListMembers(context.Background(), "evt-1", 10, page.NextPageToken)
	if err != nil {
		t.Fatalf("list members page 2: %v", err)
	}
	if len(page.Members)+len(rest.Members) != 4 {
		t.Fatalf("expected 4 members total, got %d", len(page.Members)+len(rest.Members))
	}
	if rest.NextPageToken != "" {
		t.Fatalf("expected empty token on last page, got %q", rest.NextPageToken)
	}
}
