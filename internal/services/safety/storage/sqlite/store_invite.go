package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/festsafe/festsafe/internal/services/safety/domain/invite"
	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
	"github.com/festsafe/festsafe/internal/services/safety/storage"
)

// CreateInvite writes the invite and its code index entry atomically.
// The code index insert goes first: its primary key is the global
// uniqueness check, and a collision aborts before the invite row exists.
func (s *Store) CreateInvite(ctx context.Context, inv invite.Invite) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("store is not configured")
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO invite_codes (code, event_id, invite_id, role, active, created_at)
VALUES (?, ?, ?, ?, 1, ?)`,
			inv.Code,
			inv.EventID,
			inv.ID,
			string(inv.Role),
			toMillis(inv.CreatedAt),
		); err != nil {
			if isUniqueViolation(err) {
				return storage.ErrCodeTaken
			}
			return fmt.Errorf("insert code index entry: %w", err)
		}

		var maxUses sql.NullInt64
		if inv.MaxUses != nil {
			maxUses = sql.NullInt64{Int64: int64(*inv.MaxUses), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO invites (event_id, id, code, role, active, uses, max_uses, created_by, created_at, updated_at)
VALUES (?, ?, ?, ?, 1, 0, ?, ?, ?, ?)`,
			inv.EventID,
			inv.ID,
			inv.Code,
			string(inv.Role),
			maxUses,
			inv.CreatedBy,
			toMillis(inv.CreatedAt),
			toMillis(inv.UpdatedAt),
		); err != nil {
			return fmt.Errorf("insert invite: %w", err)
		}
		return nil
	})
}

// GetInvite returns one invite by (event, id).
func (s *Store) GetInvite(ctx context.Context, eventID, inviteID string) (invite.Invite, error) {
	if s == nil || s.sqlDB == nil {
		return invite.Invite{}, fmt.Errorf("store is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT event_id, id, code, role, active, uses, max_uses, created_by, created_at, updated_at
FROM invites WHERE event_id = ? AND id = ?`, eventID, inviteID)

	inv, err := scanInvite(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return invite.Invite{}, storage.ErrNotFound
		}
		return invite.Invite{}, fmt.Errorf("get invite: %w", err)
	}
	return inv, nil
}

// ListInvites returns one page of an event's invites ordered by id.
func (s *Store) ListInvites(ctx context.Context, eventID string, pageSize int, pageToken string) (storage.InvitePage, error) {
	if s == nil || s.sqlDB == nil {
		return storage.InvitePage{}, fmt.Errorf("store is not configured")
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT event_id, id, code, role, active, uses, max_uses, created_by, created_at, updated_at
FROM invites
WHERE event_id = ? AND id > ?
ORDER BY id
LIMIT ?`, eventID, strings.TrimSpace(pageToken), pageSize+1)
	if err != nil {
		return storage.InvitePage{}, fmt.Errorf("list invites: %w", err)
	}
	defer rows.Close()

	var page storage.InvitePage
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return storage.InvitePage{}, fmt.Errorf("list invites: %w", err)
		}
		page.Invites = append(page.Invites, inv)
	}
	if err := rows.Err(); err != nil {
		return storage.InvitePage{}, fmt.Errorf("list invites: %w", err)
	}
	if len(page.Invites) > pageSize {
		page.NextPageToken = page.Invites[pageSize-1].ID
		page.Invites = page.Invites[:pageSize]
	}
	return page, nil
}

// RedeemInvite admits a user through a code in one transaction.
//
// The uses increment is a conditional update guarded by the active flag and
// the use limit; RowsAffected tells us whether this caller won. Losers get
// classified by re-reading the row inside the same transaction, so the
// error reflects the state that actually rejected them.
func (s *Store) RedeemInvite(ctx context.Context, code, userID string) (storage.RedeemResult, error) {
	if s == nil || s.sqlDB == nil {
		return storage.RedeemResult{}, fmt.Errorf("store is not configured")
	}

	var result storage.RedeemResult
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var eventID, inviteID string
		var indexActive bool
		row := tx.QueryRowContext(ctx, `
SELECT event_id, invite_id, active FROM invite_codes WHERE code = ?`, code)
		if err := row.Scan(&eventID, &inviteID, &indexActive); err != nil {
			if err == sql.ErrNoRows {
				return storage.ErrNotFound
			}
			return fmt.Errorf("resolve code: %w", err)
		}
		if !indexActive {
			return storage.ErrInviteInactive
		}

		now := s.now()
		res, err := tx.ExecContext(ctx, `
UPDATE invites
SET uses = uses + 1, updated_at = ?
WHERE event_id = ? AND id = ? AND active = 1
  AND (max_uses IS NULL OR uses < max_uses)`,
			toMillis(now), eventID, inviteID)
		if err != nil {
			return fmt.Errorf("increment invite uses: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("increment invite uses: %w", err)
		}
		if affected == 0 {
			inv, err := getInviteTx(ctx, tx, eventID, inviteID)
			if err != nil {
				return err
			}
			if !inv.Active {
				return storage.ErrInviteInactive
			}
			return storage.ErrInviteExhausted
		}

		inv, err := getInviteTx(ctx, tx, eventID, inviteID)
		if err != nil {
			return err
		}

		role, err := upsertMembershipTx(ctx, tx, eventID, userID, inv.Role, now)
		if err != nil {
			return err
		}

		result = storage.RedeemResult{EventID: eventID, InviteID: inviteID, Role: role}
		return nil
	})
	if err != nil {
		return storage.RedeemResult{}, err
	}
	return result, nil
}

// RotateInviteCode retires the old code and publishes the new one atomically.
func (s *Store) RotateInviteCode(ctx context.Context, eventID, inviteID, newCode string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("store is not configured")
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		inv, err := getInviteTx(ctx, tx, eventID, inviteID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE invite_codes SET active = 0 WHERE code = ?`, inv.Code); err != nil {
			return fmt.Errorf("retire old code: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO invite_codes (code, event_id, invite_id, role, active, created_at)
VALUES (?, ?, ?, ?, 1, ?)`,
			newCode, eventID, inviteID, string(inv.Role), toMillis(s.now()),
		); err != nil {
			if isUniqueViolation(err) {
				return storage.ErrCodeTaken
			}
			return fmt.Errorf("publish new code: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE invites SET code = ?, updated_at = ? WHERE event_id = ? AND id = ?`,
			newCode, toMillis(s.now()), eventID, inviteID,
		); err != nil {
			return fmt.Errorf("repoint invite code: %w", err)
		}
		return nil
	})
}

// DeactivateInvite turns off the invite and its code index entry.
func (s *Store) DeactivateInvite(ctx context.Context, eventID, inviteID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("store is not configured")
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE invites SET active = 0, updated_at = ? WHERE event_id = ? AND id = ?`,
			toMillis(s.now()), eventID, inviteID)
		if err != nil {
			return fmt.Errorf("deactivate invite: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deactivate invite: %w", err)
		}
		if affected == 0 {
			return storage.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE invite_codes SET active = 0 WHERE event_id = ? AND invite_id = ?`,
			eventID, inviteID); err != nil {
			return fmt.Errorf("deactivate code index entry: %w", err)
		}
		return nil
	})
}

// getInviteTx reads one invite row within a transaction.
func getInviteTx(ctx context.Context, tx *sql.Tx, eventID, inviteID string) (invite.Invite, error) {
	row := tx.QueryRowContext(ctx, `
SELECT event_id, id, code, role, active, uses, max_uses, created_by, created_at, updated_at
FROM invites WHERE event_id = ? AND id = ?`, eventID, inviteID)

	inv, err := scanInvite(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return invite.Invite{}, storage.ErrNotFound
		}
		return invite.Invite{}, fmt.Errorf("get invite: %w", err)
	}
	return inv, nil
}

// upsertMembershipTx admits or re-admits a user without demoting their role.
func upsertMembershipTx(ctx context.Context, tx *sql.Tx, eventID, userID string, granted member.Role, now time.Time) (member.Role, error) {
	var existing string
	row := tx.QueryRowContext(ctx, `
SELECT role FROM members WHERE event_id = ? AND user_id = ?`, eventID, userID)
	err := row.Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.ExecContext(ctx, `
INSERT INTO members (event_id, user_id, role, joined_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
			eventID, userID, string(granted), toMillis(now), toMillis(now),
		); err != nil {
			return member.RoleUnspecified, fmt.Errorf("insert membership: %w", err)
		}
		return granted, nil
	case err != nil:
		return member.RoleUnspecified, fmt.Errorf("read membership: %w", err)
	}

	merged := member.Merge(member.Role(existing), granted)
	if merged != member.Role(existing) {
		if _, err := tx.ExecContext(ctx, `
UPDATE members SET role = ?, updated_at = ? WHERE event_id = ? AND user_id = ?`,
			string(merged), toMillis(now), eventID, userID,
		); err != nil {
			return member.RoleUnspecified, fmt.Errorf("update membership role: %w", err)
		}
	}
	return merged, nil
}

func scanInvite(row rowScanner) (invite.Invite, error) {
	var inv invite.Invite
	var role string
	var active bool
	var maxUses sql.NullInt64
	var createdAt, updatedAt int64
	if err := row.Scan(
		&inv.EventID, &inv.ID, &inv.Code, &role, &active,
		&inv.Uses, &maxUses, &inv.CreatedBy, &createdAt, &updatedAt,
	); err != nil {
		return invite.Invite{}, err
	}
	inv.Role = member.Role(role)
	inv.Active = active
	if maxUses.Valid {
		limit := int(maxUses.Int64)
		inv.MaxUses = &limit
	}
	inv.CreatedAt = fromMillis(createdAt)
	inv.UpdatedAt = fromMillis(updatedAt)
	return inv, nil
}

var _ storage.InviteStore = (*Store)(nil)
