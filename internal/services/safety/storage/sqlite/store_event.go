package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/festsafe/festsafe/internal/services/safety/domain/event"
	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
	"github.com/festsafe/festsafe/internal/services/safety/storage"
)

// CreateEvent persists the event and its creator's organizer membership
// atomically. An event without an organizer is unreachable, so the two rows
// never exist apart.
func (s *Store) CreateEvent(ctx context.Context, e event.Event, organizer member.Member) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("store is not configured")
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO events (id, name, created_by, starts_at, ends_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID,
			e.Name,
			e.CreatedBy,
			toNullMillis(e.StartsAt),
			toNullMillis(e.EndsAt),
			toMillis(e.CreatedAt),
			toMillis(e.UpdatedAt),
		); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO members (event_id, user_id, role, joined_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
			organizer.EventID,
			organizer.UserID,
			string(organizer.Role),
			toMillis(organizer.JoinedAt),
			toMillis(organizer.UpdatedAt),
		); err != nil {
			return fmt.Errorf("insert organizer membership: %w", err)
		}
		return nil
	})
}

// GetEvent returns one event by id.
func (s *Store) GetEvent(ctx context.Context, eventID string) (event.Event, error) {
	if s == nil || s.sqlDB == nil {
		return event.Event{}, fmt.Errorf("store is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, name, created_by, starts_at, ends_at, created_at, updated_at
FROM events WHERE id = ?`, eventID)

	var e event.Event
	var startsAt, endsAt sql.NullInt64
	var createdAt, updatedAt int64
	if err := row.Scan(&e.ID, &e.Name, &e.CreatedBy, &startsAt, &endsAt, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return event.Event{}, storage.ErrNotFound
		}
		return event.Event{}, fmt.Errorf("get event: %w", err)
	}
	e.StartsAt = fromNullMillis(startsAt)
	e.EndsAt = fromNullMillis(endsAt)
	e.CreatedAt = fromMillis(createdAt)
	e.UpdatedAt = fromMillis(updatedAt)
	return e, nil
}

var _ storage.EventStore = (*Store)(nil)
