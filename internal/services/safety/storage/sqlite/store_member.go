package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
	"github.com/festsafe/festsafe/internal/services/safety/storage"
)

// GetMember returns one membership by (event, user).
func (s *Store) GetMember(ctx context.Context, eventID, userID string) (member.Member, error) {
	if s == nil || s.sqlDB == nil {
		return member.Member{}, fmt.Errorf("store is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT event_id, user_id, role, joined_at, updated_at
FROM members WHERE event_id = ? AND user_id = ?`, eventID, userID)

	m, err := scanMember(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return member.Member{}, storage.ErrNotFound
		}
		return member.Member{}, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

// ListMembers returns one page of an event's memberships ordered by user id.
func (s *Store) ListMembers(ctx context.Context, eventID string, pageSize int, pageToken string) (storage.MemberPage, error) {
	if s == nil || s.sqlDB == nil {
		return storage.MemberPage{}, fmt.Errorf("store is not configured")
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT event_id, user_id, role, joined_at, updated_at
FROM members
WHERE event_id = ? AND user_id > ?
ORDER BY user_id
LIMIT ?`, eventID, strings.TrimSpace(pageToken), pageSize+1)
	if err != nil {
		return storage.MemberPage{}, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var page storage.MemberPage
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return storage.MemberPage{}, fmt.Errorf("list members: %w", err)
		}
		page.Members = append(page.Members, m)
	}
	if err := rows.Err(); err != nil {
		return storage.MemberPage{}, fmt.Errorf("list members: %w", err)
	}
	if len(page.Members) > pageSize {
		page.NextPageToken = page.Members[pageSize-1].UserID
		page.Members = page.Members[:pageSize]
	}
	return page, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (member.Member, error) {
	var m member.Member
	var role string
	var joinedAt, updatedAt int64
	if err := row.Scan(&m.EventID, &m.UserID, &role, &joinedAt, &updatedAt); err != nil {
		return member.Member{}, err
	}
	m.Role = member.Role(role)
	m.JoinedAt = fromMillis(joinedAt)
	m.UpdatedAt = fromMillis(updatedAt)
	return m, nil
}

var _ storage.MemberStore = (*Store)(nil)
