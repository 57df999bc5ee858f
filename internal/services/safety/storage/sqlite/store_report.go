package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/festsafe/festsafe/internal/services/safety/domain/member"
	"github.com/festsafe/festsafe/internal/services/safety/domain/report"
	"github.com/festsafe/festsafe/internal/services/safety/storage"
)

// CreateReport writes the report and its CREATED action atomically, so the
// audit trail starts at row one.
func (s *Store) CreateReport(ctx context.Context, r report.Report, action report.Action) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("store is not configured")
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO reports (
    event_id, id, created_by_uid, status, urgency, immediate_danger, category,
    description, location_mode, location_label, location_lat, location_lng,
    location_accuracy_m, contact_need_back, contact_method, contact_value,
    claimed_by_uid, claimed_at, resolved_at, resolution_code,
    resolution_summary, closed_by_uid, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, NULL, NULL, NULL, NULL, NULL, ?, ?)`,
			r.EventID,
			r.ID,
			r.CreatedByUID,
			string(r.Status),
			string(r.Urgency),
			r.ImmediateDanger,
			string(r.Category),
			r.Description,
			string(r.LocationMode),
			nullString(r.LocationLabel),
			nullFloat(r.LocationLat),
			nullFloat(r.LocationLng),
			nullFloat(r.LocationAccuracyM),
			r.ContactNeedBack,
			string(r.ContactMethod),
			nullString(r.ContactValue),
			toMillis(r.CreatedAt),
			toMillis(r.UpdatedAt),
		); err != nil {
			return fmt.Errorf("insert report: %w", err)
		}
		return insertActionTx(ctx, tx, action)
	})
}

// GetReport returns one report by (event, id).
func (s *Store) GetReport(ctx context.Context, eventID, reportID string) (report.Report, error) {
	if s == nil || s.sqlDB == nil {
		return report.Report{}, fmt.Errorf("store is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, reportSelect+` WHERE event_id = ? AND id = ?`, eventID, reportID)
	r, err := scanReport(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return report.Report{}, storage.ErrNotFound
		}
		return report.Report{}, fmt.Errorf("get report: %w", err)
	}
	return r, nil
}

// ListReports returns one page of an event's reports ordered by id,
// optionally filtered by status.
func (s *Store) ListReports(ctx context.Context, eventID string, status report.Status, pageSize int, pageToken string) (storage.ReportPage, error) {
	if s == nil || s.sqlDB == nil {
		return storage.ReportPage{}, fmt.Errorf("store is not configured")
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	rows, err := s.sqlDB.QueryContext(ctx, reportSelect+`
WHERE event_id = ? AND id > ? AND (? = '' OR status = ?)
ORDER BY id
LIMIT ?`, eventID, strings.TrimSpace(pageToken), string(status), string(status), pageSize+1)
	if err != nil {
		return storage.ReportPage{}, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var page storage.ReportPage
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return storage.ReportPage{}, fmt.Errorf("list reports: %w", err)
		}
		page.Reports = append(page.Reports, r)
	}
	if err := rows.Err(); err != nil {
		return storage.ReportPage{}, fmt.Errorf("list reports: %w", err)
	}
	if len(page.Reports) > pageSize {
		page.NextPageToken = page.Reports[pageSize-1].ID
		page.Reports = page.Reports[:pageSize]
	}
	return page, nil
}

// ClaimReport moves OPEN to CLAIMED with exactly one winner.
//
// The conditional update is the race arbiter: whoever flips the row first
// wins, everyone else sees zero rows affected and gets classified against
// the state that beat them.
func (s *Store) ClaimReport(ctx context.Context, eventID, reportID string, action report.Action) (report.Report, error) {
	if s == nil || s.sqlDB == nil {
		return report.Report{}, fmt.Errorf("store is not configured")
	}

	var claimed report.Report
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE reports
SET status = ?, claimed_by_uid = ?, claimed_at = ?, updated_at = ?
WHERE event_id = ? AND id = ? AND status = ?`,
			string(report.StatusClaimed),
			action.ByUID,
			toMillis(action.At),
			toMillis(action.At),
			eventID,
			reportID,
			string(report.StatusOpen),
		)
		if err != nil {
			return fmt.Errorf("claim report: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("claim report: %w", err)
		}
		if affected == 0 {
			return classifyClaimFailureTx(ctx, tx, eventID, reportID)
		}

		if err := insertActionTx(ctx, tx, action); err != nil {
			return err
		}

		claimed, err = getReportTx(ctx, tx, eventID, reportID)
		return err
	})
	if err != nil {
		return report.Report{}, err
	}
	return claimed, nil
}

// ResolveReport moves CLAIMED to RESOLVED, claimant only.
func (s *Store) ResolveReport(ctx context.Context, eventID, reportID, resolutionCode, resolutionSummary string, action report.Action) (report.Report, error) {
	if s == nil || s.sqlDB == nil {
		return report.Report{}, fmt.Errorf("store is not configured")
	}

	var resolved report.Report
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE reports
SET status = ?, resolved_at = ?, resolution_code = ?, resolution_summary = ?,
    closed_by_uid = ?, updated_at = ?
WHERE event_id = ? AND id = ? AND status IN (?, ?) AND claimed_by_uid = ?`,
			string(report.StatusResolved),
			toMillis(action.At),
			resolutionCode,
			resolutionSummary,
			action.ByUID,
			toMillis(action.At),
			eventID,
			reportID,
			string(report.StatusClaimed),
			string(report.StatusInProgress),
			action.ByUID,
		)
		if err != nil {
			return fmt.Errorf("resolve report: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("resolve report: %w", err)
		}
		if affected == 0 {
			return classifyResolveFailureTx(ctx, tx, eventID, reportID, action.ByUID)
		}

		if err := insertActionTx(ctx, tx, action); err != nil {
			return err
		}

		resolved, err = getReportTx(ctx, tx, eventID, reportID)
		return err
	})
	if err != nil {
		return report.Report{}, err
	}
	return resolved, nil
}

// AppendReportMessage adds one message to an existing report and bumps the
// report's updated_at. The bump doubles as the existence check: zero rows
// affected means there is no report to message.
func (s *Store) AppendReportMessage(ctx context.Context, msg report.Message) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("store is not configured")
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE reports SET updated_at = ? WHERE event_id = ? AND id = ?`,
			toMillis(msg.At), msg.EventID, msg.ReportID)
		if err != nil {
			return fmt.Errorf("touch report: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("touch report: %w", err)
		}
		if affected == 0 {
			return storage.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO report_messages (id, event_id, report_id, at, sender_role, sender_uid, text)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			msg.ID,
			msg.EventID,
			msg.ReportID,
			toMillis(msg.At),
			string(msg.SenderRole),
			msg.SenderUID,
			msg.Text,
		); err != nil {
			return fmt.Errorf("insert report message: %w", err)
		}
		return nil
	})
}

// ListReportActions returns one chronological page of a report's audit trail.
func (s *Store) ListReportActions(ctx context.Context, eventID, reportID string, pageSize int, pageToken string) (storage.ActionPage, error) {
	if s == nil || s.sqlDB == nil {
		return storage.ActionPage{}, fmt.Errorf("store is not configured")
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	afterAt, afterID, err := s.resolveAppendToken(ctx, "report_actions", pageToken)
	if err != nil {
		return storage.ActionPage{}, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, event_id, report_id, at, by_uid, type, details
FROM report_actions
WHERE event_id = ? AND report_id = ? AND (at > ? OR (at = ? AND id > ?))
ORDER BY at, id
LIMIT ?`, eventID, reportID, afterAt, afterAt, afterID, pageSize+1)
	if err != nil {
		return storage.ActionPage{}, fmt.Errorf("list report actions: %w", err)
	}
	defer rows.Close()

	var page storage.ActionPage
	for rows.Next() {
		var a report.Action
		var at int64
		var actionType string
		if err := rows.Scan(&a.ID, &a.EventID, &a.ReportID, &at, &a.ByUID, &actionType, &a.Details); err != nil {
			return storage.ActionPage{}, fmt.Errorf("list report actions: %w", err)
		}
		a.At = fromMillis(at)
		a.Type = report.ActionType(actionType)
		page.Actions = append(page.Actions, a)
	}
	if err := rows.Err(); err != nil {
		return storage.ActionPage{}, fmt.Errorf("list report actions: %w", err)
	}
	if len(page.Actions) > pageSize {
		page.NextPageToken = page.Actions[pageSize-1].ID
		page.Actions = page.Actions[:pageSize]
	}
	return page, nil
}

// ListReportMessages returns one chronological page of a report's messages.
func (s *Store) ListReportMessages(ctx context.Context, eventID, reportID string, pageSize int, pageToken string) (storage.MessagePage, error) {
	if s == nil || s.sqlDB == nil {
		return storage.MessagePage{}, fmt.Errorf("store is not configured")
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	afterAt, afterID, err := s.resolveAppendToken(ctx, "report_messages", pageToken)
	if err != nil {
		return storage.MessagePage{}, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, event_id, report_id, at, sender_role, sender_uid, text
FROM report_messages
WHERE event_id = ? AND report_id = ? AND (at > ? OR (at = ? AND id > ?))
ORDER BY at, id
LIMIT ?`, eventID, reportID, afterAt, afterAt, afterID, pageSize+1)
	if err != nil {
		return storage.MessagePage{}, fmt.Errorf("list report messages: %w", err)
	}
	defer rows.Close()

	var page storage.MessagePage
	for rows.Next() {
		var m report.Message
		var at int64
		var senderRole string
		if err := rows.Scan(&m.ID, &m.EventID, &m.ReportID, &at, &senderRole, &m.SenderUID, &m.Text); err != nil {
			return storage.MessagePage{}, fmt.Errorf("list report messages: %w", err)
		}
		m.At = fromMillis(at)
		m.SenderRole = member.Role(senderRole)
		page.Messages = append(page.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return storage.MessagePage{}, fmt.Errorf("list report messages: %w", err)
	}
	if len(page.Messages) > pageSize {
		page.NextPageToken = page.Messages[pageSize-1].ID
		page.Messages = page.Messages[:pageSize]
	}
	return page, nil
}

// resolveAppendToken turns an append-log page token (a row id) back into the
// (at, id) cursor it stands for. An empty token starts from the beginning.
func (s *Store) resolveAppendToken(ctx context.Context, table, pageToken string) (int64, string, error) {
	token := strings.TrimSpace(pageToken)
	if token == "" {
		return -1, "", nil
	}
	var at int64
	row := s.sqlDB.QueryRowContext(ctx, `SELECT at FROM `+table+` WHERE id = ?`, token)
	if err := row.Scan(&at); err != nil {
		if err == sql.ErrNoRows {
			// Unknown token restarts from the beginning rather than failing
			// a read path.
			return -1, "", nil
		}
		return 0, "", fmt.Errorf("resolve page token: %w", err)
	}
	return at, token, nil
}

// classifyClaimFailureTx explains why a claim update matched zero rows.
func classifyClaimFailureTx(ctx context.Context, tx *sql.Tx, eventID, reportID string) error {
	r, err := getReportTx(ctx, tx, eventID, reportID)
	if err != nil {
		return err
	}
	if report.IsTerminal(r.Status) {
		return storage.ErrReportClosed
	}
	return storage.ErrReportNotOpen
}

// classifyResolveFailureTx explains why a resolve update matched zero rows.
func classifyResolveFailureTx(ctx context.Context, tx *sql.Tx, eventID, reportID, callerUID string) error {
	r, err := getReportTx(ctx, tx, eventID, reportID)
	if err != nil {
		return err
	}
	if report.IsTerminal(r.Status) {
		return storage.ErrReportClosed
	}
	if !report.CanResolve(r.Status) {
		return storage.ErrReportNotOpen
	}
	if r.ClaimedByUID != callerUID {
		return storage.ErrReportNotClaimant
	}
	return storage.ErrReportNotOpen
}

// insertActionTx appends one audit action within a transaction.
func insertActionTx(ctx context.Context, tx *sql.Tx, action report.Action) error {
	if _, err := tx.ExecContext(ctx, `
INSERT INTO report_actions (id, event_id, report_id, at, by_uid, type, details)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		action.ID,
		action.EventID,
		action.ReportID,
		toMillis(action.At),
		action.ByUID,
		string(action.Type),
		action.Details,
	); err != nil {
		return fmt.Errorf("insert report action: %w", err)
	}
	return nil
}

const reportSelect = `
SELECT event_id, id, created_by_uid, status, urgency, immediate_danger,
    category, description, location_mode, location_label, location_lat,
    location_lng, location_accuracy_m, contact_need_back, contact_method,
    contact_value, claimed_by_uid, claimed_at, resolved_at, resolution_code,
    resolution_summary, closed_by_uid, created_at, updated_at
FROM reports`

// getReportTx reads one report row within a transaction.
func getReportTx(ctx context.Context, tx *sql.Tx, eventID, reportID string) (report.Report, error) {
	row := tx.QueryRowContext(ctx, reportSelect+` WHERE event_id = ? AND id = ?`, eventID, reportID)
	r, err := scanReport(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return report.Report{}, storage.ErrNotFound
		}
		return report.Report{}, fmt.Errorf("get report: %w", err)
	}
	return r, nil
}

func scanReport(row rowScanner) (report.Report, error) {
	var r report.Report
	var status, urgency, category, locationMode, contactMethod string
	var locationLabel, contactValue, claimedBy, resolutionCode, resolutionSummary, closedBy sql.NullString
	var lat, lng, accuracy sql.NullFloat64
	var claimedAt, resolvedAt sql.NullInt64
	var createdAt, updatedAt int64

	if err := row.Scan(
		&r.EventID, &r.ID, &r.CreatedByUID, &status, &urgency, &r.ImmediateDanger,
		&category, &r.Description, &locationMode, &locationLabel, &lat, &lng,
		&accuracy, &r.ContactNeedBack, &contactMethod, &contactValue,
		&claimedBy, &claimedAt, &resolvedAt, &resolutionCode,
		&resolutionSummary, &closedBy, &createdAt, &updatedAt,
	); err != nil {
		return report.Report{}, err
	}

	r.Status = report.Status(status)
	r.Urgency = report.Urgency(urgency)
	r.Category = report.Category(category)
	r.LocationMode = report.LocationMode(locationMode)
	r.ContactMethod = report.ContactMethod(contactMethod)
	r.LocationLabel = locationLabel.String
	r.ContactValue = contactValue.String
	r.ClaimedByUID = claimedBy.String
	r.ResolutionCode = resolutionCode.String
	r.ResolutionSummary = resolutionSummary.String
	r.ClosedByUID = closedBy.String
	r.LocationLat = fromNullFloat(lat)
	r.LocationLng = fromNullFloat(lng)
	r.LocationAccuracyM = fromNullFloat(accuracy)
	r.ClaimedAt = fromNullMillis(claimedAt)
	r.ResolvedAt = fromNullMillis(resolvedAt)
	r.CreatedAt = fromMillis(createdAt)
	r.UpdatedAt = fromMillis(updatedAt)
	return r, nil
}

var _ storage.ReportStore = (*Store)(nil)
