package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/itemtrail/itemtrail/internal/model"
)

// RecordTransition appends a status event and updates the item's status
// projection in a single transaction. Both writes commit together or not at
// all, so the audit log and the projection can never diverge. Returns
// ErrItemNotFound if no item exists for the UID.
func RecordTransition(ctx context.Context, db *sql.DB, uid, status string, employeeID int64, note, location string, recordedAt time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Update the projection first: its row count tells us whether the item
	// exists at all.
	result, err := tx.ExecContext(ctx,
		`UPDATE items SET current_status = ? WHERE uid = ?`,
		status, uid,
	)
	if err != nil {
		return fmt.Errorf("updating item status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking item update: %w", err)
	}
	if n == 0 {
		return ErrItemNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO status_events (uid, status, note, location, recorded_at, employee_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uid, status, note, location, recordedAt, employeeID,
	)
	if err != nil {
		return fmt.Errorf("recording status event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transition: %w", err)
	}
	return nil
}

// LatestStatus returns the most recent status event for an item, or nil if
// none exists. Ties on the recorded timestamp resolve to the last inserted
// row.
func LatestStatus(ctx context.Context, db *sql.DB, uid string) (*model.StatusEvent, error) {
	e := &model.StatusEvent{}
	var note sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, uid, status, note, location, recorded_at, employee_id
		 FROM status_events WHERE uid = ?
		 ORDER BY recorded_at DESC, id DESC LIMIT 1`, uid,
	).Scan(&e.ID, &e.UID, &e.Status, &note, &e.Location, &e.RecordedAt, &e.EmployeeID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting latest status: %w", err)
	}
	e.Note = note.String
	return e, nil
}

// ListStatusEvents returns the full audit history for an item, newest first.
func ListStatusEvents(ctx context.Context, db *sql.DB, uid string) ([]model.StatusEvent, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT s.id, s.uid, s.status, s.note, s.location, s.recorded_at, s.employee_id,
		        COALESCE(e.full_name, '') AS employee_name
		 FROM status_events s
		 LEFT JOIN employees e ON e.id = s.employee_id
		 WHERE s.uid = ?
		 ORDER BY s.recorded_at DESC, s.id DESC`, uid,
	)
	if err != nil {
		return nil, fmt.Errorf("listing status events: %w", err)
	}
	defer rows.Close()

	var events []model.StatusEvent
	for rows.Next() {
		var e model.StatusEvent
		var note sql.NullString
		if err := rows.Scan(&e.ID, &e.UID, &e.Status, &note, &e.Location, &e.RecordedAt, &e.EmployeeID, &e.EmployeeName); err != nil {
			return nil, fmt.Errorf("scanning status event: %w", err)
		}
		e.Note = note.String
		events = append(events, e)
	}
	return events, rows.Err()
}
