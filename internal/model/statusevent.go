package model

import "time"

// StatusEvent is one append-only audit entry: a point-in-time assertion that
// an employee set an item to a status. Events are never edited or deleted
// after insertion. EmployeeID is nullable so audit history survives the
// removal of an employee account.
type StatusEvent struct {
	ID         int64     `json:"id"`
	UID        string    `json:"uid"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	Location   string    `json:"location"`
	RecordedAt time.Time `json:"recorded_at"`
	EmployeeID *int64    `json:"employee_id,omitempty"`

	// Joined field (not always populated).
	EmployeeName string `json:"employee_name,omitempty"`
}
