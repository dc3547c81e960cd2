// Package track implements the status-transition engine: it validates a
// requested state change against the role-permission policy, persists the
// audit entry and the status projection as one transactional unit, and serves
// the read-only scan view.
package track

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/itemtrail/itemtrail/internal/model"
	"github.com/itemtrail/itemtrail/internal/policy"
	"github.com/itemtrail/itemtrail/internal/store"
)

// DefaultLocation is the location tag stamped on audit entries recorded
// through the scanning endpoints.
const DefaultLocation = "MobileApp"

// Engine orchestrates status transitions and lookups. It holds no mutable
// state of its own; all shared state lives behind the database's
// transactional boundary.
type Engine struct {
	DB       *sql.DB
	Location string
}

// New returns an engine stamping audit entries with DefaultLocation.
func New(db *sql.DB) *Engine {
	return &Engine{DB: db, Location: DefaultLocation}
}

// TransitionResult reports an accepted status transition.
type TransitionResult struct {
	UID    string
	Status string
	Role   string
}

// RequestTransition validates and executes a status change. It resolves the
// employee's role, checks the permission policy, and records the transition
// with the current UTC timestamp at second precision. The engine gates who
// may set a status, never the lifecycle order.
func (e *Engine) RequestTransition(ctx context.Context, uid, status string, employeeID int64, note string) (*TransitionResult, error) {
	emp, err := store.GetEmployee(ctx, e.DB, employeeID)
	if err != nil {
		return nil, fmt.Errorf("looking up employee: %w", err)
	}
	if emp == nil || emp.DeletedAt != nil {
		return nil, ErrUnknownEmployee
	}

	if !policy.Allows(emp.Role, status) {
		return nil, &ForbiddenError{
			Role:    emp.Role,
			Status:  status,
			Allowed: policy.AllowedStatuses(emp.Role),
		}
	}

	recordedAt := time.Now().UTC().Truncate(time.Second)
	if err := store.RecordTransition(ctx, e.DB, uid, status, employeeID, note, e.Location, recordedAt); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("recording transition: %w", err)
	}

	return &TransitionResult{UID: uid, Status: status, Role: emp.Role}, nil
}

// ScanResult is the read-only composite view of one item: its registration
// data, the derived warranty expiry, and the authoritative current status.
type ScanResult struct {
	UID           string     `json:"uid"`
	Component     string     `json:"component"`
	Vendor        string     `json:"vendor"`
	LotNo         string     `json:"lot_no"`
	SerialNo      string     `json:"serial_no"`
	MfgDate       *time.Time `json:"mfg_date"`
	WarrantyYears *int       `json:"warranty_years"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	CurrentStatus string     `json:"current_status"`
	LastUpdated   *time.Time `json:"last_updated"`
}

// Scan returns the composite view for a UID. The latest audit entry, when
// one exists, overrides the item's status projection; otherwise the
// projection's default stands. Scanning has no side effects.
func (e *Engine) Scan(ctx context.Context, uid string) (*ScanResult, error) {
	item, err := store.GetItem(ctx, e.DB, uid)
	if err != nil {
		return nil, fmt.Errorf("looking up item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	result := &ScanResult{
		UID:           item.UID,
		Component:     item.ComponentType,
		Vendor:        item.VendorID,
		LotNo:         item.LotNo,
		SerialNo:      item.SerialNo,
		MfgDate:       item.MfgDate,
		WarrantyYears: item.WarrantyYears,
		ExpiryDate:    model.ExpiryDate(item.MfgDate, item.WarrantyYears),
		CurrentStatus: item.CurrentStatus,
	}

	latest, err := store.LatestStatus(ctx, e.DB, uid)
	if err != nil {
		return nil, fmt.Errorf("looking up latest status: %w", err)
	}
	if latest != nil {
		result.CurrentStatus = latest.Status
		recordedAt := latest.RecordedAt
		result.LastUpdated = &recordedAt
	}

	return result, nil
}

// Permissions describes what an employee may do.
type Permissions struct {
	Role    string   `json:"role"`
	Allowed []string `json:"allowed"`
}

// Permissions resolves an employee's role and the statuses it may assign.
func (e *Engine) Permissions(ctx context.Context, employeeID int64) (*Permissions, error) {
	emp, err := store.GetEmployee(ctx, e.DB, employeeID)
	if err != nil {
		return nil, fmt.Errorf("looking up employee: %w", err)
	}
	if emp == nil || emp.DeletedAt != nil {
		return nil, ErrUnknownEmployee
	}

	return &Permissions{Role: emp.Role, Allowed: policy.AllowedStatuses(emp.Role)}, nil
}

// History returns the full audit trail for a UID, newest first.
func (e *Engine) History(ctx context.Context, uid string) ([]model.StatusEvent, error) {
	item, err := store.GetItem(ctx, e.DB, uid)
	if err != nil {
		return nil, fmt.Errorf("looking up item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	events, err := store.ListStatusEvents(ctx, e.DB, uid)
	if err != nil {
		return nil, fmt.Errorf("listing status events: %w", err)
	}
	return events, nil
}
