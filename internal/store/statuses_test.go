package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/itemtrail/itemtrail/internal/db"
	"github.com/itemtrail/itemtrail/internal/model"
)

func seedItemAndEmployee(t *testing.T, database *sql.DB) *model.Employee {
	t.Helper()
	ctx := context.Background()
	if _, err := CreateItem(ctx, database, newItem("UID-0001")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	emp, err := CreateEmployee(ctx, database, "alice", "Alice Inspector", "hash", model.RoleInspector)
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	return emp
}

func TestRecordTransitionUpdatesBothSides(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	emp := seedItemAndEmployee(t, database)

	now := time.Now().UTC().Truncate(time.Second)
	err := RecordTransition(ctx, database, "UID-0001", model.StatusInspected, emp.ID, "looks fine", "MobileApp", now)
	if err != nil {
		t.Fatalf("RecordTransition: %v", err)
	}

	item, _ := GetItem(ctx, database, "UID-0001")
	if item.CurrentStatus != model.StatusInspected {
		t.Errorf("expected projection 'Inspected', got %q", item.CurrentStatus)
	}

	latest, err := LatestStatus(ctx, database, "UID-0001")
	if err != nil {
		t.Fatalf("LatestStatus: %v", err)
	}
	if latest == nil {
		t.Fatal("expected a status event")
	}
	if latest.Status != model.StatusInspected {
		t.Errorf("expected event status 'Inspected', got %q", latest.Status)
	}
	if latest.Note != "looks fine" {
		t.Errorf("expected note, got %q", latest.Note)
	}
	if latest.Location != "MobileApp" {
		t.Errorf("expected location 'MobileApp', got %q", latest.Location)
	}
	if !latest.RecordedAt.Equal(now) {
		t.Errorf("expected recorded_at %v, got %v", now, latest.RecordedAt)
	}
	if latest.EmployeeID == nil || *latest.EmployeeID != emp.ID {
		t.Errorf("expected employee_id %d, got %v", emp.ID, latest.EmployeeID)
	}
}

func TestRecordTransitionMissingItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	emp := seedItemAndEmployee(t, database)

	err := RecordTransition(ctx, database, "UID-9999", model.StatusInspected, emp.ID, "", "MobileApp", time.Now().UTC())
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	// No stray audit row may exist.
	latest, _ := LatestStatus(ctx, database, "UID-9999")
	if latest != nil {
		t.Errorf("expected no status event for missing item, got %v", latest)
	}
}

func TestRecordTransitionAllOrNothing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	emp := seedItemAndEmployee(t, database)

	// A status outside the enumeration violates the CHECK constraint on
	// status_events after the projection update has already run inside the
	// transaction; the whole transition must roll back.
	err := RecordTransition(ctx, database, "UID-0001", "Vaporized", emp.ID, "", "MobileApp", time.Now().UTC())
	if err == nil {
		t.Fatal("expected error for status outside the enumeration")
	}

	item, _ := GetItem(ctx, database, "UID-0001")
	if item.CurrentStatus != model.StatusManufactured {
		t.Errorf("projection changed despite rollback: %q", item.CurrentStatus)
	}

	latest, _ := LatestStatus(ctx, database, "UID-0001")
	if latest != nil {
		t.Errorf("audit row present despite rollback: %v", latest)
	}
}

func TestLatestStatusOrdering(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	emp := seedItemAndEmployee(t, database)

	base := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	RecordTransition(ctx, database, "UID-0001", model.StatusReceived, emp.ID, "", "MobileApp", base)
	RecordTransition(ctx, database, "UID-0001", model.StatusInspected, emp.ID, "", "MobileApp", base.Add(time.Minute))

	latest, _ := LatestStatus(ctx, database, "UID-0001")
	if latest.Status != model.StatusInspected {
		t.Errorf("expected latest 'Inspected', got %q", latest.Status)
	}
}

func TestLatestStatusTieBrokenByInsertionOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	emp := seedItemAndEmployee(t, database)

	// Same second-precision timestamp: last insert wins.
	ts := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	RecordTransition(ctx, database, "UID-0001", model.StatusReceived, emp.ID, "", "MobileApp", ts)
	RecordTransition(ctx, database, "UID-0001", model.StatusInspected, emp.ID, "", "MobileApp", ts)

	latest, _ := LatestStatus(ctx, database, "UID-0001")
	if latest.Status != model.StatusInspected {
		t.Errorf("expected tie to resolve to last insert, got %q", latest.Status)
	}
}

func TestListStatusEventsHistory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	emp := seedItemAndEmployee(t, database)

	base := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	RecordTransition(ctx, database, "UID-0001", model.StatusReceived, emp.ID, "at dock", "MobileApp", base)
	RecordTransition(ctx, database, "UID-0001", model.StatusInspected, emp.ID, "", "MobileApp", base.Add(time.Hour))

	events, err := ListStatusEvents(ctx, database, "UID-0001")
	if err != nil {
		t.Fatalf("ListStatusEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Status != model.StatusInspected || events[1].Status != model.StatusReceived {
		t.Errorf("expected newest-first order, got %q then %q", events[0].Status, events[1].Status)
	}
	if events[0].EmployeeName != "Alice Inspector" {
		t.Errorf("expected joined employee name, got %q", events[0].EmployeeName)
	}
}

func TestHistorySurvivesEmployeeSoftDelete(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	emp := seedItemAndEmployee(t, database)

	RecordTransition(ctx, database, "UID-0001", model.StatusInspected, emp.ID, "", "MobileApp", time.Now().UTC().Truncate(time.Second))
	DeleteEmployee(ctx, database, emp.ID)

	events, _ := ListStatusEvents(ctx, database, "UID-0001")
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].EmployeeID == nil || *events[0].EmployeeID != emp.ID {
		t.Errorf("expected employee reference preserved after soft delete, got %v", events[0].EmployeeID)
	}
}
