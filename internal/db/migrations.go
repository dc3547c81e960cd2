package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS employees (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    full_name     TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL CHECK (role IN ('receiver', 'inspector', 'installer', 'maintenance', 'admin')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_employees_username_active
    ON employees(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS items (
    uid            TEXT PRIMARY KEY,
    component_type TEXT NOT NULL,
    vendor_id      TEXT,
    lot_no         TEXT,
    serial_no      TEXT,
    mfg_date       DATE,
    warranty_years INTEGER,
    current_status TEXT NOT NULL DEFAULT 'Manufactured',
    photo          BLOB,
    photo_mime     TEXT,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS status_events (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    uid         TEXT NOT NULL REFERENCES items(uid),
    status      TEXT NOT NULL CHECK (status IN (
        'Manufactured', 'Received', 'Inspected', 'Installed', 'Serviced',
        'Service Needed', 'Replacement Needed', 'Replaced', 'Discarded')),
    note        TEXT,
    location    TEXT NOT NULL,
    recorded_at DATETIME NOT NULL,
    employee_id INTEGER REFERENCES employees(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_status_events_uid_recorded
    ON status_events(uid, recorded_at);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{}

// Migrate creates the schema and runs all pending migrations.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
