package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/itemtrail/itemtrail/internal/model"
)

// CreateEmployee creates a new employee account.
func CreateEmployee(ctx context.Context, db *sql.DB, username, fullName, passwordHash, role string) (*model.Employee, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO employees (username, full_name, password_hash, role) VALUES (?, ?, ?, ?)`,
		username, fullName, passwordHash, role,
	)
	if err != nil {
		return nil, fmt.Errorf("creating employee: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting employee id: %w", err)
	}

	return GetEmployee(ctx, db, id)
}

// GetEmployee returns an employee by ID, including soft-deleted ones so that
// audit history stays resolvable.
func GetEmployee(ctx context.Context, db *sql.DB, id int64) (*model.Employee, error) {
	e := &model.Employee{}
	err := db.QueryRowContext(ctx,
		`SELECT id, username, full_name, password_hash, role, created_at, deleted_at
		 FROM employees WHERE id = ?`, id,
	).Scan(&e.ID, &e.Username, &e.FullName, &e.PasswordHash, &e.Role, &e.CreatedAt, &e.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting employee: %w", err)
	}
	return e, nil
}

// GetEmployeeByUsername returns an employee by username (including
// soft-deleted for auth checks).
func GetEmployeeByUsername(ctx context.Context, db *sql.DB, username string) (*model.Employee, error) {
	e := &model.Employee{}
	err := db.QueryRowContext(ctx,
		`SELECT id, username, full_name, password_hash, role, created_at, deleted_at
		 FROM employees WHERE username = ?`, username,
	).Scan(&e.ID, &e.Username, &e.FullName, &e.PasswordHash, &e.Role, &e.CreatedAt, &e.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting employee by username: %w", err)
	}
	return e, nil
}

// ListEmployees returns all non-deleted employees.
func ListEmployees(ctx context.Context, db *sql.DB) ([]model.Employee, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, username, full_name, password_hash, role, created_at, deleted_at
		 FROM employees WHERE deleted_at IS NULL ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Username, &e.FullName, &e.PasswordHash, &e.Role, &e.CreatedAt, &e.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// UpdateEmployeeRole updates an employee's role.
func UpdateEmployeeRole(ctx context.Context, db *sql.DB, id int64, role string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE employees SET role = ? WHERE id = ? AND deleted_at IS NULL`,
		role, id,
	)
	if err != nil {
		return fmt.Errorf("updating employee role: %w", err)
	}
	return nil
}

// UpdateEmployeePassword updates an employee's password hash.
func UpdateEmployeePassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE employees SET password_hash = ? WHERE id = ? AND deleted_at IS NULL`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating employee password: %w", err)
	}
	return nil
}

// DeleteEmployee soft-deletes an employee. Status events recorded by the
// employee keep their reference.
func DeleteEmployee(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE employees SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}
	return nil
}
