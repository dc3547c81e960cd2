package model

import (
	"fmt"
	"time"
)

// Employee represents a provisioned worker account. The role decides which
// item statuses the employee may assign.
type Employee struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	FullName     string     `json:"full_name"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Roles.
const (
	RoleReceiver    = "receiver"
	RoleInspector   = "inspector"
	RoleInstaller   = "installer"
	RoleMaintenance = "maintenance"
	RoleAdmin       = "admin"
)

// Roles is the closed enumeration of employee roles.
var Roles = []string{
	RoleReceiver,
	RoleInspector,
	RoleInstaller,
	RoleMaintenance,
	RoleAdmin,
}

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// ValidatePassword checks password requirements for new passwords.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
