// Package policy maps employee roles to the item statuses they may assign.
// The table is fixed at compile time and read-only at runtime; unknown roles
// resolve to the empty set (deny-by-default).
package policy

import "github.com/itemtrail/itemtrail/internal/model"

var allowed = map[string][]string{
	model.RoleReceiver:  {model.StatusReceived},
	model.RoleInspector: {model.StatusInspected},
	model.RoleInstaller: {model.StatusInstalled},
	model.RoleMaintenance: {
		model.StatusServiced,
		model.StatusServiceNeeded,
		model.StatusReplacementNeeded,
		model.StatusReplaced,
		model.StatusDiscarded,
	},
	// Admin may assign every status in the enumeration.
	model.RoleAdmin: model.Statuses,
}

// AllowedStatuses returns the statuses the given role may assign. The result
// is a copy; callers can modify it freely. An unknown role yields an empty
// set.
func AllowedStatuses(role string) []string {
	statuses := allowed[role]
	out := make([]string, len(statuses))
	copy(out, statuses)
	return out
}

// Allows reports whether the given role may assign the given status.
func Allows(role, status string) bool {
	for _, s := range allowed[role] {
		if s == status {
			return true
		}
	}
	return false
}
