package policy

import (
	"testing"

	"github.com/itemtrail/itemtrail/internal/model"
)

func TestAllowedStatusesTable(t *testing.T) {
	tests := []struct {
		role     string
		expected []string
	}{
		{model.RoleReceiver, []string{model.StatusReceived}},
		{model.RoleInspector, []string{model.StatusInspected}},
		{model.RoleInstaller, []string{model.StatusInstalled}},
		{model.RoleMaintenance, []string{
			model.StatusServiced,
			model.StatusServiceNeeded,
			model.StatusReplacementNeeded,
			model.StatusReplaced,
			model.StatusDiscarded,
		}},
		{model.RoleAdmin, model.Statuses},
	}

	for _, tt := range tests {
		got := AllowedStatuses(tt.role)
		if len(got) != len(tt.expected) {
			t.Errorf("AllowedStatuses(%q) = %v, want %v", tt.role, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("AllowedStatuses(%q)[%d] = %q, want %q", tt.role, i, got[i], tt.expected[i])
			}
		}
	}
}

func TestEveryRoleHasStatuses(t *testing.T) {
	for _, role := range model.Roles {
		if len(AllowedStatuses(role)) == 0 {
			t.Errorf("role %q has no allowed statuses", role)
		}
	}
}

func TestAdminSupersetOfAllRoles(t *testing.T) {
	for _, role := range model.Roles {
		for _, status := range AllowedStatuses(role) {
			if !Allows(model.RoleAdmin, status) {
				t.Errorf("admin missing status %q allowed for role %q", status, role)
			}
		}
	}
}

func TestUnknownRoleDenied(t *testing.T) {
	if got := AllowedStatuses("janitor"); len(got) != 0 {
		t.Errorf("expected empty set for unknown role, got %v", got)
	}
	if Allows("", model.StatusReceived) {
		t.Error("empty role should never be allowed")
	}
	if Allows("janitor", model.StatusDiscarded) {
		t.Error("unknown role should never be allowed")
	}
}

func TestAllowsMatchesTable(t *testing.T) {
	for _, role := range model.Roles {
		set := map[string]bool{}
		for _, s := range AllowedStatuses(role) {
			set[s] = true
		}
		for _, status := range model.Statuses {
			if Allows(role, status) != set[status] {
				t.Errorf("Allows(%q, %q) = %v, inconsistent with AllowedStatuses", role, status, !set[status])
			}
		}
	}
}

func TestAllowedStatusesReturnsCopy(t *testing.T) {
	got := AllowedStatuses(model.RoleReceiver)
	got[0] = "tampered"

	if Allows(model.RoleReceiver, "tampered") {
		t.Error("mutating the returned slice must not affect the policy table")
	}
	if again := AllowedStatuses(model.RoleReceiver); again[0] != model.StatusReceived {
		t.Errorf("policy table changed: got %v", again)
	}
}
