package utils

import "testing"

func TestMatchesPermission(t *testing.T) {
	tests := []struct {
		name     string
		granted  string
		required string
		expected bool
	}{
		{"exact match", "rma:write", "rma:write", true},
		{"different action", "rma:write", "rma:read", false},
		{"different resource", "rma:write", "dtr:write", false},

		{"full wildcard", "*", "site:delete", true},

		{"resource wildcard read", "rma:*", "rma:read", true},
		{"resource wildcard delete", "rma:*", "rma:delete", true},
		{"resource wildcard other resource", "rma:*", "site:read", false},

		{"action wildcard site", "*:read", "site:read", true},
		{"action wildcard analytics", "*:read", "analytics:read", true},
		{"action wildcard other action", "*:read", "report:write", false},

		{"malformed required", "*:read", "read", false},
		{"empty required", "rma:write", "", false},
		{"empty granted", "", "rma:write", false},
		{"both empty", "", "", true},
		{"three parts", "rma:read:own", "rma:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MatchesPermission(tt.granted, tt.required)
			if result != tt.expected {
				t.Errorf("MatchesPermission(%q, %q) = %v, expected %v",
					tt.granted, tt.required, result, tt.expected)
			}
		})
	}
}

func TestRoleAllows(t *testing.T) {
	tests := []struct {
		role     string
		required string
		expected bool
	}{
		{RoleAdmin, "site:delete", true},
		{RoleManager, "rma:delete", true},
		{RoleManager, "analytics:read", true},
		{RoleFSE, "report:write", true},
		{RoleFSE, "dtr:write", true},
		{RoleFSE, "site:write", false},
		{RoleFSE, "rma:delete", false},
		{RoleViewer, "rma:read", true},
		{RoleViewer, "rma:write", false},
		{"ADMIN", "rma:delete", true},
		{"intruder", "rma:read", false},
		{"", "rma:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" "+tt.required, func(t *testing.T) {
			if got := RoleAllows(tt.role, tt.required); got != tt.expected {
				t.Errorf("RoleAllows(%q, %q) = %v, expected %v", tt.role, tt.required, got, tt.expected)
			}
		})
	}
}
