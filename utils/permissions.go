package utils

import "strings"

// Roles carried in the access token.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleFSE     = "fse"
	RoleViewer  = "viewer"
)

// rolePermissions grants "resource:action" patterns per role. Resources are
// rma, dtr, site, projector, report, analytics and file; actions are read,
// write and delete.
var rolePermissions = map[string][]string{
	RoleAdmin:   {"*"},
	RoleManager: {"*:read", "*:write", "*:delete"},
	RoleFSE:     {"*:read", "rma:write", "dtr:write", "report:write", "file:write", "projector:write"},
	RoleViewer:  {"*:read"},
}

// RolePermissions returns the permission patterns granted to role.
func RolePermissions(role string) []string {
	return rolePermissions[strings.ToLower(role)]
}

// RoleAllows reports whether role holds a pattern that matches required.
func RoleAllows(role, required string) bool {
	for _, p := range RolePermissions(role) {
		if MatchesPermission(p, required) {
			return true
		}
	}
	return false
}

// MatchesPermission checks if a granted permission pattern matches the
// required permission. Both sides use "resource:action".
//
//   - "*" matches everything
//   - "rma:*" matches every action on RMAs
//   - "*:read" matches read on every resource
func MatchesPermission(granted, required string) bool {
	if granted == required {
		return true
	}
	if granted == "*" {
		return true
	}

	g := strings.Split(granted, ":")
	r := strings.Split(required, ":")
	if len(g) != 2 || len(r) != 2 {
		return false
	}

	resourceMatch := g[0] == "*" || g[0] == r[0]
	actionMatch := g[1] == "*" || g[1] == r[1]
	return resourceMatch && actionMatch
}
