package domain

import "strings"

// PermissionWildcard grants every permission to a role holding it.
const PermissionWildcard = "*"

// RolePermissions is the static role to permission-list mapping. It is fixed
// at compile time; role membership itself is owned by the gateway and arrives
// in the session payload.
//
// Permission strings are dot-separated. An entry ending in ".*" covers the
// resource and every action beneath it; a bare "*" covers everything.
var RolePermissions = map[string][]string{
	"Administrator": {"*"},
	"Operations": {
		"transactions.*",
		"disbursements.*",
		"merchants.view",
		"users.view",
		"audit.view",
	},
	"Finance": {
		"transactions.view",
		"disbursements.view",
		"disbursements.approve",
		"merchants.view",
		"reports.*",
	},
	"Compliance": {
		"merchants.*",
		"audit.*",
		"transactions.view",
	},
	"Support": {
		"transactions.view",
		"merchants.view",
		"users.view",
	},
	"Viewer": {
		"transactions.view",
		"disbursements.view",
		"merchants.view",
	},
}

// HasPermission reports whether the named role grants the permission. Unknown
// roles grant nothing.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}

	for _, entry := range perms {
		if entry == PermissionWildcard {
			return true
		}
		if matchPermission(entry, permission) {
			return true
		}
	}

	return false
}

// HasAnyPermission reports whether at least one of the roles grants the
// permission. An empty role list grants nothing.
func HasAnyPermission(roles []string, permission string) bool {
	for _, role := range roles {
		if HasPermission(role, permission) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every role grants the permission. An
// empty role list returns false rather than the vacuous truth: no roles must
// never read as a blanket grant.
func HasAllPermissions(roles []string, permission string) bool {
	if len(roles) == 0 {
		return false
	}
	for _, role := range roles {
		if !HasPermission(role, permission) {
			return false
		}
	}
	return true
}

// RolesPermissions returns the deduplicated union of the permission lists of
// the given roles, in first-seen order. Empty or unknown roles contribute
// nothing.
func RolesPermissions(roles []string) []string {
	seen := make(map[string]struct{})
	var result []string

	for _, role := range roles {
		for _, perm := range RolePermissions[role] {
			if _, ok := seen[perm]; ok {
				continue
			}
			seen[perm] = struct{}{}
			result = append(result, perm)
		}
	}

	return result
}

// matchPermission matches a single permission-list entry against a requested
// permission. Matching is done segment by segment so that an adjacent prefix
// such as "userss.*" can never match "users.view". A trailing "*" segment
// consumes the remainder, and also matches the bare resource itself
// ("resource.*" grants "resource").
func matchPermission(entry, permission string) bool {
	if entry == permission {
		return true
	}

	entrySegs := strings.Split(entry, ".")
	permSegs := strings.Split(permission, ".")

	for i, seg := range entrySegs {
		if seg == PermissionWildcard {
			return true
		}
		if i >= len(permSegs) || permSegs[i] != seg {
			return false
		}
	}

	return len(permSegs) == len(entrySegs)
}
