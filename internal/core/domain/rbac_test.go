package domain

import (
	"sort"
	"testing"
)

func withRolePermissions(t *testing.T, roles map[string][]string) {
	t.Helper()

	original := RolePermissions
	RolePermissions = roles
	t.Cleanup(func() {
		RolePermissions = original
	})
}

func TestHasPermissionExactMatch(t *testing.T) {
	withRolePermissions(t, map[string][]string{
		"Teller": {"transactions.view", "merchants.view"},
	})

	if !HasPermission("Teller", "transactions.view") {
		t.Fatal("expected exact permission to match")
	}
	if HasPermission("Teller", "transactions.create") {
		t.Fatal("did not expect undeclared permission to match")
	}
}

func TestHasPermissionUnknownRole(t *testing.T) {
	withRolePermissions(t, map[string][]string{})

	if HasPermission("Ghost", "transactions.view") {
		t.Fatal("unknown role must grant nothing")
	}
}

func TestHasPermissionWildcardSuffix(t *testing.T) {
	withRolePermissions(t, map[string][]string{
		"Ops": {"transactions.*"},
	})

	cases := []struct {
		permission string
		want       bool
	}{
		{"transactions.create", true},
		{"transactions.view", true},
		{"transactions", true},
		{"transactions.refund.partial", true},
		{"merchants.create", false},
		{"transaction.view", false},
	}

	for _, tc := range cases {
		if got := HasPermission("Ops", tc.permission); got != tc.want {
			t.Errorf("HasPermission(Ops, %q) = %v, want %v", tc.permission, got, tc.want)
		}
	}
}

func TestHasPermissionAdjacentPrefixDoesNotMatch(t *testing.T) {
	withRolePermissions(t, map[string][]string{
		"Tricky": {"userss.*"},
	})

	if HasPermission("Tricky", "users.view") {
		t.Fatal("userss.* must not match users.view")
	}
	if !HasPermission("Tricky", "userss.view") {
		t.Fatal("userss.* must match userss.view")
	}
}

func TestHasPermissionSuperuser(t *testing.T) {
	withRolePermissions(t, map[string][]string{
		"Admin": {"*"},
	})

	for _, permission := range []string{"transactions.view", "never.declared.anywhere", "x"} {
		if !HasPermission("Admin", permission) {
			t.Errorf("superuser role must grant %q", permission)
		}
	}
}

func TestHasAnyPermission(t *testing.T) {
	withRolePermissions(t, map[string][]string{
		"Viewer":  {"transactions.view"},
		"Nothing": {},
	})

	if !HasAnyPermission([]string{"Nothing", "Viewer"}, "transactions.view") {
		t.Fatal("expected any-of to succeed when one role grants")
	}
	if HasAnyPermission([]string{"Nothing"}, "transactions.view") {
		t.Fatal("expected any-of to fail when no role grants")
	}
	if HasAnyPermission(nil, "transactions.view") {
		t.Fatal("empty role list must grant nothing")
	}
}

func TestHasAllPermissionsEmptyRolesDenies(t *testing.T) {
	withRolePermissions(t, map[string][]string{})

	// Deliberate deviation from vacuous truth: zero roles is zero trust.
	if HasAllPermissions(nil, "transactions.view") {
		t.Fatal("empty role list must not vacuously satisfy all-of")
	}
	if HasAllPermissions([]string{}, "anything") {
		t.Fatal("empty role list must not vacuously satisfy all-of")
	}
}

func TestHasAllPermissions(t *testing.T) {
	withRolePermissions(t, map[string][]string{
		"A": {"transactions.*"},
		"B": {"transactions.view"},
		"C": {"merchants.view"},
	})

	if !HasAllPermissions([]string{"A", "B"}, "transactions.view") {
		t.Fatal("expected all-of to succeed when every role grants")
	}
	if HasAllPermissions([]string{"A", "C"}, "transactions.view") {
		t.Fatal("expected all-of to fail when one role lacks the permission")
	}
}

func TestRolesPermissionsUnion(t *testing.T) {
	withRolePermissions(t, map[string][]string{
		"A": {"transactions.view", "merchants.view"},
		"B": {"merchants.view", "audit.view"},
	})

	got := RolesPermissions([]string{"A", "B", "Unknown"})
	want := []string{"audit.view", "merchants.view", "transactions.view"}

	sort.Strings(got)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRolesPermissionsEmpty(t *testing.T) {
	withRolePermissions(t, map[string][]string{})

	if perms := RolesPermissions(nil); len(perms) != 0 {
		t.Fatalf("expected no permissions, got %v", perms)
	}
}
