package domain

import "testing"

func TestFilterMenuByAnyPermission(t *testing.T) {
	withRolePermissions(t, map[string][]string{
		"Viewer": {"transactions.view"},
	})

	menu := []MenuItem{
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "Transactions", Path: "/transactions", Permission: "transactions.view"},
		{Label: "Users", Path: "/users", Permission: "users.view"},
	}

	got := FilterMenu(menu, []string{"Viewer"})
	if len(got) != 2 {
		t.Fatalf("expected 2 visible items, got %d", len(got))
	}
	if got[0].Label != "Dashboard" || got[1].Label != "Transactions" {
		t.Fatalf("unexpected items: %v", got)
	}
}

func TestFilterMenuRequireAll(t *testing.T) {
	withRolePermissions(t, map[string][]string{
		"A": {"transactions.view", "disbursements.view"},
		"B": {"transactions.view"},
	})

	menu := []MenuItem{
		{Label: "Reconciliation", Path: "/reconciliation", RequireAll: []string{"transactions.view", "disbursements.view"}},
	}

	if got := FilterMenu(menu, []string{"A"}); len(got) != 1 {
		t.Fatalf("expected item visible for role A, got %v", got)
	}
	if got := FilterMenu(menu, []string{"A", "B"}); len(got) != 0 {
		t.Fatalf("expected item hidden when one role lacks a permission, got %v", got)
	}
	if got := FilterMenu(menu, nil); len(got) != 0 {
		t.Fatalf("expected item hidden for empty roles, got %v", got)
	}
}

func TestFilterMenuChildren(t *testing.T) {
	withRolePermissions(t, map[string][]string{
		"Finance": {"disbursements.view"},
	})

	menu := []MenuItem{
		{
			Label:      "Disbursements",
			Path:       "/disbursements",
			Permission: "disbursements.view",
			Children: []MenuItem{
				{Label: "All", Path: "/disbursements", Permission: "disbursements.view"},
				{Label: "Approvals", Path: "/disbursements/approvals", Permission: "disbursements.approve"},
			},
		},
	}

	got := FilterMenu(menu, []string{"Finance"})
	if len(got) != 1 {
		t.Fatalf("expected parent visible, got %v", got)
	}
	if len(got[0].Children) != 1 || got[0].Children[0].Label != "All" {
		t.Fatalf("expected only the viewable child, got %v", got[0].Children)
	}
}
