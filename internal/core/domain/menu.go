package domain

// MenuItem is a navigation entry in the portal sidebar. Permission gives the
// any-of requirement for showing the item; RequireAll lists permissions every
// role of the user must grant (used for sensitive composite screens).
type MenuItem struct {
	Label      string     `json:"label"`
	Path       string     `json:"path"`
	Icon       string     `json:"icon,omitempty"`
	Permission string     `json:"-"`
	RequireAll []string   `json:"-"`
	Children   []MenuItem `json:"children,omitempty"`
}

// Menu is the full portal navigation tree. Items without a permission are
// visible to every authenticated user.
var Menu = []MenuItem{
	{Label: "Dashboard", Path: "/dashboard", Icon: "home"},
	{
		Label:      "Transactions",
		Path:       "/transactions",
		Icon:       "credit-card",
		Permission: "transactions.view",
	},
	{
		Label:      "Disbursements",
		Path:       "/disbursements",
		Icon:       "send",
		Permission: "disbursements.view",
		Children: []MenuItem{
			{Label: "All Disbursements", Path: "/disbursements", Permission: "disbursements.view"},
			{Label: "Approvals", Path: "/disbursements/approvals", Permission: "disbursements.approve"},
		},
	},
	{
		Label:      "Merchants",
		Path:       "/merchants",
		Icon:       "briefcase",
		Permission: "merchants.view",
	},
	{
		Label:      "Users",
		Path:       "/users",
		Icon:       "users",
		Permission: "users.view",
	},
	{
		Label:      "Audit Logs",
		Path:       "/audit-logs",
		Icon:       "list",
		Permission: "audit.view",
	},
	{
		Label:      "Settlement Reconciliation",
		Path:       "/reconciliation",
		Icon:       "scale",
		RequireAll: []string{"transactions.view", "disbursements.view"},
	},
}

// FilterMenu returns the items of the tree visible to a user holding the
// given roles, recursing into children. An item survives when it has no
// requirement, when any role grants its Permission, and when every role
// grants each RequireAll entry.
func FilterMenu(items []MenuItem, roles []string) []MenuItem {
	var visible []MenuItem

	for _, item := range items {
		if !menuItemVisible(item, roles) {
			continue
		}

		filtered := item
		filtered.Children = FilterMenu(item.Children, roles)
		visible = append(visible, filtered)
	}

	return visible
}

func menuItemVisible(item MenuItem, roles []string) bool {
	if item.Permission != "" && !HasAnyPermission(roles, item.Permission) {
		return false
	}
	for _, permission := range item.RequireAll {
		if !HasAllPermissions(roles, permission) {
			return false
		}
	}
	return true
}
