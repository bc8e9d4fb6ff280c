package view

// NavItem is one entry of the top navigation bar.
type NavItem struct {
	Path   string
	Label  string
	Active bool
}

var navItems = []NavItem{
	{Path: "/", Label: "Dashboard"},
	{Path: "/expenses", Label: "Expenses"},
	{Path: "/budgets", Label: "Budgets"},
	{Path: "/analytics", Label: "Analytics"},
}

// Navigation returns the nav bar with the entry for current marked active.
func Navigation(current string) []NavItem {
	items := make([]NavItem, len(navItems))
	copy(items, navItems)
	for i := range items {
		items[i].Active = items[i].Path == current
	}
	return items
}
