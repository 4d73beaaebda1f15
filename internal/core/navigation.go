package core

import "strings"

// Tab is one sub-page of a module. Collection names the record collection
// the tab manages, if any.
type Tab struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Collection string `json:"collection,omitempty"`
}

// Module is one entry of the sidebar.
type Module struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Tabs  []Tab  `json:"tabs,omitempty"`
}

var modules = []Module{
	{ID: "dashboard", Label: "Dashboard", Icon: "home"},
	{ID: "finance", Label: "Finance", Icon: "dollar-sign", Tabs: []Tab{
		{ID: "general-ledger", Label: "General Ledger", Collection: CollectionGeneralLedger},
		{ID: "accounts-payable", Label: "Accounts Payable", Collection: CollectionAccountsPayable},
		{ID: "accounts-receivable", Label: "Accounts Receivable", Collection: CollectionAccountsReceivable},
		{ID: "reports", Label: "Financial Reports"},
	}},
	{ID: "hr", Label: "Human Resources", Icon: "users", Tabs: []Tab{
		{ID: "employees", Label: "Employees", Collection: CollectionEmployees},
		{ID: "recruitment", Label: "Recruitment", Collection: CollectionJobOpenings},
		{ID: "training", Label: "Training", Collection: CollectionTrainingPrograms},
		{ID: "payroll", Label: "Payroll", Collection: CollectionPayroll},
	}},
	{ID: "supply-chain", Label: "Supply Chain", Icon: "truck", Tabs: []Tab{
		{ID: "inventory", Label: "Inventory"},
		{ID: "procurement", Label: "Procurement"},
		{ID: "suppliers", Label: "Suppliers"},
	}},
	{ID: "crm", Label: "CRM", Icon: "user-check", Tabs: []Tab{
		{ID: "customers", Label: "Customers"},
		{ID: "leads", Label: "Leads"},
		{ID: "opportunities", Label: "Opportunities"},
	}},
	{ID: "manufacturing", Label: "Manufacturing", Icon: "settings", Tabs: []Tab{
		{ID: "production", Label: "Production Orders"},
		{ID: "quality", Label: "Quality Control"},
	}},
	{ID: "projects", Label: "Project Management", Icon: "clipboard", Tabs: []Tab{
		{ID: "projects", Label: "Projects"},
		{ID: "tasks", Label: "Tasks"},
		{ID: "timesheets", Label: "Timesheets"},
	}},
	{ID: "settings", Label: "Settings", Icon: "sliders", Tabs: []Tab{
		{ID: "profile", Label: "Profile"},
		{ID: "preferences", Label: "Preferences"},
	}},
}

// Modules returns the sidebar in display order.
func Modules() []Module {
	out := make([]Module, len(modules))
	copy(out, modules)
	return out
}

// Resolve maps a URL path such as "/hr/payroll" to its module and tab.
// "/" is the dashboard. A missing tab segment selects the module's first
// tab.
func Resolve(path string) (Module, Tab, bool) {
	segs := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segs) == 0 {
		return modules[0], Tab{}, true
	}
	if len(segs) > 2 {
		return Module{}, Tab{}, false
	}
	for _, m := range modules {
		if m.ID != segs[0] {
			continue
		}
		if len(segs) == 1 {
			if len(m.Tabs) == 0 {
				return m, Tab{}, true
			}
			return m, m.Tabs[0], true
		}
		for _, t := range m.Tabs {
			if t.ID == segs[1] {
				return m, t, true
			}
		}
		return Module{}, Tab{}, false
	}
	return Module{}, Tab{}, false
}
