package models

import "github.com/shopspring/decimal"

// Category defaults for groups created without one.
const (
	DefaultCategory     = "Other"
	DefaultCategoryIcon = "📝"
)

// Group is a shared-expense context: one admin, a roster, an upfront funding
// amount and the flat bills added to it.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Title is the display name of the group (e.g., "Weekend Trip").
	Title string

	// Category groups similar groups for display (e.g., "Travel").
	Category string

	// CategoryIcon is the emoji shown next to the category.
	CategoryIcon string

	// AdminID is the member who created the group and funded Amount.
	AdminID string

	// AdminName is the admin's display name.
	AdminName string

	// Members is the roster, excluding or including the admin.
	// Entries are unique by ID.
	Members []Member

	// Amount is the upfront funding contributed by the admin.
	Amount decimal.Decimal

	// Bills are the flat, equally split costs added to the group.
	Bills []Bill

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether id is the admin or on the roster.
func (g *Group) HasMember(id string) bool {
	if id == "" {
		return false
	}
	if id == g.AdminID {
		return true
	}
	for _, m := range g.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// MemberName returns the display name for id, or id itself when unknown.
func (g *Group) MemberName(id string) string {
	if id == g.AdminID && g.AdminName != "" {
		return g.AdminName
	}
	for _, m := range g.Members {
		if m.ID == id && m.Name != "" {
			return m.Name
		}
	}
	return id
}

// Member is one person on a group's roster.
type Member struct {
	ID    string
	Name  string
	Email string
}

// Bill is a flat group cost split equally among all members.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// Name describes the bill (e.g., "Groceries").
	Name string

	// Amount is the bill total.
	Amount decimal.Decimal

	// Date is the bill date as entered by the user (free-form).
	Date string

	// PaidBy is the member who paid. Empty means the group admin.
	PaidBy string
}
