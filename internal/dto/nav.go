package dto

import "github.com/noah-isme/pbis-gateway/internal/models"

// Permissions tells a page which mutating controls to render. Admin-only
// endpoints enforce the same rules server side.
type Permissions struct {
	IsAdmin             bool `json:"is_admin"`
	CanManageUsers      bool `json:"can_manage_users"`
	CanManageHolidays   bool `json:"can_manage_holidays"`
	CanEditTiers        bool `json:"can_edit_tiers"`
	CanSaveRoster       bool `json:"can_save_roster"`
	CanDeleteBoardPosts bool `json:"can_delete_board_posts"`
	CanRefreshDashboard bool `json:"can_refresh_dashboard"`
	CanManageCICO       bool `json:"can_manage_cico"`
}

// PermissionsFor derives the capabilities of user.
func PermissionsFor(user models.User) Permissions {
	admin := user.IsAdmin()
	return Permissions{
		IsAdmin:             admin,
		CanManageUsers:      admin,
		CanManageHolidays:   admin,
		CanEditTiers:        admin,
		CanSaveRoster:       admin,
		CanDeleteBoardPosts: admin,
		CanRefreshDashboard: admin,
		CanManageCICO:       admin,
	}
}

// NavLink is one navigation entry.
type NavLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// NavResponse is the navigation shell shown on every page.
type NavResponse struct {
	User        models.User              `json:"user"`
	Links       []NavLink                `json:"links"`
	DateRange   models.ResolvedDateRange `json:"date_range"`
	Permissions Permissions              `json:"permissions"`
}

// NavLinks lists the links visible to user; the admin link only for admins.
func NavLinks(user models.User) []NavLink {
	links := []NavLink{
		{Label: "Dashboard", Path: "/"},
		{Label: "Tier status", Path: "/tier-status"},
		{Label: "CICO", Path: "/cico"},
		{Label: "CICO daily input", Path: "/cico/daily"},
		{Label: "Meeting notes", Path: "/meeting-notes"},
		{Label: "Reports", Path: "/reports"},
		{Label: "Board", Path: "/board"},
		{Label: "Roster", Path: "/roster"},
	}
	if user.IsAdmin() {
		links = append(links, NavLink{Label: "Admin", Path: "/admin"})
	}
	return links
}
