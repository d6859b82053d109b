package dto

import "github.com/noah-isme/pbis-gateway/internal/models"

// DashboardResponse is the main dashboard page.
type DashboardResponse struct {
	models.Dashboard
	DateRange     models.ResolvedDateRange `json:"date_range"`
	AICommentHTML string                   `json:"ai_comment_html,omitempty"`
	Charts        DashboardCharts          `json:"charts"`
	Permissions   Permissions              `json:"permissions"`
}

// DashboardCharts holds image URLs for the rendered charts.
type DashboardCharts struct {
	Trend     string `json:"trend"`
	Locations string `json:"locations"`
	Times     string `json:"times"`
	Behaviors string `json:"behaviors"`
	Tiers     string `json:"tiers"`
}
