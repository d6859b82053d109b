package dto

import "github.com/noah-isme/pbis-gateway/internal/models"

// Tier1ReportResponse is the school-wide report built from the dashboard aggregate.
type Tier1ReportResponse struct {
	DateRange    models.ResolvedDateRange `json:"date_range"`
	Summary      models.DashboardSummary  `json:"summary"`
	Trends       []models.TrendPoint      `json:"trends"`
	Big5         models.Big5              `json:"big5"`
	Functions    []models.NamedValue      `json:"functions"`
	SafetyAlerts []models.SafetyAlert     `json:"safety_alerts"`
	Narrative    *models.Narrative        `json:"narrative,omitempty"`
}

// CICOReportResponse wraps the monthly decision report.
type CICOReportResponse struct {
	Month  int               `json:"month"`
	Report models.CICOReport `json:"report"`
}

// Tier3ReportResponse wraps the tier-3 report for a window.
type Tier3ReportResponse struct {
	DateRange models.ResolvedDateRange `json:"date_range"`
	Report    models.Tier3Report       `json:"report"`
}

// MeetingAnalysisResponse supports tier meetings.
type MeetingAnalysisResponse struct {
	DateRange models.ResolvedDateRange `json:"date_range"`
	Analysis  models.MeetingAnalysis   `json:"analysis"`
}
