package models

import "time"

// Export kinds.
const (
	ExportCICOMonthly  = "cico_monthly"
	ExportTierStatus   = "tier_status"
	ExportTier3Report  = "tier3_report"
	ExportMeetingNotes = "meeting_notes"
)

// ExportRequest asks for a generated file.
type ExportRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=cico_monthly tier_status tier3_report meeting_notes"`
	Format    string `json:"format" validate:"required,oneof=xlsx csv pdf"`
	Month     int    `json:"month,omitempty" validate:"omitempty,min=3,max=12"`
	StartDate string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ExportResult points at a stored export.
type ExportResult struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
	Rows        int       `json:"rows"`
}
