package dto

import "github.com/noah-isme/pbis-gateway/internal/models"

// CICOGridResponse is the monthly grid editor page.
type CICOGridResponse struct {
	Grid        *models.CICOGrid `json:"grid"`
	Permissions Permissions      `json:"permissions"`
}

// CICODailyResponse is the batch input page for one date.
type CICODailyResponse struct {
	Date    string                  `json:"date"`
	Entries []models.CICODailyEntry `json:"entries"`
}

// RosterCodesResponse is the roster code editor.
type RosterCodesResponse struct {
	Codes       []models.RosterCode `json:"codes"`
	Named       int                 `json:"named"`
	Permissions Permissions         `json:"permissions"`
}
