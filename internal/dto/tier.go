package dto

import "github.com/noah-isme/pbis-gateway/internal/models"

// TierStudent is a tier status row with its resolved name and current tier.
type TierStudent struct {
	models.StudentStatus
	Tier string `json:"tier"`
}

// TierCount is the number of students at a tier.
type TierCount struct {
	Tier  string `json:"tier"`
	Count int    `json:"count"`
}

// TierBoardResponse is the tier status page.
type TierBoardResponse struct {
	Students      []TierStudent `json:"students"`
	Summary       []TierCount   `json:"summary"`
	EnrolledCount int           `json:"enrolled_count"`
	TotalCount    int           `json:"total_count"`
	Generated     bool          `json:"generated"`
	Permissions   Permissions   `json:"permissions"`
}

// Tier2RecordsResponse is the Tier 2 card page: the Tier 2 students, the
// selected student's recent cards and whether today's card is in.
type Tier2RecordsResponse struct {
	Students    []TierStudent       `json:"students"`
	Selected    string              `json:"selected,omitempty"`
	Records     []models.CICORecord `json:"records"`
	TodayDone   bool                `json:"today_done"`
	AverageRate int                 `json:"average_rate"`
	Today       string              `json:"today"`
}
