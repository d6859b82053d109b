package models

import "time"

// Meeting types.
const (
	MeetingTier1        = "tier1"
	MeetingTier2        = "tier2"
	MeetingTier3        = "tier3"
	MeetingConsultation = "consultation"
)

// MeetingNote is an append-only meeting or consultation record.
type MeetingNote struct {
	ID          string     `json:"id,omitempty"`
	MeetingType string     `json:"meeting_type" validate:"required,oneof=tier1 tier2 tier3 consultation"`
	Date        string     `json:"date" validate:"required,datetime=2006-01-02"`
	Content     string     `json:"content" validate:"required"`
	Author      string     `json:"author"`
	StudentCode string     `json:"student_code,omitempty"`
	PeriodStart string     `json:"period_start,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PeriodEnd   string     `json:"period_end,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// MeetingNoteFilter narrows the note list.
type MeetingNoteFilter struct {
	MeetingType string
	StudentCode string
	StartDate   string
	EndDate     string
}

// MeetingNoteList is the upstream list payload.
type MeetingNoteList struct {
	Notes []MeetingNote `json:"notes"`
	Total int           `json:"total"`
}

// MeetingMinutesRequest asks for AI minutes over a period.
type MeetingMinutesRequest struct {
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	MeetingType string `json:"meeting_type,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// MeetingStudent is one row of the meeting analysis.
type MeetingStudent struct {
	Name                   string  `json:"name"`
	Class                  string  `json:"class"`
	TotalIncidents         int     `json:"total_incidents"`
	WeeklyAvg              float64 `json:"weekly_avg"`
	IsEmergency            bool    `json:"is_emergency"`
	EmergencyReason        string  `json:"emergency_reason"`
	IsTier2Candidate       bool    `json:"is_tier2_candidate"`
	DecisionRecommendation string  `json:"decision_recommendation"`
}

// MeetingAnalysis supports tier meetings with candidate lists.
type MeetingAnalysis struct {
	Period   string           `json:"period"`
	Students []MeetingStudent `json:"students"`
	Summary  struct {
		EmergencyCount      int `json:"emergency_count"`
		Tier2CandidateCount int `json:"tier2_candidate_count"`
	} `json:"summary"`
}
