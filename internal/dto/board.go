package dto

import "github.com/noah-isme/pbis-gateway/internal/models"

// BoardResponse is the announcement board page.
type BoardResponse struct {
	Posts       []models.BoardPost `json:"posts"`
	Permissions Permissions        `json:"permissions"`
}

// MeetingNotesResponse lists notes newest first.
type MeetingNotesResponse struct {
	Notes []models.MeetingNote `json:"notes"`
	Total int                  `json:"total"`
}
