package dto

import "github.com/noah-isme/pbis-gateway/internal/models"

// StudentDetailResponse renders either the student's detail or a not-found
// notice with a way back.
type StudentDetailResponse struct {
	Found   bool                  `json:"found"`
	Message string                `json:"message,omitempty"`
	Back    string                `json:"back,omitempty"`
	Detail  *models.StudentDetail `json:"detail,omitempty"`
}
