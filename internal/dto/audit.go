package dto

import (
	"encoding/json"
	"time"
)

// AuditLogView is one audit entry as shown on the admin page.
type AuditLogView struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Action     string          `json:"action"`
	Resource   string          `json:"resource"`
	ResourceID string          `json:"resource_id,omitempty"`
	Values     json.RawMessage `json:"values,omitempty"`
	IPAddress  string          `json:"ip_address"`
	CreatedAt  time.Time       `json:"created_at"`
}
