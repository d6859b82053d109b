package models

import "time"

// Audit actions for admin mutations.
const (
	AuditActionLogin           = "LOGIN"
	AuditActionLogout          = "LOGOUT"
	AuditActionUserCreate      = "USER_CREATE"
	AuditActionUserDelete      = "USER_DELETE"
	AuditActionRoleChange      = "ROLE_CHANGE"
	AuditActionPasswordChange  = "PASSWORD_CHANGE"
	AuditActionHolidayAdd      = "HOLIDAY_ADD"
	AuditActionHolidayDelete   = "HOLIDAY_DELETE"
	AuditActionTierUpdate      = "TIER_UPDATE"
	AuditActionRosterSave      = "ROSTER_SAVE"
	AuditActionBoardDelete     = "BOARD_DELETE"
	AuditActionCICOGenerate    = "CICO_GENERATE"
	AuditActionCICOSettings    = "CICO_SETTINGS"
	AuditActionDashboardReload = "DASHBOARD_REFRESH"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	NewValues  []byte    `db:"new_values" json:"new_values,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AuditFilter narrows audit listings.
type AuditFilter struct {
	UserID string
	Action string
	Limit  int
}
