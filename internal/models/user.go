package models

import (
	"strings"
	"time"
)

// UserRole represents the roles the PBIS API hands out.
type UserRole string

const (
	RoleTeacher      UserRole = "teacher"
	RoleClassManager UserRole = "class_manager"
	RoleAdmin        UserRole = "admin"
)

// ParseRole lower-cases raw and reports whether it names a known role.
func ParseRole(raw string) (UserRole, bool) {
	role := UserRole(strings.ToLower(strings.TrimSpace(raw)))
	switch role {
	case RoleTeacher, RoleClassManager, RoleAdmin:
		return role, true
	default:
		return role, false
	}
}

// User is the identity held by a session.
type User struct {
	ID        string     `json:"id"`
	Role      UserRole   `json:"role"`
	Name      string     `json:"name,omitempty"`
	ClassID   string     `json:"class_id,omitempty"`
	ClassName string     `json:"class_name,omitempty"`
	Memo      string     `json:"memo,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// IsAdmin reports whether the user may reach admin-only pages and actions.
func (u User) IsAdmin() bool {
	return strings.EqualFold(string(u.Role), string(RoleAdmin))
}

// CreateUserRequest registers a new account upstream.
type CreateUserRequest struct {
	ID        string   `json:"id" validate:"required,max=64"`
	Password  string   `json:"password" validate:"required,min=4"`
	Role      UserRole `json:"role" validate:"required,oneof=teacher class_manager admin"`
	Name      string   `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone     string   `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email     string   `json:"email,omitempty" validate:"omitempty,email"`
	ClassID   string   `json:"class_id,omitempty"`
	ClassName string   `json:"class_name,omitempty"`
}

// UpdateRoleRequest changes a user's role and optionally their class.
type UpdateRoleRequest struct {
	UserID   string   `json:"user_id" validate:"required"`
	NewRole  UserRole `json:"new_role" validate:"required,oneof=teacher class_manager admin"`
	NewClass string   `json:"new_class,omitempty"`
}

// UpdatePasswordRequest replaces a user's password.
type UpdatePasswordRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=4"`
}
