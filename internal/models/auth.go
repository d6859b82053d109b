package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials forwarded to the PBIS API.
type LoginRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the session token and the signed-in user.
type LoginResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	User      User      `json:"user"`
	IssuedAt  time.Time `json:"issued_at"`
}

// Session is the server-side identity record created at login and destroyed
// at logout. It never expires on its own.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionClaims is the payload of the session token.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
