// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

/*
Package auth implements identity and session management: registration,
login, refresh-token rotation and the password recovery flow.

# Architecture

  - Service orchestrates the flows and owns the security rules.
  - Account rows live in Postgres, refresh sessions alongside them;
    short-lived reset and verification tokens live in Redis only.
  - Passwords are bcrypt-hashed; refresh tokens are stored as SHA-256
    digests, never in the clear.
*/
package auth

import (
	"time"

	"github.com/peerreview/journalhub/internal/platform/sec"
)

// User is a registered account.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	DisplayName  string       `json:"display_name"`
	Affiliation  string       `json:"affiliation,omitempty"`
	Role         sec.UserRole `json:"role"`
	IsVerified   bool         `json:"is_verified"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session is an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// Validation field names.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldDisplayName     = "display_name"
	FieldLogin           = "login"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
)
