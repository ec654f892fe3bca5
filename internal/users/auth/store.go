// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package auth

import (
	"context"
	"time"
)

// UserRepository is the data access contract for accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID, newHash string) error
	MarkVerified(ctx context.Context, userID string) error
	SoftDelete(ctx context.Context, id string) error
}

// SessionRepository is the data access contract for refresh sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error

	// FindByTokenHash matches only sessions that are unrevoked and unexpired.
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	Revoke(ctx context.Context, sessionID string) error
	RevokeAll(ctx context.Context, userID string) error

	// RevokeOthers keeps the current session alive and revokes the rest,
	// used on password change to force re-login elsewhere.
	RevokeOthers(ctx context.Context, userID, currentSessionID string) error

	DeleteExpired(ctx context.Context) error
}

// VolatileTokenRepository stores single-use tokens (password reset, email
// verification) mapped to a user id with a TTL.
type VolatileTokenRepository interface {
	Set(ctx context.Context, token, userID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

var (
	_ UserRepository          = (*PostgresUserRepository)(nil)
	_ SessionRepository       = (*PostgresSessionRepository)(nil)
	_ VolatileTokenRepository = (*RedisTokenRepository)(nil)
)
