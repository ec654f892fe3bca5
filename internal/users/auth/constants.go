// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package auth

import "time"

const (
	// AccessTokenTTL keeps JWTs short-lived to limit leakage impact.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the session lifetime.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random session token.
	RefreshTokenLength = 32

	// ResetTokenTTL bounds the forgot-password window.
	ResetTokenTTL = 1 * time.Hour

	ResetTokenLength = 32

	// VerificationTokenTTL is long because people read email late.
	VerificationTokenTTL = 24 * time.Hour

	VerificationTokenLength = 32

	// PasswordMinLength is the floor for new passwords.
	PasswordMinLength = 10
)
