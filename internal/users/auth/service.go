// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/peerreview/journalhub/internal/platform/apperr"
	"github.com/peerreview/journalhub/internal/platform/sec"
	"github.com/peerreview/journalhub/internal/platform/validate"
	"github.com/peerreview/journalhub/pkg/uuidv7"
)

// TokenProvider signs access tokens. Implemented by sec.TokenService.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

type Service struct {
	users    UserRepository
	sessions SessionRepository
	reset    VolatileTokenRepository
	verify   VolatileTokenRepository
	tokens   TokenProvider
	logger   *slog.Logger
}

func NewService(
	users UserRepository,
	sessions SessionRepository,
	reset VolatileTokenRepository,
	verify VolatileTokenRepository,
	tokens TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		reset:    reset,
		verify:   verify,
		tokens:   tokens,
		logger:   logger,
	}
}

// # Registration

type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Affiliation string `json:"affiliation"`
}

// Register creates a member account and stages an email verification token.
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Slug(FieldUsername, input.Username)
	validator.Email(FieldEmail, input.Email)
	validator.MinLen(FieldPassword, input.Password, PasswordMinLength)
	validator.Required(FieldDisplayName, input.DisplayName)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Conflict messages are client safe, no account details leak.
	if _, err := service.users.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if _, err := service.users.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuidv7.Must(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Affiliation:  input.Affiliation,
		Role:         sec.RoleMember,
		IsVerified:   false,
	}
	if err := service.users.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_register_failed: %w", err)
	}

	// Verification is a side effect; registration succeeds without it.
	token, err := sec.GenerateSecureToken(VerificationTokenLength)
	if err == nil {
		_ = service.verify.Set(context, token, user.ID, VerificationTokenTTL)
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Authentication

type LoginInput struct {
	Login     string // username or email
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession is a successfully established session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

// Login verifies credentials and opens a tracked refresh session. Lookup
// and password failures share one message to prevent account enumeration.
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.users.FindByEmail(context, input.Login)
	if err != nil {
		user, err = service.users.FindByUsername(context, input.Login)
	}
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.openSession(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

// Logout revokes the session behind the refresh token. Idempotent: an
// unknown token is already logged out.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	session, err := service.sessions.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}

	if err := service.sessions.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_logout_failed: %w", err)
	}
	return nil
}

// RefreshSession rotates the refresh token: the presented token's session
// is revoked before a new pair is issued, so a replayed token is dead.
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessions.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if err := service.sessions.Revoke(context, session.ID); err != nil {
		return nil, fmt.Errorf("auth_refresh_revoke_failed: %w", err)
	}

	user, err := service.users.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	return service.openSession(context, user, userAgent, ipAddress)
}

// openSession issues the access/refresh pair and persists the tracking row.
func (service *Service) openSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuidv7.Must(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}
	if err := service.sessions.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Password Recovery

// RequestPasswordReset stages a reset token. An unknown email returns
// success with an empty token so callers cannot enumerate accounts.
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	user, err := service.users.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_generate_reset_token_failed: %w", err)
	}

	if err := service.reset.Set(context, token, user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_save_reset_token_failed: %w", err)
	}
	return token, nil
}

// ResetPassword completes the forgot-password flow and revokes every
// session of the account.
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	validator := &validate.Validator{}
	validator.MinLen(FieldNewPassword, newPassword, PasswordMinLength)
	if err := validator.Err(); err != nil {
		return err
	}

	userID, err := service.reset.Get(context, token)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_reset_password_hash_failed: %w", err)
	}
	if err := service.users.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_reset_password_update_failed: %w", err)
	}

	_ = service.sessions.RevokeAll(context, userID)
	_ = service.reset.Delete(context, token)

	service.logger.Info("password_reset", slog.String("user_id", userID))
	return nil
}

// ChangePassword verifies the current password, swaps the hash and forces
// re-login on every other device.
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword, currentRefreshToken string) error {
	validator := &validate.Validator{}
	validator.MinLen(FieldNewPassword, newPassword, PasswordMinLength)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return err
	}
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_change_password_hash_failed: %w", err)
	}
	if err := service.users.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_change_password_update_failed: %w", err)
	}

	session, err := service.sessions.FindByTokenHash(context, sec.HashToken(currentRefreshToken))
	if err == nil {
		_ = service.sessions.RevokeOthers(context, userID, session.ID)
	}
	return nil
}

// VerifyEmail confirms an address with a staged verification token.
func (service *Service) VerifyEmail(context context.Context, token string) error {
	userID, err := service.verify.Get(context, token)
	if err != nil {
		return err
	}

	if err := service.users.MarkVerified(context, userID); err != nil {
		return fmt.Errorf("auth_verify_email_failed: %w", err)
	}

	_ = service.verify.Delete(context, token)
	return nil
}

// GetUser returns the account behind an authenticated request.
func (service *Service) GetUser(context context.Context, id string) (*User, error) {
	return service.users.FindByID(context, id)
}

// UpdateProfile edits the caller's mutable profile fields.
func (service *Service) UpdateProfile(context context.Context, userID, displayName, affiliation string) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldDisplayName, displayName)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = displayName
	user.Affiliation = affiliation
	if err := service.users.Update(context, user); err != nil {
		return nil, err
	}
	return user, nil
}
