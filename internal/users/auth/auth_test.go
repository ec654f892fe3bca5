// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerreview/journalhub/internal/platform/apperr"
	"github.com/peerreview/journalhub/internal/platform/dberr"
	"github.com/peerreview/journalhub/internal/platform/sec"
)

type fakeUserRepository struct {
	users map[string]*User // by id
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*User{}}
}

func (fake *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	user, ok := fake.users[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (fake *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range fake.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (fake *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range fake.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (fake *fakeUserRepository) Create(_ context.Context, user *User) error {
	copied := *user
	fake.users[user.ID] = &copied
	return nil
}

func (fake *fakeUserRepository) Update(_ context.Context, user *User) error {
	if _, ok := fake.users[user.ID]; !ok {
		return dberr.ErrNotFound
	}
	copied := *user
	fake.users[user.ID] = &copied
	return nil
}

func (fake *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := fake.users[userID]
	if !ok {
		return dberr.ErrNotFound
	}
	user.PasswordHash = newHash
	return nil
}

func (fake *fakeUserRepository) MarkVerified(_ context.Context, userID string) error {
	user, ok := fake.users[userID]
	if !ok {
		return dberr.ErrNotFound
	}
	user.IsVerified = true
	return nil
}

func (fake *fakeUserRepository) SoftDelete(_ context.Context, id string) error {
	delete(fake.users, id)
	return nil
}

type fakeSessionRepository struct {
	sessions map[string]*Session // by id
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]*Session{}}
}

func (fake *fakeSessionRepository) Create(_ context.Context, session *Session) error {
	copied := *session
	fake.sessions[session.ID] = &copied
	return nil
}

func (fake *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*Session, error) {
	for _, session := range fake.sessions {
		if session.TokenHash == tokenHash && !session.IsRevoked && session.ExpiresAt.After(time.Now()) {
			copied := *session
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (fake *fakeSessionRepository) Revoke(_ context.Context, sessionID string) error {
	session, ok := fake.sessions[sessionID]
	if !ok {
		return dberr.ErrNotFound
	}
	session.IsRevoked = true
	return nil
}

func (fake *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for _, session := range fake.sessions {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (fake *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	for _, session := range fake.sessions {
		if session.UserID == userID && session.ID != currentSessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (fake *fakeSessionRepository) DeleteExpired(_ context.Context) error { return nil }

func (fake *fakeSessionRepository) active(userID string) int {
	count := 0
	for _, session := range fake.sessions {
		if session.UserID == userID && !session.IsRevoked {
			count++
		}
	}
	return count
}

type fakeTokenStore struct {
	tokens map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]string{}}
}

func (fake *fakeTokenStore) Set(_ context.Context, token, userID string, _ time.Duration) error {
	fake.tokens[token] = userID
	return nil
}

func (fake *fakeTokenStore) Get(_ context.Context, token string) (string, error) {
	userID, ok := fake.tokens[token]
	if !ok {
		return "", apperr.NotFound("Token is invalid or expired")
	}
	return userID, nil
}

func (fake *fakeTokenStore) Delete(_ context.Context, token string) error {
	delete(fake.tokens, token)
	return nil
}

// fakeTokenProvider issues predictable unsigned tokens.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "access-" + userID, nil
}

type testEnv struct {
	service  *Service
	users    *fakeUserRepository
	sessions *fakeSessionRepository
	reset    *fakeTokenStore
	verify   *fakeTokenStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:    newFakeUserRepository(),
		sessions: newFakeSessionRepository(),
		reset:    newFakeTokenStore(),
		verify:   newFakeTokenStore(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.service = NewService(env.users, env.sessions, env.reset, env.verify, fakeTokenProvider{}, logger)
	return env
}

func registerUser(t *testing.T, env *testEnv) *User {
	t.Helper()
	user, err := env.service.Register(context.Background(), RegisterInput{
		Username:    "ada-lovelace",
		Email:       "ada@example.org",
		Password:    "correct-horse-battery",
		DisplayName: "Ada Lovelace",
	})
	require.NoError(t, err)
	return user
}

/*
TestRegister verifies hashing, default role and the duplicate guards.
*/
func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env)

	assert.Equal(t, sec.RoleMember, user.Role)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct-horse-battery", user.PasswordHash))

	// A verification token was staged for the new account.
	require.Len(t, env.verify.tokens, 1)

	_, err := env.service.Register(context.Background(), RegisterInput{
		Username:    "someone-else",
		Email:       "ada@example.org",
		Password:    "another-long-password",
		DisplayName: "Someone Else",
	})
	require.Error(t, err, "duplicate email must conflict")

	_, err = env.service.Register(context.Background(), RegisterInput{
		Username:    "ada-lovelace",
		Email:       "other@example.org",
		Password:    "another-long-password",
		DisplayName: "Someone Else",
	})
	require.Error(t, err, "duplicate username must conflict")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"missing username", RegisterInput{Email: "a@b.org", Password: "long-enough-pass", DisplayName: "A"}},
		{"bad email", RegisterInput{Username: "abc", Email: "nope", Password: "long-enough-pass", DisplayName: "A"}},
		{"short password", RegisterInput{Username: "abc", Email: "a@b.org", Password: "short", DisplayName: "A"}},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := env.service.Register(context.Background(), testCase.input)
			require.Error(t, err)
		})
	}
}

/*
TestLoginAndRefresh walks the full session lifecycle: login by email and by
username, token rotation and replay rejection.
*/
func TestLoginAndRefresh(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env)

	for _, login := range []string{"ada@example.org", "ada-lovelace"} {
		session, err := env.service.Login(context.Background(), LoginInput{
			Login: login, Password: "correct-horse-battery",
		})
		require.NoError(t, err)
		assert.Equal(t, "access-"+user.ID, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
	}

	_, err := env.service.Login(context.Background(), LoginInput{
		Login: "ada@example.org", Password: "wrong",
	})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 401, appErr.HTTPStatus)

	session, err := env.service.Login(context.Background(), LoginInput{
		Login: "ada@example.org", Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	rotated, err := env.service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// The old refresh token died with the rotation.
	_, err = env.service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.Error(t, err)
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env)

	session, err := env.service.Login(context.Background(), LoginInput{
		Login: "ada@example.org", Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	require.NoError(t, env.service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, env.service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, env.service.Logout(context.Background(), "never-issued"))
}

/*
TestPasswordReset covers the forgot-password round trip and the session
revocation that follows it.
*/
func TestPasswordReset(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env)

	_, err := env.service.Login(context.Background(), LoginInput{
		Login: "ada@example.org", Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	// Unknown email: silent success, nothing staged.
	token, err := env.service.RequestPasswordReset(context.Background(), "ghost@example.org")
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = env.service.RequestPasswordReset(context.Background(), "ada@example.org")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, env.service.ResetPassword(context.Background(), token, "entirely-new-password"))
	assert.Zero(t, env.sessions.active(user.ID), "all sessions revoked after reset")

	// The token is single use.
	err = env.service.ResetPassword(context.Background(), token, "entirely-new-password")
	require.Error(t, err)

	_, err = env.service.Login(context.Background(), LoginInput{
		Login: "ada@example.org", Password: "entirely-new-password",
	})
	require.NoError(t, err)
}

func TestChangePasswordRevokesOtherSessions(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env)

	first, err := env.service.Login(context.Background(), LoginInput{
		Login: "ada@example.org", Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	_, err = env.service.Login(context.Background(), LoginInput{
		Login: "ada@example.org", Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	require.Equal(t, 2, env.sessions.active(user.ID))

	err = env.service.ChangePassword(context.Background(), user.ID, "wrong", "entirely-new-password", first.RefreshToken)
	require.Error(t, err)

	err = env.service.ChangePassword(context.Background(), user.ID, "correct-horse-battery", "entirely-new-password", first.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, env.sessions.active(user.ID), "only the current session survives")
}

func TestVerifyEmail(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env)

	var token string
	for staged := range env.verify.tokens {
		token = staged
	}
	require.NotEmpty(t, token)

	require.NoError(t, env.service.VerifyEmail(context.Background(), token))

	stored, err := env.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)

	err = env.service.VerifyEmail(context.Background(), token)
	require.Error(t, err, "verification token is single use")
}
