package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-access-portal/internal/config"
	"github.com/MKhiriev/go-access-portal/internal/crypto"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/store"
	"github.com/MKhiriev/go-access-portal/internal/utils"
	"github.com/MKhiriev/go-access-portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn      func(ctx context.Context, user models.User) (models.User, error)
	findByLoginFn func(ctx context.Context, login string) (models.User, error)
	findByIDFn    func(ctx context.Context, userID int64) (models.User, error)
	listFn        func(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	updateFn      func(ctx context.Context, user models.User) (models.User, error)
	addGroupFn    func(ctx context.Context, userID, groupID int64) error
	removeGroupFn func(ctx context.Context, userID, groupID int64) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	if m.findByLoginFn != nil {
		return m.findByLoginFn(ctx, login)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) AddUserToGroup(ctx context.Context, userID, groupID int64) error {
	if m.addGroupFn != nil {
		return m.addGroupFn(ctx, userID, groupID)
	}
	return nil
}

func (m *mockUserRepository) RemoveUserFromGroup(ctx context.Context, userID, groupID int64) error {
	if m.removeGroupFn != nil {
		return m.removeGroupFn(ctx, userID, groupID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.SessionRepository
// ─────────────────────────────────────────────

type mockSessionRepository struct {
	createFn        func(ctx context.Context, session models.Session) (models.Session, error)
	findByHashFn    func(ctx context.Context, tokenHash string) (models.Session, error)
	touchFn         func(ctx context.Context, sessionID int64, seenAt time.Time) error
	revokeFn        func(ctx context.Context, sessionID int64, revokedAt time.Time) error
	deleteExpiredFn func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockSessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	session.SessionID = 1
	return session, nil
}

func (m *mockSessionRepository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (models.Session, error) {
	if m.findByHashFn != nil {
		return m.findByHashFn(ctx, tokenHash)
	}
	return models.Session{}, store.ErrNoSessionWasFound
}

func (m *mockSessionRepository) TouchSession(ctx context.Context, sessionID int64, seenAt time.Time) error {
	if m.touchFn != nil {
		return m.touchFn(ctx, sessionID, seenAt)
	}
	return nil
}

func (m *mockSessionRepository) RevokeSession(ctx context.Context, sessionID int64, revokedAt time.Time) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, sessionID, revokedAt)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, now)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "go-access-portal-test",
	TokenDuration: time.Hour,
}

var testSessionsConfig = config.Sessions{TTL: 24 * time.Hour}

func newTestAuthService(users *mockUserRepository, sessions *mockSessionRepository) AuthService {
	hasher := crypto.NewBcryptHasher(4)
	return NewAuthService(users, sessions, hasher, testAppConfig, testSessionsConfig, logger.Nop())
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := crypto.NewBcryptHasher(4).Hash(password)
	require.NoError(t, err)
	return hash
}

func activeUser(t *testing.T, password string) models.User {
	t.Helper()
	return models.User{
		UserID:       1,
		Login:        "alice",
		Name:         "Alice",
		PasswordHash: hashOf(t, password),
		IsActive:     true,
	}
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	user := activeUser(t, "correct horse")

	var createdSession models.Session
	users := &mockUserRepository{
		findByLoginFn: func(ctx context.Context, login string) (models.User, error) {
			assert.Equal(t, "alice", login)
			return user, nil
		},
	}
	sessions := &mockSessionRepository{
		createFn: func(ctx context.Context, session models.Session) (models.Session, error) {
			createdSession = session
			session.SessionID = 42
			return session, nil
		},
	}

	svc := newTestAuthService(users, sessions)

	loggedIn, token, err := svc.Login(ctx, models.Credentials{Login: "alice", Password: "correct horse"}, "ua", "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, user.UserID, loggedIn.UserID)
	assert.Len(t, token, 64, "token is 32 random bytes hex-encoded")
	assert.Equal(t, utils.HashSessionToken(token), createdSession.TokenHash, "only the hash reaches storage")
	assert.Equal(t, "ua", createdSession.UserAgent)
	assert.Equal(t, "127.0.0.1", createdSession.IPAddress)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), createdSession.ExpiresAt, time.Minute)
}

func TestLogin_UnknownLogin(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionRepository{})

	_, _, err := svc.Login(context.Background(), models.Credentials{Login: "ghost", Password: "whatever1"}, "", "")
	assert.ErrorIs(t, err, ErrWrongCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := activeUser(t, "correct horse")
	users := &mockUserRepository{
		findByLoginFn: func(ctx context.Context, login string) (models.User, error) { return user, nil },
	}

	svc := newTestAuthService(users, &mockSessionRepository{})

	_, _, err := svc.Login(context.Background(), models.Credentials{Login: "alice", Password: "wrong"}, "", "")
	assert.ErrorIs(t, err, ErrWrongCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	user := activeUser(t, "correct horse")
	user.IsActive = false
	users := &mockUserRepository{
		findByLoginFn: func(ctx context.Context, login string) (models.User, error) { return user, nil },
	}

	svc := newTestAuthService(users, &mockSessionRepository{})

	_, _, err := svc.Login(context.Background(), models.Credentials{Login: "alice", Password: "correct horse"}, "", "")
	assert.ErrorIs(t, err, ErrWrongCredentials, "inactive account must look identical to wrong password")
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionRepository{})

	_, _, err := svc.Login(context.Background(), models.Credentials{}, "", "")
	assert.ErrorIs(t, err, ErrWrongCredentials)
}

// ─────────────────────────────────────────────
// Authenticate
// ─────────────────────────────────────────────

func TestAuthenticate_Success(t *testing.T) {
	user := activeUser(t, "pw-irrelevant")
	token, tokenHash, err := utils.GenerateSessionToken()
	require.NoError(t, err)

	touched := false
	sessions := &mockSessionRepository{
		findByHashFn: func(ctx context.Context, hash string) (models.Session, error) {
			assert.Equal(t, tokenHash, hash)
			return models.Session{
				SessionID: 42,
				UserID:    user.UserID,
				TokenHash: tokenHash,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
		touchFn: func(ctx context.Context, sessionID int64, seenAt time.Time) error {
			assert.Equal(t, int64(42), sessionID)
			touched = true
			return nil
		},
	}
	users := &mockUserRepository{
		findByIDFn: func(ctx context.Context, userID int64) (models.User, error) { return user, nil },
	}

	svc := newTestAuthService(users, sessions)

	authenticated, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, authenticated.UserID)
	assert.True(t, touched, "sliding last-seen marker updated")
}

func TestAuthenticate_Failures(t *testing.T) {
	user := activeUser(t, "pw-irrelevant")
	inactive := user
	inactive.IsActive = false
	revokedAt := time.Now().Add(-time.Minute)
	tokenHash := utils.HashSessionToken("sometoken")

	tests := []struct {
		name    string
		session models.Session
		findErr error
		user    models.User
		userErr error
	}{
		{
			name:    "unknown token → not authenticated",
			findErr: store.ErrNoSessionWasFound,
		},
		{
			name:    "stored hash mismatch → not authenticated",
			session: models.Session{SessionID: 1, UserID: 1, TokenHash: "other-hash", ExpiresAt: time.Now().Add(time.Hour)},
		},
		{
			name:    "expired session → not authenticated",
			session: models.Session{SessionID: 1, UserID: 1, TokenHash: tokenHash, ExpiresAt: time.Now().Add(-time.Hour)},
		},
		{
			name:    "revoked session → not authenticated",
			session: models.Session{SessionID: 1, UserID: 1, TokenHash: tokenHash, ExpiresAt: time.Now().Add(time.Hour), RevokedAt: &revokedAt},
		},
		{
			name:    "deleted user → not authenticated",
			session: models.Session{SessionID: 1, UserID: 1, TokenHash: tokenHash, ExpiresAt: time.Now().Add(time.Hour)},
			userErr: store.ErrNoUserWasFound,
		},
		{
			name:    "inactive user → not authenticated",
			session: models.Session{SessionID: 1, UserID: 1, TokenHash: tokenHash, ExpiresAt: time.Now().Add(time.Hour)},
			user:    inactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &mockSessionRepository{
				findByHashFn: func(ctx context.Context, hash string) (models.Session, error) {
					if tt.findErr != nil {
						return models.Session{}, tt.findErr
					}
					return tt.session, nil
				},
			}
			users := &mockUserRepository{
				findByIDFn: func(ctx context.Context, userID int64) (models.User, error) {
					if tt.userErr != nil {
						return models.User{}, tt.userErr
					}
					return tt.user, nil
				},
			}

			svc := newTestAuthService(users, sessions)

			_, err := svc.Authenticate(context.Background(), "sometoken")
			assert.ErrorIs(t, err, ErrNotAuthenticated)
		})
	}
}

func TestAuthenticate_EmptyToken(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionRepository{})

	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

// ─────────────────────────────────────────────
// Logout
// ─────────────────────────────────────────────

func TestLogout_RevokesSession(t *testing.T) {
	revoked := false
	sessions := &mockSessionRepository{
		findByHashFn: func(ctx context.Context, hash string) (models.Session, error) {
			return models.Session{SessionID: 42, UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
		revokeFn: func(ctx context.Context, sessionID int64, revokedAt time.Time) error {
			assert.Equal(t, int64(42), sessionID)
			revoked = true
			return nil
		},
	}

	svc := newTestAuthService(&mockUserRepository{}, sessions)

	require.NoError(t, svc.Logout(context.Background(), "sometoken"))
	assert.True(t, revoked)
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionRepository{})

	assert.NoError(t, svc.Logout(context.Background(), "unknown"))
	assert.NoError(t, svc.Logout(context.Background(), ""))
}

func TestLogout_StorageError(t *testing.T) {
	sessions := &mockSessionRepository{
		findByHashFn: func(ctx context.Context, hash string) (models.Session, error) {
			return models.Session{}, errors.New("db down")
		},
	}

	svc := newTestAuthService(&mockUserRepository{}, sessions)

	assert.Error(t, svc.Logout(context.Background(), "sometoken"))
}

// ─────────────────────────────────────────────
// Bearer tokens
// ─────────────────────────────────────────────

func TestIssueToken_AuthenticateToken_Roundtrip(t *testing.T) {
	user := activeUser(t, "pw-irrelevant")
	users := &mockUserRepository{
		findByIDFn: func(ctx context.Context, userID int64) (models.User, error) {
			assert.Equal(t, user.UserID, userID)
			return user, nil
		},
	}

	svc := newTestAuthService(users, &mockSessionRepository{})

	token, err := svc.IssueToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	authenticated, err := svc.AuthenticateToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, authenticated.UserID)
}

func TestAuthenticateToken_Garbage(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionRepository{})

	_, err := svc.AuthenticateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestAuthenticateToken_InactiveUser(t *testing.T) {
	user := activeUser(t, "pw-irrelevant")
	user.IsActive = false
	users := &mockUserRepository{
		findByIDFn: func(ctx context.Context, userID int64) (models.User, error) { return user, nil },
	}

	svc := newTestAuthService(users, &mockSessionRepository{})

	token, err := svc.IssueToken(context.Background(), user)
	require.NoError(t, err)

	_, err = svc.AuthenticateToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
