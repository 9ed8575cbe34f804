package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-access-portal/internal/config"
	"github.com/MKhiriev/go-access-portal/internal/crypto"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/store"
	"github.com/MKhiriev/go-access-portal/internal/utils"
	"github.com/MKhiriev/go-access-portal/models"
)

// authService is the concrete implementation of [AuthService].
// It verifies credentials against bcrypt hashes, manages server-side
// sessions for browsers, and issues JWT bearer tokens for API clients.
type authService struct {
	// userRepository looks up accounts during login and session resolution.
	userRepository store.UserRepository

	// sessionRepository persists session records. Only token hashes reach it.
	sessionRepository store.SessionRepository

	// hasher verifies passwords against stored bcrypt hashes.
	hasher crypto.PasswordHasher

	// sessionTTL is the hard lifetime of a newly opened session.
	sessionTTL time.Duration

	// tokenSignKey is the HMAC secret used to sign and verify bearer tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	tokenIssuer string

	// tokenDuration controls how long a newly issued bearer token remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, sessionRepository store.SessionRepository, hasher crypto.PasswordHasher, appCfg config.App, sessionsCfg config.Sessions, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		hasher:            hasher,
		sessionTTL:        sessionsCfg.TTL,
		tokenSignKey:      appCfg.TokenSignKey,
		tokenIssuer:       appCfg.TokenIssuer,
		tokenDuration:     appCfg.TokenDuration,
		logger:            logger,
	}
}

// Login verifies the credentials and opens a new session on success.
//
// When the login is unknown, the password is still verified against a dummy
// hash so the response time does not reveal whether the account exists.
// Unknown login, wrong password, and deactivated account all collapse into
// [ErrWrongCredentials]; the caller must not distinguish them.
func (a *authService) Login(ctx context.Context, creds models.Credentials, userAgent, ipAddress string) (models.User, string, error) {
	log := logger.FromContext(ctx)

	if creds.Login == "" || creds.Password == "" {
		return models.User{}, "", ErrWrongCredentials
	}

	user, err := a.userRepository.FindUserByLogin(ctx, creds.Login)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			// burn the same bcrypt cost as a real verification
			_, _ = a.hasher.Verify(creds.Password, crypto.DummyHash)
			return models.User{}, "", ErrWrongCredentials
		}
		log.Err(err).Str("func", "*authService.Login").Msg("user search by login failed")
		return models.User{}, "", fmt.Errorf("user search by login failed: %w", err)
	}

	ok, err := a.hasher.Verify(creds.Password, user.PasswordHash)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Int64("id", user.UserID).Msg("password verification failed")
		return models.User{}, "", fmt.Errorf("password verification failed: %w", err)
	}
	if !ok || !user.IsActive {
		log.Warn().Str("func", "*authService.Login").Str("login", creds.Login).Bool("active", user.IsActive).Msg("login rejected")
		return models.User{}, "", ErrWrongCredentials
	}

	token, tokenHash, err := utils.GenerateSessionToken()
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("session token generation failed")
		return models.User{}, "", fmt.Errorf("session token generation failed: %w", err)
	}

	now := time.Now()
	_, err = a.sessionRepository.CreateSession(ctx, models.Session{
		UserID:     user.UserID,
		TokenHash:  tokenHash,
		UserAgent:  userAgent,
		IPAddress:  ipAddress,
		LastSeenAt: now,
		ExpiresAt:  now.Add(a.sessionTTL),
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Int64("id", user.UserID).Msg("session creation failed")
		return models.User{}, "", fmt.Errorf("session creation failed: %w", err)
	}

	log.Info().Str("func", "*authService.Login").Int64("id", user.UserID).Str("login", user.Login).Msg("user logged in")

	return user, token, nil
}

// Authenticate resolves a plaintext session token to its user.
//
// The token is hashed before lookup; the plaintext never reaches storage.
// Any failure along the way (unknown token, revoked or expired session,
// missing or deactivated user) yields [ErrNotAuthenticated] so middleware
// can treat the request as anonymous without inspecting the cause.
func (a *authService) Authenticate(ctx context.Context, sessionToken string) (models.User, error) {
	log := logger.FromContext(ctx)

	if sessionToken == "" {
		return models.User{}, ErrNotAuthenticated
	}

	session, err := a.sessionRepository.FindSessionByTokenHash(ctx, utils.HashSessionToken(sessionToken))
	if err != nil {
		if errors.Is(err, store.ErrNoSessionWasFound) {
			return models.User{}, ErrNotAuthenticated
		}
		log.Err(err).Str("func", "*authService.Authenticate").Msg("session lookup failed")
		return models.User{}, fmt.Errorf("session lookup failed: %w", err)
	}

	// the row was fetched by hash; confirm the match in constant time
	if !utils.VerifySessionToken(sessionToken, session.TokenHash) {
		return models.User{}, ErrNotAuthenticated
	}

	now := time.Now()
	if session.IsRevoked() || session.IsExpired(now) {
		return models.User{}, ErrNotAuthenticated
	}

	user, err := a.userRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrNotAuthenticated
		}
		log.Err(err).Str("func", "*authService.Authenticate").Int64("id", session.UserID).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}
	if !user.IsActive {
		return models.User{}, ErrNotAuthenticated
	}

	// best effort; a stale marker never blocks an authenticated request
	if err = a.sessionRepository.TouchSession(ctx, session.SessionID, now); err != nil {
		log.Warn().Err(err).Str("func", "*authService.Authenticate").Int64("session_id", session.SessionID).Msg("failed to touch session")
	}

	return user, nil
}

// Logout revokes the session behind the given plaintext token. An unknown or
// already-revoked token is silently accepted: logout must always succeed
// from the client's point of view.
func (a *authService) Logout(ctx context.Context, sessionToken string) error {
	log := logger.FromContext(ctx)

	if sessionToken == "" {
		return nil
	}

	session, err := a.sessionRepository.FindSessionByTokenHash(ctx, utils.HashSessionToken(sessionToken))
	if err != nil {
		if errors.Is(err, store.ErrNoSessionWasFound) {
			return nil
		}
		log.Err(err).Str("func", "*authService.Logout").Msg("session lookup failed")
		return fmt.Errorf("session lookup failed: %w", err)
	}

	if err = a.sessionRepository.RevokeSession(ctx, session.SessionID, time.Now()); err != nil {
		log.Err(err).Str("func", "*authService.Logout").Int64("session_id", session.SessionID).Msg("session revocation failed")
		return fmt.Errorf("session revocation failed: %w", err)
	}

	log.Info().Str("func", "*authService.Logout").Int64("session_id", session.SessionID).Msg("session revoked")

	return nil
}

// IssueToken creates a signed bearer token for an already-authenticated user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) IssueToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// AuthenticateToken resolves a bearer token string to its user.
//
// Signature, issuer, and expiry failures are normalised to
// [ErrNotAuthenticated], as are missing and deactivated users, so callers do
// not need to inspect low-level JWT errors.
func (a *authService) AuthenticateToken(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.User{}, ErrNotAuthenticated
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrNotAuthenticated
		}
		log.Err(err).Str("func", "*authService.AuthenticateToken").Int64("id", token.UserID).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}
	if !user.IsActive {
		return models.User{}, ErrNotAuthenticated
	}

	return user, nil
}
