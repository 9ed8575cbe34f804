package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/models"
)

// sessionRepository is the SQL-backed implementation of [SessionRepository].
// Only SHA-256 hashes of session tokens ever reach this layer; the plaintext
// token lives exclusively in the client's cookie.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession persists a new session and returns it with server-assigned
// fields (SessionID, CreatedAt).
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, r.db.rebind(createSession),
		session.UserID, session.TokenHash, session.UserAgent, session.IPAddress,
		session.LastSeenAt, session.ExpiresAt)

	var created models.Session
	if err := row.Scan(&created.SessionID, &created.UserID, &created.TokenHash,
		&created.UserAgent, &created.IPAddress, &created.CreatedAt,
		&created.LastSeenAt, &created.ExpiresAt, &created.RevokedAt); err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: scanning error")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindSessionByTokenHash retrieves a session by the SHA-256 hash of its
// token. Returns [ErrNoSessionWasFound] when no row matches.
func (r *sessionRepository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, r.db.rebind(findSessionByTokenHash), tokenHash)
	if err := row.Scan(&session.SessionID, &session.UserID, &session.TokenHash,
		&session.UserAgent, &session.IPAddress, &session.CreatedAt,
		&session.LastSeenAt, &session.ExpiresAt, &session.RevokedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrNoSessionWasFound
		}
		log.Err(err).Str("func", "*sessionRepository.FindSessionByTokenHash").Msg("error: scanning error")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}

// TouchSession updates the sliding last-seen marker of a session.
func (r *sessionRepository) TouchSession(ctx context.Context, sessionID int64, seenAt time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, r.db.rebind(touchSession), seenAt, sessionID); err != nil {
		log.Err(err).Str("func", "*sessionRepository.TouchSession").Msg("error executing statement")
		return errors.Join(ErrExecutingStatement, err)
	}

	return nil
}

// RevokeSession marks a session as explicitly terminated. Revoking an
// already-revoked session is a no-op.
func (r *sessionRepository) RevokeSession(ctx context.Context, sessionID int64, revokedAt time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, r.db.rebind(revokeSession), revokedAt, sessionID); err != nil {
		log.Err(err).Str("func", "*sessionRepository.RevokeSession").Msg("error executing statement")
		return errors.Join(ErrExecutingStatement, err)
	}

	return nil
}

// DeleteExpiredSessions removes sessions whose hard expiry is before now and
// returns the number of deleted rows.
func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, r.db.rebind(deleteExpiredSessions), now)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpiredSessions").Msg("error executing statement")
		return 0, errors.Join(ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpiredSessions").Msg("error reading rows affected")
		return 0, errors.Join(ErrExecutingStatement, err)
	}

	return deleted, nil
}
