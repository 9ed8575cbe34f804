package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-access-portal/models"
)

// UserRepository is the persistence contract for portal accounts and their
// group memberships.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields (UserID, CreatedAt). Returns [ErrLoginAlreadyExists] on a
	// duplicate login.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin retrieves an account (with groups loaded) by login.
	// Returns [ErrNoUserWasFound] when no row matches.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)

	// FindUserByID retrieves an account (with groups loaded) by ID.
	// Returns [ErrNoUserWasFound] when no row matches.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// ListUsers returns accounts matching the filter, groups loaded,
	// ordered by login.
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)

	// UpdateUser persists the mutable account fields (Name, IsStaff,
	// IsActive) and returns the refreshed record.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)

	// AddUserToGroup inserts a membership row. Returns
	// [ErrMembershipAlreadyExists] when the user is already a member.
	AddUserToGroup(ctx context.Context, userID, groupID int64) error

	// RemoveUserFromGroup deletes a membership row. Removing a missing
	// membership is not an error.
	RemoveUserFromGroup(ctx context.Context, userID, groupID int64) error
}

// GroupRepository is the persistence contract for authorization groups.
type GroupRepository interface {
	// CreateGroup persists a new group and returns it with server-assigned
	// fields. Returns [ErrGroupAlreadyExists] on a duplicate name.
	CreateGroup(ctx context.Context, group models.Group) (models.Group, error)

	// FindGroupByName retrieves a group by its unique name.
	// Returns [ErrNoGroupWasFound] when no row matches.
	FindGroupByName(ctx context.Context, name string) (models.Group, error)

	// ListGroups returns all groups ordered by name.
	ListGroups(ctx context.Context) ([]models.Group, error)
}

// SessionRepository is the persistence contract for server-side sessions.
type SessionRepository interface {
	// CreateSession persists a new session and returns it with
	// server-assigned fields (SessionID, CreatedAt).
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)

	// FindSessionByTokenHash retrieves a session by the SHA-256 hash of its
	// token. Returns [ErrNoSessionWasFound] when no row matches.
	FindSessionByTokenHash(ctx context.Context, tokenHash string) (models.Session, error)

	// TouchSession updates the sliding last-seen marker of a session.
	TouchSession(ctx context.Context, sessionID int64, seenAt time.Time) error

	// RevokeSession marks a session as explicitly terminated. Revoking an
	// already-revoked session is a no-op.
	RevokeSession(ctx context.Context, sessionID int64, revokedAt time.Time) error

	// DeleteExpiredSessions removes sessions whose hard expiry is before
	// now and returns the number of deleted rows.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// DocumentStorage serves protected documents from a storage backend.
type DocumentStorage interface {
	// ListDocuments enumerates the available documents.
	ListDocuments(ctx context.Context) ([]models.DocumentInfo, error)

	// OpenDocument opens the named document for reading. Returns
	// [ErrDocumentNotFound] when the document does not exist or the name
	// fails sanitisation. The caller must close the reader.
	OpenDocument(ctx context.Context, name string) (io.ReadSeekCloser, models.DocumentInfo, error)
}
