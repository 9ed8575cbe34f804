package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-access-portal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns the authentication lifecycle: credential verification,
// server-side browser sessions, and bearer tokens for API clients.
type AuthService interface {
	// Login verifies the credentials and, on success, opens a new session.
	// The returned plaintext token goes into the client's cookie; it is never
	// stored. Unknown login, wrong password, and deactivated account all
	// yield [ErrWrongCredentials].
	Login(ctx context.Context, creds models.Credentials, userAgent, ipAddress string) (models.User, string, error)

	// Authenticate resolves a plaintext session token to its user. Expired,
	// revoked, and unknown sessions, as well as deactivated users, yield
	// [ErrNotAuthenticated].
	Authenticate(ctx context.Context, sessionToken string) (models.User, error)

	// Logout revokes the session behind the given plaintext token.
	// Revoking an unknown token is not an error.
	Logout(ctx context.Context, sessionToken string) error

	// IssueToken creates a signed bearer token for an already-authenticated
	// user, for API clients that cannot hold a cookie.
	IssueToken(ctx context.Context, user models.User) (models.Token, error)

	// AuthenticateToken resolves a bearer token string to its user. Invalid
	// tokens and deactivated users yield [ErrNotAuthenticated].
	AuthenticateToken(ctx context.Context, tokenString string) (models.User, error)
}

// AccountService owns staff-facing account and group administration.
type AccountService interface {
	// CreateUser creates a new account, hashing the supplied password or
	// generating one when the request leaves it empty. The generated
	// password is returned exactly once and never stored in plaintext.
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.CreateUserResponse, error)

	// GetUser retrieves an account by ID with groups loaded.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// ListUsers returns accounts matching the filter.
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)

	// UpdateUser applies the non-nil fields of req to the account.
	UpdateUser(ctx context.Context, userID int64, req models.UpdateUserRequest) (models.User, error)

	// CreateGroup creates a new authorization group.
	CreateGroup(ctx context.Context, req models.CreateGroupRequest) (models.Group, error)

	// ListGroups returns all groups.
	ListGroups(ctx context.Context) ([]models.Group, error)

	// AddUserToGroup adds the account to the named group.
	AddUserToGroup(ctx context.Context, userID int64, groupName string) error

	// RemoveUserFromGroup removes the account from the named group.
	RemoveUserFromGroup(ctx context.Context, userID int64, groupName string) error

	// EnsureAdmin creates the bootstrap staff account on first start.
	// When the login already exists, nothing happens.
	EnsureAdmin(ctx context.Context, login, password string) error
}

// DocumentService exposes the protected documents area to authenticated
// users.
type DocumentService interface {
	// ListDocuments enumerates the available documents.
	ListDocuments(ctx context.Context) ([]models.DocumentInfo, error)

	// OpenDocument opens the named document for download. A missing or
	// unreachable document yields [store.ErrDocumentNotFound].
	OpenDocument(ctx context.Context, name string) (io.ReadSeekCloser, models.DocumentInfo, error)
}

// AppInfoService reports build metadata about the running application.
type AppInfoService interface {
	// GetAppVersion returns the semantic version of the running binary.
	GetAppVersion(ctx context.Context) string
}
