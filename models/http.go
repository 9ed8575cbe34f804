package models

import "time"

// Credentials is the payload of both the HTML login form and the JSON
// POST /api/auth/login endpoint.
type Credentials struct {
	// Login is the account login identifier.
	Login string `json:"login"`

	// Password is the plaintext password. It is verified against the stored
	// bcrypt hash and never persisted.
	Password string `json:"password"`
}

// LoginResponse is returned by POST /api/auth/login. API clients attach the
// token as "Authorization: Bearer <token>" on subsequent requests.
type LoginResponse struct {
	// Token is the signed JWT issued for the authenticated user.
	Token string `json:"token"`

	// User is the authenticated account (without credential material).
	User User `json:"user"`
}

// CreateUserRequest is the staff-only payload for creating a new account.
type CreateUserRequest struct {
	// Login is the unique login of the new account. Required.
	Login string `json:"login"`

	// Name is the display name of the new account.
	Name string `json:"name"`

	// Password is the initial plaintext password. When empty, the server
	// generates a random one and returns it once in [CreateUserResponse].
	Password string `json:"password,omitempty"`

	// IsStaff marks the new account as staff.
	IsStaff bool `json:"is_staff"`

	// Groups lists group names the new account is added to on creation.
	Groups []string `json:"groups,omitempty"`
}

// CreateUserResponse is returned by POST /api/users.
type CreateUserResponse struct {
	// User is the created account.
	User User `json:"user"`

	// GeneratedPassword carries the server-generated initial password when
	// the request did not supply one. Returned exactly once, never stored.
	GeneratedPassword string `json:"generated_password,omitempty"`
}

// UpdateUserRequest is the staff-only payload for PATCH /api/users/{id}.
// Only non-nil fields are applied (partial update).
type UpdateUserRequest struct {
	// Name replaces the display name when non-nil.
	Name *string `json:"name,omitempty"`

	// IsStaff toggles the staff flag when non-nil.
	IsStaff *bool `json:"is_staff,omitempty"`

	// IsActive activates or deactivates the account when non-nil.
	IsActive *bool `json:"is_active,omitempty"`
}

// UserFilter represents search criteria for the staff user listing.
// Zero-valued fields are omitted from the generated WHERE clause.
type UserFilter struct {
	// Login filters by substring match on the login.
	Login string `json:"login,omitempty"`

	// Group restricts the listing to members of the named group.
	Group string `json:"group,omitempty"`

	// IsStaff filters by the staff flag when non-nil.
	IsStaff *bool `json:"is_staff,omitempty"`

	// IsActive filters by the active flag when non-nil.
	IsActive *bool `json:"is_active,omitempty"`

	// Limit caps the number of returned rows; 0 means the server default.
	Limit uint64 `json:"limit,omitempty"`

	// Offset skips the given number of rows for pagination.
	Offset uint64 `json:"offset,omitempty"`
}

// CreateGroupRequest is the staff-only payload for creating a group.
type CreateGroupRequest struct {
	// Name is the unique group name. Required.
	Name string `json:"name"`

	// Description is an optional explanation of the group's purpose.
	Description string `json:"description,omitempty"`
}

// DocumentInfo describes one protected document available for download.
type DocumentInfo struct {
	// Name is the file name of the document inside the documents root.
	Name string `json:"name"`

	// Size is the document size in bytes.
	Size int64 `json:"size"`

	// ModTime is the last modification time of the document file.
	ModTime time.Time `json:"mod_time"`
}
