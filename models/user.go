package models

import "time"

// User represents a portal account used for authentication and authorization.
// Group membership and the staff flag drive access decisions; credential
// material must never leave trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Login is the unique login identifier used during authentication.
	Login string `json:"login"`

	// Name is the display name of the user. Non-sensitive, may be shown in UI.
	Name string `json:"name"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Never serialized; never holds plaintext.
	PasswordHash string `json:"-"`

	// IsStaff grants access to the administration surface
	// (admin pages and the /api/users family of endpoints).
	IsStaff bool `json:"is_staff"`

	// IsActive marks whether the account may authenticate.
	// Deactivated accounts keep their rows but cannot log in,
	// and their existing sessions stop resolving.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// Groups holds the named groups the user belongs to.
	// Populated by the store layer on lookup; may be empty.
	Groups []Group `json:"groups,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// InGroup reports whether the user belongs to the group with the given name.
func (u User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

// GroupNames returns the names of all groups the user belongs to,
// in the order they were loaded.
func (u User) GroupNames() []string {
	names := make([]string, 0, len(u.Groups))
	for _, g := range u.Groups {
		names = append(names, g.Name)
	}
	return names
}
