package models

import "time"

// Group is a named collection of users used for role-based authorization.
// Access checks test membership in a group rather than per-user flags.
type Group struct {
	// GroupID is the internal unique identifier of the group.
	GroupID int64 `json:"id"`

	// Name is the unique, human-readable group name (e.g. "editors").
	Name string `json:"name"`

	// Description is an optional free-form explanation of what the
	// group grants access to.
	Description string `json:"description,omitempty"`

	// CreatedAt is the timestamp when the group was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Group model.
func (g Group) TableName() string {
	return "groups"
}
