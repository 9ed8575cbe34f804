package models

import "time"

// Session represents a server-side authentication session backing a browser
// cookie. The cookie carries an opaque random token; only the SHA-256 hash of
// that token is persisted, so a database leak does not expose live sessions.
type Session struct {
	// SessionID is the internal unique identifier of the session row.
	SessionID int64 `json:"id"`

	// UserID is the owner of the session.
	UserID int64 `json:"user_id"`

	// TokenHash is the hex-encoded SHA-256 hash of the session token.
	// The plaintext token exists only in the client's cookie.
	TokenHash string `json:"-"`

	// UserAgent is the User-Agent header captured at login. Diagnostic only.
	UserAgent string `json:"user_agent,omitempty"`

	// IPAddress is the remote address captured at login. Diagnostic only.
	IPAddress string `json:"ip_address,omitempty"`

	// CreatedAt is when the session was established.
	CreatedAt time.Time `json:"created_at"`

	// LastSeenAt is updated on every authenticated request (sliding marker).
	LastSeenAt time.Time `json:"last_seen_at"`

	// ExpiresAt is the hard expiry of the session.
	ExpiresAt time.Time `json:"expires_at"`

	// RevokedAt is non-nil once the session was explicitly terminated
	// (logout or administrative revocation).
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// IsExpired reports whether the session is past its hard expiry at time now.
func (s Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// IsRevoked reports whether the session was explicitly terminated.
func (s Session) IsRevoked() bool {
	return s.RevokedAt != nil
}
