package domain

import "time"

// SessionTTL is the absolute lifetime of a session, measured from creation.
// Activity updates LastAccess but never extends the deadline.
const SessionTTL = 30 * time.Minute

// Session binds an opaque token to an authenticated identity. The user is a
// snapshot taken at login, not a live reference; a later edit to the user
// row is not reflected until the next login.
type Session struct {
	ID         string // opaque unguessable token
	User       User
	Role       Role
	CreatedAt  time.Time
	LastAccess time.Time
}

// ExpiresAt is the absolute deadline after which the session is invalid.
func (s Session) ExpiresAt() time.Time { return s.CreatedAt.Add(SessionTTL) }

// Expired reports whether the session has passed its absolute deadline.
func (s Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt()) }
