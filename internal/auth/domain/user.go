package domain

import "time"

type User struct {
	ID           int64
	FullName     string
	Email        string // unique, stored lowercase
	PasswordHash string // "salt:digest" form, see pkg/cryptox
	RoleID       int64  // settings row of type Role
	Active       bool
	CreatedAt    time.Time
}

// Role resolves the persisted role id to the enum.
func (u User) Role() Role { return RoleFromID(u.RoleID) }

// Setting is a row of the generic lookup table. Role names live here as
// (type="Role", id, value) rows.
type Setting struct {
	ID     int64
	Type   string
	Value  string
	Active bool
}
