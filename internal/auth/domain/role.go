package domain

// Role is the closed set of staff roles. It is the single source of truth
// for both the numeric ids persisted in the settings table and the display
// names used by the access policy; authorization decisions always key off
// the enum, never raw strings or ids.
type Role int

const (
	RoleUnknown Role = iota
	RoleHR
	RoleAdmin
	RoleInventory
	RoleBarista
)

const (
	RoleNameHR        = "HR"
	RoleNameAdmin     = "Admin"
	RoleNameInventory = "Inventory"
	RoleNameBarista   = "Barista"
)

// RoleFromID maps a persisted numeric role id to the enum.
// Unknown ids map to RoleUnknown, which no access policy entry matches.
func RoleFromID(id int64) Role {
	switch id {
	case 1:
		return RoleHR
	case 2:
		return RoleAdmin
	case 3:
		return RoleInventory
	case 4:
		return RoleBarista
	default:
		return RoleUnknown
	}
}

// RoleFromName maps a role display name to the enum.
func RoleFromName(name string) Role {
	switch name {
	case RoleNameHR:
		return RoleHR
	case RoleNameAdmin:
		return RoleAdmin
	case RoleNameInventory:
		return RoleInventory
	case RoleNameBarista:
		return RoleBarista
	default:
		return RoleUnknown
	}
}

// ID returns the numeric id as stored in the settings lookup table.
func (r Role) ID() int64 {
	switch r {
	case RoleHR:
		return 1
	case RoleAdmin:
		return 2
	case RoleInventory:
		return 3
	case RoleBarista:
		return 4
	default:
		return 0
	}
}

// Name returns the display name, or "" for RoleUnknown.
func (r Role) Name() string {
	switch r {
	case RoleHR:
		return RoleNameHR
	case RoleAdmin:
		return RoleNameAdmin
	case RoleInventory:
		return RoleNameInventory
	case RoleBarista:
		return RoleNameBarista
	default:
		return ""
	}
}

func (r Role) String() string { return r.Name() }

// LandingPath is the dashboard a user is sent to after login.
func (r Role) LandingPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleHR:
		return "/hr/dashboard"
	case RoleBarista:
		return "/barista/dashboard"
	case RoleInventory:
		return "/inventory/dashboard"
	default:
		return "/dashboard"
	}
}
