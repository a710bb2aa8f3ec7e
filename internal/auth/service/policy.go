package service

import (
	"strings"

	"github.com/coffeelux/auth/internal/auth/domain"
)

// AccessPolicy is the static role to URL-pattern authorization table. A
// pattern is an exact path or a prefix wildcard ("/hr/*" matches anything
// under /hr/). Roles with no entry are denied everything (fail closed).
type AccessPolicy struct {
	rolePatterns map[domain.Role][]string
	publicPaths  []string
	sharedPaths  []string
}

// NewAccessPolicy builds the shop's authorization table. Admin's set is a
// superset of every other role's area.
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{
		rolePatterns: map[domain.Role][]string{
			domain.RoleAdmin: {
				"/admin/*", "/hr/*", "/inventory/*", "/barista/*",
				"/user/*", "/reports/*", "/settings/*", "/dashboard",
			},
			domain.RoleHR: {
				"/hr/*", "/user/*", "/reports/user*", "/dashboard",
			},
			domain.RoleBarista: {
				"/barista/*", "/orders/*", "/products/view*", "/dashboard",
			},
			domain.RoleInventory: {
				"/inventory/*", "/suppliers/*", "/purchaseorders/*",
				"/ingredients/*", "/reports/inventory*", "/dashboard",
			},
		},
		publicPaths: []string{
			"/login", "/register", "/forgot-password", "/verify-otp",
			"/reset-password", "/css/", "/js/", "/images/", "/static/",
			"/favicon.ico", "/livez", "/readyz",
		},
		// Paths any authenticated user may reach regardless of role.
		sharedPaths: []string{
			"/", "/logout", "/profile", "/change-password", "/dashboard",
			"/home", "/static/*", "/css/*", "/js/*", "/images/*",
		},
	}
}

// IsPublic reports whether path may be served without authentication.
func (p *AccessPolicy) IsPublic(path string) bool {
	for _, pub := range p.publicPaths {
		if strings.HasSuffix(pub, "/") {
			if strings.HasPrefix(path, pub) {
				return true
			}
			continue
		}
		if path == pub {
			return true
		}
	}
	return false
}

// HasAccess reports whether role may reach path. Role-agnostic paths are
// open to every authenticated caller.
func (p *AccessPolicy) HasAccess(role domain.Role, path string) bool {
	for _, shared := range p.sharedPaths {
		if matchesPattern(path, shared) {
			return true
		}
	}

	patterns, ok := p.rolePatterns[role]
	if !ok {
		return false
	}
	for _, pattern := range patterns {
		if matchesPattern(path, pattern) {
			return true
		}
	}
	return false
}

func matchesPattern(path, pattern string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(path, prefix)
	}
	return path == pattern
}
