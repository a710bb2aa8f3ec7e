package service

import (
	"testing"

	"github.com/coffeelux/auth/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestAccessPolicy_RoleAreas(t *testing.T) {
	p := NewAccessPolicy()

	tests := []struct {
		role domain.Role
		path string
		want bool
	}{
		{domain.RoleInventory, "/inventory/dashboard", true},
		{domain.RoleInventory, "/suppliers/list", true},
		{domain.RoleInventory, "/reports/inventory-stock", true},
		{domain.RoleInventory, "/hr/user-list", false},
		{domain.RoleInventory, "/reports/user-activity", false},

		{domain.RoleHR, "/hr/user-list", true},
		{domain.RoleHR, "/user/edit", true},
		{domain.RoleHR, "/reports/user-activity", true},
		{domain.RoleHR, "/inventory/dashboard", false},
		{domain.RoleHR, "/barista/orders", false},

		{domain.RoleBarista, "/barista/orders", true},
		{domain.RoleBarista, "/orders/new", true},
		{domain.RoleBarista, "/products/view-all", true},
		{domain.RoleBarista, "/products/edit", false},
		{domain.RoleBarista, "/settings/general", false},

		// Admin covers every role's area.
		{domain.RoleAdmin, "/hr/user-list", true},
		{domain.RoleAdmin, "/inventory/dashboard", true},
		{domain.RoleAdmin, "/barista/orders", true},
		{domain.RoleAdmin, "/settings/general", true},
		{domain.RoleAdmin, "/admin/anything/at/all", true},
	}

	for _, tt := range tests {
		got := p.HasAccess(tt.role, tt.path)
		require.Equal(t, tt.want, got, "%s on %s", tt.role.Name(), tt.path)
	}
}

func TestAccessPolicy_SharedPaths(t *testing.T) {
	p := NewAccessPolicy()

	for _, role := range []domain.Role{
		domain.RoleAdmin, domain.RoleHR, domain.RoleInventory, domain.RoleBarista,
	} {
		for _, path := range []string{
			"/logout", "/profile", "/change-password", "/dashboard",
			"/home", "/css/site.css", "/js/app.js", "/images/logo.png",
		} {
			require.True(t, p.HasAccess(role, path), "%s on %s", role.Name(), path)
		}
	}
}

func TestAccessPolicy_UnknownRoleDenied(t *testing.T) {
	p := NewAccessPolicy()

	require.False(t, p.HasAccess(domain.RoleUnknown, "/hr/user-list"))
	require.False(t, p.HasAccess(domain.RoleUnknown, "/inventory/dashboard"))
	require.False(t, p.HasAccess(domain.RoleUnknown, "/admin/settings"))
}

func TestAccessPolicy_PublicPaths(t *testing.T) {
	p := NewAccessPolicy()

	for _, path := range []string{
		"/login", "/register", "/forgot-password", "/verify-otp",
		"/reset-password", "/css/site.css", "/js/app.js",
		"/images/logo.png", "/static/fonts/x.woff", "/favicon.ico",
		"/livez", "/readyz",
	} {
		require.True(t, p.IsPublic(path), path)
	}

	for _, path := range []string{
		"/", "/dashboard", "/hr/user-list", "/logout", "/login-history",
	} {
		require.False(t, p.IsPublic(path), path)
	}
}

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		path, pattern string
		want          bool
	}{
		{"/hr/users", "/hr/*", true},
		{"/hr/", "/hr/*", true},
		{"/hr", "/hr/*", false},
		{"/dashboard", "/dashboard", true},
		{"/dashboard/x", "/dashboard", false},
		{"/reports/user-activity", "/reports/user*", true},
		{"/reports/inventory", "/reports/user*", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, matchesPattern(tt.path, tt.pattern), "%s vs %s", tt.path, tt.pattern)
	}
}
