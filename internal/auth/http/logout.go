package http

import (
	"net/http"

	"github.com/coffeelux/auth/internal/auth/service"
	"github.com/coffeelux/auth/pkg/httpx"
	"github.com/coffeelux/auth/pkg/slogx"
)

// LogoutHandler destroys the caller's session and clears both cookies.
type LogoutHandler struct {
	Auth *service.AuthService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), httpx.SessionIDFromCtx(r.Context())); err != nil {
		slogx.FromContext(r.Context()).Error("logout failed", "error", err)
	}

	clearCookie(w, sessionCookieName)
	clearCookie(w, rememberCookieName)
	http.Redirect(w, r, "/login?loggedout=1", http.StatusSeeOther)
}
