package http

import (
	"net/http"
	"time"

	"github.com/coffeelux/auth/internal/auth/state"
)

const (
	// sessionCookieName is the browser-session cookie set at every login.
	// It dies with the browser; the server-side 30-minute deadline applies
	// on top.
	sessionCookieName = "cl_session"

	// rememberCookieName is the persistent remember-me cookie, set only
	// when requested at login.
	rememberCookieName = "sessionId"

	// flowCookieName carries the opaque password-recovery flow id.
	flowCookieName = "cl_recovery"

	rememberTTL = 7 * 24 * time.Hour
)

func setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func setRememberCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     rememberCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(rememberTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func setFlowCookie(w http.ResponseWriter, flowID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flowCookieName,
		Value:    flowID,
		Path:     "/",
		MaxAge:   int(state.FlowTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// sessionIDFromRequest extracts the session token, preferring the browser
// session cookie and falling back to the persistent remember-me cookie.
func sessionIDFromRequest(r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if c, err := r.Cookie(rememberCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}

func flowIDFromRequest(r *http.Request) string {
	if c, err := r.Cookie(flowCookieName); err == nil {
		return c.Value
	}
	return ""
}
