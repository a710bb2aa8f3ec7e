package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/coffeelux/auth/internal/auth/service"
	"github.com/coffeelux/auth/pkg/httpx"
	"github.com/coffeelux/auth/pkg/slogx"
)

// Gate is the request gate: it lets allowlisted public paths straight
// through, resolves the caller's session for everything else, authorizes the
// path against the access policy, and attaches the identity to the request
// context for downstream handlers.
func Gate(auth *service.AuthService, policy *service.AccessPolicy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			if policy.IsPublic(path) {
				next.ServeHTTP(w, r)
				return
			}

			sess, ok, err := auth.ValidateSession(r.Context(), sessionIDFromRequest(r))
			if err != nil {
				slogx.FromContext(r.Context()).Error("session lookup failed", "error", err)
				http.Error(w, "system error, try again later", http.StatusInternalServerError)
				return
			}
			if !ok {
				// Stale cookies would just bounce the next request too.
				clearCookie(w, sessionCookieName)
				clearCookie(w, rememberCookieName)

				returnURL := path
				if r.URL.RawQuery != "" {
					returnURL += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, "/login?returnUrl="+url.QueryEscape(returnURL), http.StatusFound)
				return
			}

			if !policy.HasAccess(sess.Role, path) {
				slogx.FromContext(r.Context()).Warn("access denied",
					"user_id", sess.User.ID, "role", sess.Role.Name(), "path", path)
				render(w, http.StatusForbidden, "forbidden.html", pageBase{})
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, sess.User.ID)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserEmail, sess.User.Email)
			ctx = context.WithValue(ctx, httpx.CtxKeyRole, sess.Role.Name())
			ctx = context.WithValue(ctx, httpx.CtxKeySessionID, sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
