package http

import (
	"net/http"

	"github.com/coffeelux/auth/internal/auth/domain"
	"github.com/coffeelux/auth/pkg/httpx"
)

type dashboardPage struct {
	pageBase
	Area  string
	Email string
	Role  string
}

// DashboardHandler renders one role area's landing page. The identity comes
// from the request context; the gate has already authorized the path.
type DashboardHandler struct {
	Area string
}

func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, "dashboard.html", dashboardPage{
		Area:  h.Area,
		Email: emailFromCtx(r),
		Role:  httpx.RoleFromCtx(r.Context()),
	})
}

// HomeHandler sends an authenticated caller to their role's dashboard.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	role := domain.RoleFromName(httpx.RoleFromCtx(r.Context()))
	landing := role.LandingPath()
	if landing == r.URL.Path {
		render(w, http.StatusOK, "dashboard.html", dashboardPage{
			Area:  role.Name(),
			Email: emailFromCtx(r),
			Role:  role.Name(),
		})
		return
	}
	http.Redirect(w, r, landing, http.StatusFound)
}

func emailFromCtx(r *http.Request) string {
	if v, ok := r.Context().Value(httpx.CtxKeyUserEmail).(string); ok {
		return v
	}
	return ""
}
