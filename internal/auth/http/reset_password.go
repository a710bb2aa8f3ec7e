package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/coffeelux/auth/internal/auth/service"
	"github.com/coffeelux/auth/pkg/slogx"
)

// ResetPasswordHandler completes the recovery flow inside the verified
// window.
type ResetPasswordHandler struct {
	Recovery *service.RecoveryService

	// Now mirrors the service clock override for expiry tests.
	Now func() time.Time
}

func (h *ResetPasswordHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *ResetPasswordHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	flow, ok, err := h.Recovery.Flow(r.Context(), flowIDFromRequest(r))
	if err != nil {
		slogx.FromContext(r.Context()).Error("flow lookup failed", "error", err)
		http.Error(w, "system error, try again later", http.StatusInternalServerError)
		return
	}
	if !ok || !flow.ResetAuthorized(h.now()) {
		http.Redirect(w, r, "/forgot-password?expired=1", http.StatusFound)
		return
	}
	render(w, http.StatusOK, "reset_password.html", pageBase{})
}

func (h *ResetPasswordHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err := h.Recovery.Reset(r.Context(),
		flowIDFromRequest(r),
		r.PostFormValue("password"),
		r.PostFormValue("confirm"),
	)
	if err == nil {
		clearCookie(w, flowCookieName)
		http.Redirect(w, r, "/login?reset=1", http.StatusSeeOther)
		return
	}

	var page pageBase
	switch {
	case errors.Is(err, service.ErrNoRecoveryFlow), errors.Is(err, service.ErrResetWindowElapsed):
		clearCookie(w, flowCookieName)
		http.Redirect(w, r, "/forgot-password?expired=1", http.StatusSeeOther)
		return

	case errors.Is(err, service.ErrPasswordConfirmMismatch):
		page.ErrorMessage = "The passwords do not match."

	case errors.Is(err, service.ErrPasswordTooShort):
		page.ErrorMessage = "Password must be at least 8 characters long."

	case errors.Is(err, service.ErrPasswordTooLong):
		page.ErrorMessage = "Password must be at most 50 characters long."

	case errors.Is(err, service.ErrPasswordNoLetter):
		page.ErrorMessage = "Password must contain at least one letter."

	case errors.Is(err, service.ErrPasswordNoDigit):
		page.ErrorMessage = "Password must contain at least one digit."

	case errors.Is(err, service.ErrPasswordNoSpecial):
		page.ErrorMessage = "Password must contain at least one special character."

	default:
		slogx.FromContext(r.Context()).Error("password reset failed", "error", err)
		render(w, http.StatusInternalServerError, "reset_password.html", pageBase{
			ErrorMessage: "System error, try again later.",
		})
		return
	}
	render(w, http.StatusOK, "reset_password.html", page)
}
