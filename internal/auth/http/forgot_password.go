package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/coffeelux/auth/internal/auth/service"
	"github.com/coffeelux/auth/pkg/slogx"
	"github.com/google/uuid"
)

type forgotPage struct {
	pageBase
	Email string
}

// ForgotPasswordHandler starts and restarts the password recovery flow.
type ForgotPasswordHandler struct {
	Recovery *service.RecoveryService
}

func (h *ForgotPasswordHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// The resend link on the verify page is a plain anchor, so the action
	// dispatches on GET as well as on the form POST.
	if r.URL.Query().Get("action") == "resend" {
		h.handleResend(w, r)
		return
	}

	var page forgotPage
	if r.URL.Query().Has("expired") {
		page.ErrorMessage = "Your reset window has expired. Request a new code."
	}
	render(w, http.StatusOK, "forgot_password.html", page)
}

func (h *ForgotPasswordHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("action") == "resend" {
		h.handleResend(w, r)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))

	flow, err := h.Recovery.Start(r.Context(), email)
	switch {
	case err == nil:
		setFlowCookie(w, flow.ID)

	case errors.Is(err, service.ErrUnknownAccount):
		// Same response as success, including a (decoy) flow cookie, so
		// the endpoint cannot be used to probe which emails exist.
		setFlowCookie(w, uuid.NewString())

	case errors.Is(err, service.ErrBadEmailFormat):
		render(w, http.StatusOK, "forgot_password.html", forgotPage{
			pageBase: pageBase{ErrorMessage: "Enter a valid email address."},
			Email:    email,
		})
		return

	case errors.Is(err, service.ErrNotifyFailed):
		render(w, http.StatusOK, "forgot_password.html", forgotPage{
			pageBase: pageBase{ErrorMessage: "We could not send the email. Try again in a moment."},
			Email:    email,
		})
		return

	default:
		slogx.FromContext(r.Context()).Error("recovery start failed", "error", err)
		render(w, http.StatusInternalServerError, "forgot_password.html", forgotPage{
			pageBase: pageBase{ErrorMessage: "System error, try again later."},
			Email:    email,
		})
		return
	}

	http.Redirect(w, r, "/verify-otp", http.StatusSeeOther)
}

func (h *ForgotPasswordHandler) handleResend(w http.ResponseWriter, r *http.Request) {
	_, err := h.Recovery.Resend(r.Context(), flowIDFromRequest(r))
	switch {
	case err == nil:
		http.Redirect(w, r, "/verify-otp?resent=1", http.StatusSeeOther)

	case errors.Is(err, service.ErrNoRecoveryFlow):
		http.Redirect(w, r, "/forgot-password", http.StatusSeeOther)

	case errors.Is(err, service.ErrNotifyFailed):
		render(w, http.StatusOK, "forgot_password.html", forgotPage{
			pageBase: pageBase{ErrorMessage: "We could not send the email. Try again in a moment."},
		})

	default:
		slogx.FromContext(r.Context()).Error("recovery resend failed", "error", err)
		render(w, http.StatusInternalServerError, "forgot_password.html", forgotPage{
			pageBase: pageBase{ErrorMessage: "System error, try again later."},
		})
	}
}
