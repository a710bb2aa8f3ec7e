package http

import (
	"errors"
	"net/http"

	"github.com/coffeelux/auth/internal/auth/domain"
	"github.com/coffeelux/auth/internal/auth/service"
	"github.com/coffeelux/auth/pkg/slogx"
)

type verifyPage struct {
	pageBase
	MaskedEmail      string
	CodeLength       int
	RemainingMinutes int
}

// VerifyOTPHandler checks the emailed code and authorizes the reset step.
type VerifyOTPHandler struct {
	Recovery *service.RecoveryService
}

func (h *VerifyOTPHandler) page(r *http.Request) verifyPage {
	page := verifyPage{
		MaskedEmail: "your email",
		CodeLength:  domain.OTPLength,
	}

	flow, ok, err := h.Recovery.Flow(r.Context(), flowIDFromRequest(r))
	if err != nil || !ok {
		// Without a live flow the page still renders generically, so its
		// shape cannot reveal whether an email was registered.
		return page
	}

	page.MaskedEmail = service.MaskEmail(flow.Email)
	if mins, err := h.Recovery.RemainingMinutes(r.Context(), flow.Email); err == nil {
		page.RemainingMinutes = mins
	}
	return page
}

func (h *VerifyOTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	page := h.page(r)
	if r.URL.Query().Has("resent") {
		page.SuccessMessage = "A new code has been sent."
	}
	render(w, http.StatusOK, "verify_otp.html", page)
}

func (h *VerifyOTPHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	_, err := h.Recovery.Verify(r.Context(), flowIDFromRequest(r), r.PostFormValue("otp"))
	if err == nil {
		http.Redirect(w, r, "/reset-password", http.StatusSeeOther)
		return
	}

	page := h.page(r)
	status := http.StatusOK
	switch {
	case errors.Is(err, service.ErrCodeShape):
		page.ErrorMessage = "Enter the 6-digit code from the email."

	case errors.Is(err, service.ErrCodeMismatch):
		page.ErrorMessage = "Incorrect code, try again."

	case errors.Is(err, service.ErrTooManyAttempts):
		page.ErrorMessage = "Too many incorrect attempts. Request a new code."

	case errors.Is(err, service.ErrCodeExpired), errors.Is(err, service.ErrNoRecoveryFlow):
		page.ErrorMessage = "The code has expired or is no longer valid. Request a new one."

	default:
		slogx.FromContext(r.Context()).Error("code verification failed", "error", err)
		page.ErrorMessage = "System error, try again later."
		status = http.StatusInternalServerError
	}
	render(w, status, "verify_otp.html", page)
}
