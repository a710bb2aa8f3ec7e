package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/coffeelux/auth/internal/auth/service"
	"github.com/coffeelux/auth/pkg/slogx"
)

type loginPage struct {
	pageBase
	Email     string
	Remember  bool
	ReturnURL string
}

// LoginHandler renders the sign-in form and processes credential posts.
type LoginHandler struct {
	Auth *service.AuthService
}

func (h *LoginHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// An already signed-in caller goes straight to their dashboard.
	if sess, ok, _ := h.Auth.ValidateSession(r.Context(), sessionIDFromRequest(r)); ok {
		http.Redirect(w, r, sess.Role.LandingPath(), http.StatusFound)
		return
	}

	page := loginPage{ReturnURL: r.URL.Query().Get("returnUrl")}
	switch {
	case r.URL.Query().Has("reset"):
		page.SuccessMessage = "Your password has been updated. Sign in with your new password."
	case r.URL.Query().Has("loggedout"):
		page.SuccessMessage = "You have been signed out."
	}
	render(w, http.StatusOK, "login.html", page)
}

func (h *LoginHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	remember := r.PostFormValue("remember") != ""
	returnURL := r.PostFormValue("returnUrl")

	sess, err := h.Auth.Login(r.Context(), email, password)
	if err != nil {
		page := loginPage{Email: email, Remember: remember, ReturnURL: returnURL}
		status := http.StatusUnauthorized
		if errors.Is(err, service.ErrInvalidCredentials) {
			page.ErrorMessage = "Invalid email or password."
		} else {
			slogx.FromContext(r.Context()).Error("login failed", "error", err)
			page.ErrorMessage = "System error, try again later."
			status = http.StatusInternalServerError
		}
		render(w, status, "login.html", page)
		return
	}

	setSessionCookie(w, sess.ID)
	if remember {
		setRememberCookie(w, sess.ID)
	}

	target := sess.Role.LandingPath()
	if safeReturnURL(returnURL) {
		target = returnURL
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeReturnURL accepts only same-site absolute paths, so the login redirect
// cannot be turned into an open redirector.
func safeReturnURL(u string) bool {
	return strings.HasPrefix(u, "/") && !strings.HasPrefix(u, "//") && !strings.ContainsAny(u, "\\\r\n")
}
