package service

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// Password strength failures name the missing criterion so the form can tell
// the user what to fix.
var (
	ErrPasswordTooShort  = errors.New("password_too_short")
	ErrPasswordTooLong   = errors.New("password_too_long")
	ErrPasswordNoLetter  = errors.New("password_needs_letter")
	ErrPasswordNoDigit   = errors.New("password_needs_digit")
	ErrPasswordNoSpecial = errors.New("password_needs_special")
)

const (
	passwordMinLen = 8
	passwordMaxLen = 50
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether s has the standard local@domain shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// ValidatePasswordStrength checks length and character-class requirements,
// returning the first missing criterion.
func ValidatePasswordStrength(password string) error {
	if len(password) < passwordMinLen {
		return ErrPasswordTooShort
	}
	if len(password) > passwordMaxLen {
		return ErrPasswordTooLong
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasLetter {
		return ErrPasswordNoLetter
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}
	if !hasSpecial {
		return ErrPasswordNoSpecial
	}
	return nil
}

// MaskEmail hides most of the local part for display on the verification
// page, e.g. "taylor@shop.vn" becomes "t***@shop.vn".
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}
	return email[:1] + "***" + email[at:]
}
