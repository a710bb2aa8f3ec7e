// Package mailer delivers recovery emails. The SMTP implementation talks to
// a plain SMTP relay; the log implementation stands in for it in development
// and tests, where the code lands in the log instead of an inbox.
package mailer

import "context"

// Notifier sends the two recovery emails. Implementations must be safe for
// concurrent use.
type Notifier interface {
	// SendOTP delivers a verification code to the account owner.
	SendOTP(ctx context.Context, email, fullName, code string) error

	// SendPasswordChanged confirms a completed password reset.
	SendPasswordChanged(ctx context.Context, email, fullName string) error
}
