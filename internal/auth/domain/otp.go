package domain

import "time"

const (
	// OTPLength is the number of decimal digits in a one-time code.
	OTPLength = 6

	// OTPTTL is how long a code stays redeemable after generation.
	OTPTTL = 10 * time.Minute

	// OTPMaxAttempts bounds wrong-code guesses against a live code. The
	// record is consumed once the budget is exhausted, forcing a resend.
	OTPMaxAttempts = 5
)

// OTPRecord is a one-time code bound to an email address. At most one record
// exists per email; generating a new code drops the old record outright.
type OTPRecord struct {
	Email     string // case-folded key
	Code      string // OTPLength decimal digits
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
	Attempts  int // failed validations so far
}

// Expired reports whether the code has passed its deadline.
func (o OTPRecord) Expired(now time.Time) bool { return now.After(o.ExpiresAt) }

// Redeemable reports whether a correct code would still be accepted.
func (o OTPRecord) Redeemable(now time.Time) bool {
	return !o.Used && !o.Expired(now) && o.Attempts < OTPMaxAttempts
}
