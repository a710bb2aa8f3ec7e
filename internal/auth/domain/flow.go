package domain

import "time"

// ResetWindow is how long a verified OTP authorizes a password change.
const ResetWindow = 15 * time.Minute

// RecoveryFlow is the browser-session state of one password recovery
// attempt: Anonymous -> OTPRequested -> OTPVerified -> Completed. The flow
// id travels in a short-lived cookie; everything else stays server side.
type RecoveryFlow struct {
	ID         string
	Email      string // case-folded
	FullName   string // for email greetings
	StartedAt  time.Time
	Verified   bool
	VerifiedAt time.Time
}

// ResetAuthorized reports whether the flow may change the password: the OTP
// was verified and the 15-minute window has not elapsed.
func (f RecoveryFlow) ResetAuthorized(now time.Time) bool {
	return f.Verified && !now.After(f.VerifiedAt.Add(ResetWindow))
}
