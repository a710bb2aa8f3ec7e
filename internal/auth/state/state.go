// Package state holds the ephemeral authentication state: sessions, one-time
// codes, and password-recovery flows. It is deliberately separate from the
// credential store; nothing here survives differently than its driver does
// (process memory, or Redis for multi-instance deployments).
package state

import (
	"context"
	"errors"
	"time"

	"github.com/coffeelux/auth/internal/auth/domain"
)

var ErrNotFound = errors.New("state: not found")

// RedeemStatus is the outcome of an atomic OTP redemption attempt.
type RedeemStatus int

const (
	// RedeemOK: the code matched and the record is now consumed.
	RedeemOK RedeemStatus = iota
	// RedeemNoRecord: no code exists for the email.
	RedeemNoRecord
	// RedeemExpired: the code existed but had passed its deadline; the
	// record has been removed.
	RedeemExpired
	// RedeemWrongCode: mismatch; the record survives for another try.
	RedeemWrongCode
	// RedeemExhausted: too many wrong attempts; the record is consumed.
	RedeemExhausted
)

// Store is the root interface over ephemeral auth state. It is injected into
// services so the backing driver can be swapped without touching call sites.
type Store interface {
	Sessions() Sessions
	OTP() OTP
	Flows() Flows

	Ping(ctx context.Context) error
	Close() error
}

// Sessions is the session registry. Expiry is absolute: a session dies
// domain.SessionTTL after creation no matter how often it is read.
type Sessions interface {
	// Create stores a new session under its token.
	Create(ctx context.Context, s domain.Session) error

	// Get returns the session for id if it is still within its absolute
	// lifetime at now, updating its last-access stamp. Expired sessions are
	// evicted on the spot and reported as absent. This is the sole read
	// path; there is no non-validating peek.
	Get(ctx context.Context, id string, now time.Time) (domain.Session, bool, error)

	// Delete removes the session unconditionally (logout).
	Delete(ctx context.Context, id string) error

	// DeleteExpired sweeps sessions past their deadline. Advisory: lazy
	// eviction in Get is the correctness mechanism. Drivers with native
	// TTLs may make this a no-op.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// OTP stores one-time codes keyed by case-folded email, at most one per key.
type OTP interface {
	// Put stores a record, silently dropping any existing record for the
	// same email even if it was unused and unexpired.
	Put(ctx context.Context, rec domain.OTPRecord) error

	// Redeem atomically checks code against the stored record at now and
	// applies the state transition: consume on match, count the attempt on
	// mismatch, evict on expiry. Two racing redemptions of the same code
	// cannot both return RedeemOK.
	Redeem(ctx context.Context, email, code string, now time.Time) (RedeemStatus, error)

	// Peek returns the record without side effects, for remaining-time
	// displays. ok is false when no record exists.
	Peek(ctx context.Context, email string) (domain.OTPRecord, bool, error)

	// Delete removes the record unconditionally.
	Delete(ctx context.Context, email string) error

	// DeleteExpired sweeps expired records. Advisory, as for Sessions.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// Flows tracks in-progress password recovery flows keyed by flow id.
type Flows interface {
	// Put stores or replaces a flow.
	Put(ctx context.Context, f domain.RecoveryFlow) error

	// Get returns the flow for id; ok is false when absent.
	Get(ctx context.Context, id string) (domain.RecoveryFlow, bool, error)

	// Delete removes the flow unconditionally.
	Delete(ctx context.Context, id string) error

	// DeleteExpired sweeps flows whose reset authorization can no longer
	// become valid. Advisory, as for Sessions.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// FlowTTL bounds how long an abandoned recovery flow is kept: long enough
// for the OTP lifetime plus the verified reset window.
const FlowTTL = domain.OTPTTL + domain.ResetWindow
