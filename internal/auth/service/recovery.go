package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/coffeelux/auth/internal/auth/domain"
	"github.com/coffeelux/auth/internal/auth/mailer"
	"github.com/coffeelux/auth/internal/auth/state"
	"github.com/coffeelux/auth/internal/auth/store"
	"github.com/coffeelux/auth/pkg/cryptox"
	"github.com/coffeelux/auth/pkg/slogx"
	"github.com/google/uuid"
)

var (
	ErrBadEmailFormat = errors.New("bad_email_format")
	ErrUnknownAccount = errors.New("unknown_account")
	ErrNotifyFailed   = errors.New("notify_failed")
	ErrNoRecoveryFlow = errors.New("no_recovery_flow")

	ErrCodeShape       = errors.New("code_shape")
	ErrCodeExpired     = errors.New("code_expired")
	ErrCodeMismatch    = errors.New("code_mismatch")
	ErrTooManyAttempts = errors.New("too_many_attempts")

	ErrResetWindowElapsed      = errors.New("reset_window_elapsed")
	ErrPasswordConfirmMismatch = errors.New("password_confirm_mismatch")
)

// RecoveryService drives the forgot-password flow: request a code, verify
// it, then reset the password inside the authorized window. Each flow is
// keyed by an opaque id carried in a browser cookie.
type RecoveryService struct {
	Store    store.Store
	State    state.Store
	Notifier mailer.Notifier

	Now func() time.Time
}

func (s *RecoveryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Start checks the account, issues a fresh code, and mails it. Callers must
// map ErrUnknownAccount to the same user-facing message as success so the
// endpoint cannot be used to probe which emails are registered.
func (s *RecoveryService) Start(ctx context.Context, email string) (domain.RecoveryFlow, error) {
	log := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return domain.RecoveryFlow{}, ErrBadEmailFormat
	}

	user, err := s.Store.Users().GetActiveUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("recovery requested for unknown account", "email", MaskEmail(email))
			return domain.RecoveryFlow{}, ErrUnknownAccount
		}
		return domain.RecoveryFlow{}, err
	}

	if err := s.issueCode(ctx, user.Email, user.FullName); err != nil {
		return domain.RecoveryFlow{}, err
	}

	flow := domain.RecoveryFlow{
		ID:        uuid.NewString(),
		Email:     user.Email,
		FullName:  user.FullName,
		StartedAt: s.now(),
	}
	if err := s.State.Flows().Put(ctx, flow); err != nil {
		return domain.RecoveryFlow{}, err
	}

	log.Info("recovery flow started", "email", MaskEmail(user.Email))
	return flow, nil
}

// Resend regenerates the code for an in-progress flow. The previous code is
// dropped even if it was still live.
func (s *RecoveryService) Resend(ctx context.Context, flowID string) (domain.RecoveryFlow, error) {
	flow, ok, err := s.State.Flows().Get(ctx, flowID)
	if err != nil {
		return domain.RecoveryFlow{}, err
	}
	if !ok {
		return domain.RecoveryFlow{}, ErrNoRecoveryFlow
	}

	if err := s.issueCode(ctx, flow.Email, flow.FullName); err != nil {
		return flow, err
	}

	// A resend restarts verification from scratch.
	flow.Verified = false
	flow.VerifiedAt = time.Time{}
	flow.StartedAt = s.now()
	if err := s.State.Flows().Put(ctx, flow); err != nil {
		return domain.RecoveryFlow{}, err
	}
	return flow, nil
}

func (s *RecoveryService) issueCode(ctx context.Context, email, fullName string) error {
	log := slogx.FromContext(ctx)

	code, err := cryptox.GenerateDigitCode(domain.OTPLength)
	if err != nil {
		return err
	}

	now := s.now()
	rec := domain.OTPRecord{
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(domain.OTPTTL),
	}
	if err := s.State.OTP().Put(ctx, rec); err != nil {
		return err
	}

	if err := s.Notifier.SendOTP(ctx, email, fullName, code); err != nil {
		// Leave no live code behind when delivery failed.
		_ = s.State.OTP().Delete(ctx, email)
		log.Error("otp delivery failed", "email", MaskEmail(email), "error", err)
		return ErrNotifyFailed
	}
	return nil
}

// Verify redeems the submitted code. On success the flow becomes reset
// authorized for the next fifteen minutes.
func (s *RecoveryService) Verify(ctx context.Context, flowID, code string) (domain.RecoveryFlow, error) {
	flow, ok, err := s.State.Flows().Get(ctx, flowID)
	if err != nil {
		return domain.RecoveryFlow{}, err
	}
	if !ok {
		return domain.RecoveryFlow{}, ErrNoRecoveryFlow
	}

	code = strings.TrimSpace(code)
	if !validCodeShape(code) {
		return flow, ErrCodeShape
	}

	status, err := s.State.OTP().Redeem(ctx, flow.Email, code, s.now())
	if err != nil {
		return flow, err
	}
	switch status {
	case state.RedeemOK:
	case state.RedeemWrongCode:
		return flow, ErrCodeMismatch
	case state.RedeemExhausted:
		return flow, ErrTooManyAttempts
	default:
		// Absent, expired, or already used codes all mean there is
		// nothing left to verify against.
		return flow, ErrCodeExpired
	}

	flow.Verified = true
	flow.VerifiedAt = s.now()
	if err := s.State.Flows().Put(ctx, flow); err != nil {
		return domain.RecoveryFlow{}, err
	}

	slogx.FromContext(ctx).Info("recovery code verified", "email", MaskEmail(flow.Email))
	return flow, nil
}

// Reset changes the password of a verified flow. The whole flow is torn down
// on success, so the same verification cannot authorize a second change.
func (s *RecoveryService) Reset(ctx context.Context, flowID, password, confirm string) error {
	log := slogx.FromContext(ctx)

	flow, ok, err := s.State.Flows().Get(ctx, flowID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoRecoveryFlow
	}
	if !flow.ResetAuthorized(s.now()) {
		return ErrResetWindowElapsed
	}

	if password != confirm {
		return ErrPasswordConfirmMismatch
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}

	user, err := s.Store.Users().GetActiveUserByEmail(ctx, flow.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoRecoveryFlow
		}
		return err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}

	// Confirmation mail is best effort; the reset already happened.
	if err := s.Notifier.SendPasswordChanged(ctx, user.Email, user.FullName); err != nil {
		log.Warn("password change notice failed", "email", MaskEmail(user.Email), "error", err)
	}

	_ = s.State.OTP().Delete(ctx, flow.Email)
	_ = s.State.Flows().Delete(ctx, flow.ID)

	log.Info("password reset completed", "user_id", user.ID)
	return nil
}

// Flow returns an in-progress recovery flow by id.
func (s *RecoveryService) Flow(ctx context.Context, flowID string) (domain.RecoveryFlow, bool, error) {
	return s.State.Flows().Get(ctx, flowID)
}

// RemainingMinutes reports whole minutes until the live code for email
// expires, zero when there is none.
func (s *RecoveryService) RemainingMinutes(ctx context.Context, email string) (int, error) {
	rec, ok, err := s.State.OTP().Peek(ctx, email)
	if err != nil {
		return 0, err
	}
	if !ok || !rec.Redeemable(s.now()) {
		return 0, nil
	}
	mins := int(rec.ExpiresAt.Sub(s.now()).Minutes())
	if mins < 0 {
		mins = 0
	}
	return mins, nil
}

func validCodeShape(code string) bool {
	if len(code) != domain.OTPLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
