package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/coffeelux/auth/internal/auth/domain"
	"github.com/coffeelux/auth/internal/auth/state"
)

type otpRepo struct {
	mu    sync.Mutex
	codes map[string]domain.OTPRecord
}

func newOTPRepo() *otpRepo {
	return &otpRepo{codes: make(map[string]domain.OTPRecord)}
}

func (r *otpRepo) Put(ctx context.Context, rec domain.OTPRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.Email = foldEmail(rec.Email)
	r.codes[rec.Email] = rec
	return nil
}

func (r *otpRepo) Redeem(ctx context.Context, email, code string, now time.Time) (state.RedeemStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := foldEmail(email)
	rec, ok := r.codes[key]
	if !ok {
		return state.RedeemNoRecord, nil
	}

	if rec.Used {
		return state.RedeemNoRecord, nil
	}

	if rec.Expired(now) {
		delete(r.codes, key)
		return state.RedeemExpired, nil
	}

	if rec.Code != code {
		rec.Attempts++
		if rec.Attempts >= domain.OTPMaxAttempts {
			delete(r.codes, key)
			return state.RedeemExhausted, nil
		}
		r.codes[key] = rec
		return state.RedeemWrongCode, nil
	}

	rec.Used = true
	r.codes[key] = rec
	return state.RedeemOK, nil
}

func (r *otpRepo) Peek(ctx context.Context, email string) (domain.OTPRecord, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.codes[foldEmail(email)]
	return rec, ok, nil
}

func (r *otpRepo) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.codes, foldEmail(email))
	return nil
}

func (r *otpRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	for key, rec := range r.codes {
		if rec.Expired(now) {
			delete(r.codes, key)
			n++
		}
	}
	return n, nil
}

func foldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
