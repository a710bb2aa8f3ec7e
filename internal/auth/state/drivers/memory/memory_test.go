package memory

import (
	"context"
	"testing"
	"time"

	"github.com/coffeelux/auth/internal/auth/domain"
	"github.com/coffeelux/auth/internal/auth/state"
	"github.com/stretchr/testify/require"
)

func testSession(id string, createdAt time.Time) domain.Session {
	return domain.Session{
		ID: id,
		User: domain.User{
			ID:       1,
			FullName: "Tran Thi B",
			Email:    "b@coffeelux.vn",
			RoleID:   domain.RoleBarista.ID(),
			Active:   true,
		},
		Role:       domain.RoleBarista,
		CreatedAt:  createdAt,
		LastAccess: createdAt,
	}
}

func TestSessions_Lifecycle(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	now := time.Now()

	_, ok, err := st.Sessions().Get(ctx, "unknown", now)
	require.NoError(t, err)
	require.False(t, ok, "unknown id must be invalid")

	require.NoError(t, st.Sessions().Create(ctx, testSession("sess-1", now)))

	s, ok, err := st.Sessions().Get(ctx, "sess-1", now.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "b@coffeelux.vn", s.User.Email)
	require.Equal(t, domain.RoleBarista, s.Role)

	require.NoError(t, st.Sessions().Delete(ctx, "sess-1"))

	_, ok, err = st.Sessions().Get(ctx, "sess-1", now)
	require.NoError(t, err)
	require.False(t, ok, "destroyed session must be invalid")
}

func TestSessions_AbsoluteExpiry(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	now := time.Now()

	require.NoError(t, st.Sessions().Create(ctx, testSession("sess-2", now)))

	// Repeated access before the deadline does not extend it.
	for i := range 29 {
		_, ok, err := st.Sessions().Get(ctx, "sess-2", now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.True(t, ok)
	}

	_, ok, err := st.Sessions().Get(ctx, "sess-2", now.Add(31*time.Minute))
	require.NoError(t, err)
	require.False(t, ok, "session must die 30 minutes after creation")

	// Lazy eviction: the expired session is gone even at an earlier clock.
	_, ok, err = st.Sessions().Get(ctx, "sess-2", now)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSessions_LastAccessUpdated(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	now := time.Now()

	require.NoError(t, st.Sessions().Create(ctx, testSession("sess-3", now)))

	later := now.Add(5 * time.Minute)
	s, ok, err := st.Sessions().Get(ctx, "sess-3", later)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, later, s.LastAccess)
	require.Equal(t, now, s.CreatedAt, "creation time must not move")
}

func TestSessions_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	now := time.Now()

	require.NoError(t, st.Sessions().Create(ctx, testSession("old", now.Add(-time.Hour))))
	require.NoError(t, st.Sessions().Create(ctx, testSession("fresh", now)))

	n, err := st.Sessions().DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, ok, err := st.Sessions().Get(ctx, "fresh", now)
	require.NoError(t, err)
	require.True(t, ok)
}

func testOTP(email, code string, createdAt time.Time) domain.OTPRecord {
	return domain.OTPRecord{
		Email:     email,
		Code:      code,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(domain.OTPTTL),
	}
}

func TestOTP_RedeemOnce(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	now := time.Now()

	require.NoError(t, st.OTP().Put(ctx, testOTP("a@coffeelux.vn", "123456", now)))

	status, err := st.OTP().Redeem(ctx, "a@coffeelux.vn", "123456", now.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, state.RedeemOK, status)

	// Same code again: the record is consumed.
	status, err = st.OTP().Redeem(ctx, "a@coffeelux.vn", "123456", now.Add(2*time.Minute))
	require.NoError(t, err)
	require.Equal(t, state.RedeemNoRecord, status)
}

func TestOTP_WrongCodeDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	now := time.Now()

	require.NoError(t, st.OTP().Put(ctx, testOTP("a@coffeelux.vn", "123456", now)))

	status, err := st.OTP().Redeem(ctx, "a@coffeelux.vn", "000000", now)
	require.NoError(t, err)
	require.Equal(t, state.RedeemWrongCode, status)

	// The correct code still works after a mismatch.
	status, err = st.OTP().Redeem(ctx, "a@coffeelux.vn", "123456", now)
	require.NoError(t, err)
	require.Equal(t, state.RedeemOK, status)
}

func TestOTP_AttemptBudget(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	now := time.Now()

	require.NoError(t, st.OTP().Put(ctx, testOTP("a@coffeelux.vn", "123456", now)))

	for i := range domain.OTPMaxAttempts - 1 {
		status, err := st.OTP().Redeem(ctx, "a@coffeelux.vn", "999999", now)
		require.NoError(t, err)
		require.Equal(t, state.RedeemWrongCode, status, "attempt %d", i+1)
	}

	status, err := st.OTP().Redeem(ctx, "a@coffeelux.vn", "999999", now)
	require.NoError(t, err)
	require.Equal(t, state.RedeemExhausted, status)

	// Even the correct code is dead once the budget is exhausted.
	status, err = st.OTP().Redeem(ctx, "a@coffeelux.vn", "123456", now)
	require.NoError(t, err)
	require.Equal(t, state.RedeemNoRecord, status)
}

func TestOTP_Expiry(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	now := time.Now()

	require.NoError(t, st.OTP().Put(ctx, testOTP("a@coffeelux.vn", "123456", now)))

	status, err := st.OTP().Redeem(ctx, "a@coffeelux.vn", "123456", now.Add(11*time.Minute))
	require.NoError(t, err)
	require.Equal(t, state.RedeemExpired, status)

	// Expired record was evicted as a side effect.
	_, ok, err := st.OTP().Peek(ctx, "a@coffeelux.vn")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOTP_RegenerateDropsOldCode(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	now := time.Now()

	require.NoError(t, st.OTP().Put(ctx, testOTP("a@coffeelux.vn", "111111", now)))
	require.NoError(t, st.OTP().Put(ctx, testOTP("a@coffeelux.vn", "222222", now)))

	status, err := st.OTP().Redeem(ctx, "a@coffeelux.vn", "111111", now)
	require.NoError(t, err)
	require.Equal(t, state.RedeemWrongCode, status, "old code must not match")

	status, err = st.OTP().Redeem(ctx, "a@coffeelux.vn", "222222", now)
	require.NoError(t, err)
	require.Equal(t, state.RedeemOK, status)
}

func TestOTP_EmailCaseFolded(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	now := time.Now()

	require.NoError(t, st.OTP().Put(ctx, testOTP("A@CoffeeLux.VN", "123456", now)))

	status, err := st.OTP().Redeem(ctx, "a@coffeelux.vn", "123456", now)
	require.NoError(t, err)
	require.Equal(t, state.RedeemOK, status)
}

func TestFlows_Lifecycle(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	now := time.Now()

	flow := domain.RecoveryFlow{
		ID:        "flow-1",
		Email:     "a@coffeelux.vn",
		FullName:  "Nguyen Van A",
		StartedAt: now,
	}
	require.NoError(t, st.Flows().Put(ctx, flow))

	got, ok, err := st.Flows().Get(ctx, "flow-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, flow, got)

	// Verification updates in place.
	flow.Verified = true
	flow.VerifiedAt = now.Add(time.Minute)
	require.NoError(t, st.Flows().Put(ctx, flow))

	got, ok, err = st.Flows().Get(ctx, "flow-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, got.Verified)

	require.NoError(t, st.Flows().Delete(ctx, "flow-1"))
	_, ok, err = st.Flows().Get(ctx, "flow-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFlows_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	now := time.Now()

	require.NoError(t, st.Flows().Put(ctx, domain.RecoveryFlow{ID: "stale", StartedAt: now.Add(-2 * time.Hour)}))
	require.NoError(t, st.Flows().Put(ctx, domain.RecoveryFlow{ID: "live", StartedAt: now}))

	n, err := st.Flows().DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, ok, err := st.Flows().Get(ctx, "live")
	require.NoError(t, err)
	require.True(t, ok)
}
