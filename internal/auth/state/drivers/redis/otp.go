package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/coffeelux/auth/internal/auth/domain"
	"github.com/coffeelux/auth/internal/auth/state"
	goredis "github.com/redis/go-redis/v9"
)

type otpRepo struct {
	rdb *goredis.Client
}

// redeemScript applies the whole check-then-consume transition server side,
// so two racing redemptions of the same code cannot both succeed.
// Returns: 0 ok, 1 no record, 2 expired, 3 wrong code, 4 exhausted.
const redeemScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 1
end
if redis.call("HGET", KEYS[1], "used") == "1" then
  return 1
end
local expires = tonumber(redis.call("HGET", KEYS[1], "expires_at"))
if tonumber(ARGV[2]) > expires then
  redis.call("DEL", KEYS[1])
  return 2
end
if redis.call("HGET", KEYS[1], "code") ~= ARGV[1] then
  local attempts = redis.call("HINCRBY", KEYS[1], "attempts", 1)
  if attempts >= tonumber(ARGV[3]) then
    redis.call("DEL", KEYS[1])
    return 4
  end
  return 3
end
redis.call("HSET", KEYS[1], "used", "1")
return 0
`

var redeemLua = goredis.NewScript(redeemScript)

func (r *otpRepo) Put(ctx context.Context, rec domain.OTPRecord) error {
	key := otpKey(rec.Email)

	used := "0"
	if rec.Used {
		used = "1"
	}

	pipe := r.rdb.TxPipeline()
	// Drop any prior record wholesale so stale attempts counters never leak
	// into the new code.
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		"code", rec.Code,
		"created_at", rec.CreatedAt.Unix(),
		"expires_at", rec.ExpiresAt.Unix(),
		"used", used,
		"attempts", rec.Attempts,
	)
	pipe.ExpireAt(ctx, key, rec.ExpiresAt)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *otpRepo) Redeem(ctx context.Context, email, code string, now time.Time) (state.RedeemStatus, error) {
	res, err := redeemLua.Run(ctx, r.rdb,
		[]string{otpKey(email)},
		code, now.Unix(), domain.OTPMaxAttempts,
	).Int64()
	if err != nil {
		return state.RedeemNoRecord, err
	}

	switch res {
	case 0:
		return state.RedeemOK, nil
	case 1:
		return state.RedeemNoRecord, nil
	case 2:
		return state.RedeemExpired, nil
	case 3:
		return state.RedeemWrongCode, nil
	case 4:
		return state.RedeemExhausted, nil
	default:
		return state.RedeemNoRecord, fmt.Errorf("redis: unexpected redeem result %d", res)
	}
}

func (r *otpRepo) Peek(ctx context.Context, email string) (domain.OTPRecord, bool, error) {
	fields, err := r.rdb.HGetAll(ctx, otpKey(email)).Result()
	if err != nil {
		return domain.OTPRecord{}, false, err
	}
	if len(fields) == 0 {
		return domain.OTPRecord{}, false, nil
	}

	createdAt, _ := strconv.ParseInt(fields["created_at"], 10, 64)
	expiresAt, _ := strconv.ParseInt(fields["expires_at"], 10, 64)
	attempts, _ := strconv.Atoi(fields["attempts"])

	return domain.OTPRecord{
		Email:     foldEmail(email),
		Code:      fields["code"],
		CreatedAt: time.Unix(createdAt, 0),
		ExpiresAt: time.Unix(expiresAt, 0),
		Used:      fields["used"] == "1",
		Attempts:  attempts,
	}, true, nil
}

func (r *otpRepo) Delete(ctx context.Context, email string) error {
	return r.rdb.Del(ctx, otpKey(email)).Err()
}

func (r *otpRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	// Native key TTLs already evict expired codes.
	return 0, nil
}

func otpKey(email string) string {
	return otpKeyPrefix + foldEmail(email)
}

func foldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
