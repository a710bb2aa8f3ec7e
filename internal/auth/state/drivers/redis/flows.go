package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/coffeelux/auth/internal/auth/domain"
	"github.com/coffeelux/auth/internal/auth/state"
	goredis "github.com/redis/go-redis/v9"
)

type flowsRepo struct {
	rdb *goredis.Client
}

type wireFlow struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	StartedAt  time.Time `json:"started_at"`
	Verified   bool      `json:"verified"`
	VerifiedAt time.Time `json:"verified_at"`
}

func (r *flowsRepo) Put(ctx context.Context, f domain.RecoveryFlow) error {
	buf, err := json.Marshal(wireFlow(f))
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, flowKeyPrefix+f.ID, buf, state.FlowTTL).Err()
}

func (r *flowsRepo) Get(ctx context.Context, id string) (domain.RecoveryFlow, bool, error) {
	buf, err := r.rdb.Get(ctx, flowKeyPrefix+id).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.RecoveryFlow{}, false, nil
	}
	if err != nil {
		return domain.RecoveryFlow{}, false, err
	}

	var w wireFlow
	if err := json.Unmarshal(buf, &w); err != nil {
		_ = r.rdb.Del(ctx, flowKeyPrefix+id).Err()
		return domain.RecoveryFlow{}, false, nil
	}
	return domain.RecoveryFlow(w), true, nil
}

func (r *flowsRepo) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, flowKeyPrefix+id).Err()
}

func (r *flowsRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	// Native key TTLs already evict abandoned flows.
	return 0, nil
}
