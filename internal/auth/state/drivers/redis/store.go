// Package redis is the shared state driver for multi-instance deployments.
// Sessions, codes, and flows get native Redis TTLs, so the housekeeping
// sweeps are no-ops here; per-key atomicity for OTP redemption comes from a
// server-side Lua script.
package redis

import (
	"context"

	"github.com/coffeelux/auth/internal/auth/state"
	goredis "github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "auth:sess:"
	otpKeyPrefix     = "auth:otp:"
	flowKeyPrefix    = "auth:flow:"
)

type Store struct {
	rdb *goredis.Client

	sessions *sessionsRepo
	otp      *otpRepo
	flows    *flowsRepo
}

func NewStore(addr, password string, db int) *Store {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewStoreWithClient(rdb)
}

// NewStoreWithClient wraps an existing client. Tests use this with miniredis.
func NewStoreWithClient(rdb *goredis.Client) *Store {
	return &Store{
		rdb:      rdb,
		sessions: &sessionsRepo{rdb: rdb},
		otp:      &otpRepo{rdb: rdb},
		flows:    &flowsRepo{rdb: rdb},
	}
}

func (s *Store) Sessions() state.Sessions { return s.sessions }
func (s *Store) OTP() state.OTP           { return s.otp }
func (s *Store) Flows() state.Flows       { return s.flows }

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error { return s.rdb.Close() }
