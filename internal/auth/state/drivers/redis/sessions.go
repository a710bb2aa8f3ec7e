package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/coffeelux/auth/internal/auth/domain"
	goredis "github.com/redis/go-redis/v9"
)

type sessionsRepo struct {
	rdb *goredis.Client
}

// wireSession is the stored form of a session. The user snapshot is embedded
// whole so a lookup needs no trip to the credential store.
type wireSession struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	RoleID     int64     `json:"role_id"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	LastAccess time.Time `json:"last_access"`
}

func toWire(s domain.Session) wireSession {
	return wireSession{
		ID:         s.ID,
		UserID:     s.User.ID,
		FullName:   s.User.FullName,
		Email:      s.User.Email,
		RoleID:     s.User.RoleID,
		Role:       s.Role.Name(),
		CreatedAt:  s.CreatedAt,
		LastAccess: s.LastAccess,
	}
}

func fromWire(w wireSession) domain.Session {
	return domain.Session{
		ID: w.ID,
		User: domain.User{
			ID:       w.UserID,
			FullName: w.FullName,
			Email:    w.Email,
			RoleID:   w.RoleID,
			Active:   true,
		},
		Role:       domain.RoleFromName(w.Role),
		CreatedAt:  w.CreatedAt,
		LastAccess: w.LastAccess,
	}
}

func (r *sessionsRepo) Create(ctx context.Context, s domain.Session) error {
	buf, err := json.Marshal(toWire(s))
	if err != nil {
		return err
	}

	// Redis expires the key at the absolute deadline; Get double-checks
	// against the caller's clock so a lagging server clock cannot extend a
	// session.
	ttl := time.Until(s.ExpiresAt())
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, sessionKeyPrefix+s.ID, buf, ttl).Err()
}

func (r *sessionsRepo) Get(ctx context.Context, id string, now time.Time) (domain.Session, bool, error) {
	key := sessionKeyPrefix + id

	buf, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, err
	}

	var w wireSession
	if err := json.Unmarshal(buf, &w); err != nil {
		// Corrupt entries are dropped rather than surfaced to callers.
		_ = r.rdb.Del(ctx, key).Err()
		return domain.Session{}, false, nil
	}

	s := fromWire(w)
	if s.Expired(now) {
		_ = r.rdb.Del(ctx, key).Err()
		return domain.Session{}, false, nil
	}

	s.LastAccess = now
	if buf, err := json.Marshal(toWire(s)); err == nil {
		_ = r.rdb.Set(ctx, key, buf, goredis.KeepTTL).Err()
	}
	return s, true, nil
}

func (r *sessionsRepo) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

func (r *sessionsRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	// Native key TTLs already evict expired sessions.
	return 0, nil
}
