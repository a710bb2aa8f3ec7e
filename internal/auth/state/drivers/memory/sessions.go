package memory

import (
	"context"
	"sync"
	"time"

	"github.com/coffeelux/auth/internal/auth/domain"
)

type sessionsRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newSessionsRepo() *sessionsRepo {
	return &sessionsRepo{sessions: make(map[string]domain.Session)}
}

func (r *sessionsRepo) Create(ctx context.Context, s domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ID] = s
	return nil
}

func (r *sessionsRepo) Get(ctx context.Context, id string, now time.Time) (domain.Session, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, false, nil
	}

	if s.Expired(now) {
		delete(r.sessions, id)
		return domain.Session{}, false, nil
	}

	// Last access is tracked but does not extend the absolute deadline.
	s.LastAccess = now
	r.sessions[id] = s
	return s, true, nil
}

func (r *sessionsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func (r *sessionsRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}
