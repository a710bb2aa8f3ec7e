package memory

import (
	"context"
	"sync"
	"time"

	"github.com/coffeelux/auth/internal/auth/domain"
	"github.com/coffeelux/auth/internal/auth/state"
)

type flowsRepo struct {
	mu    sync.Mutex
	flows map[string]domain.RecoveryFlow
}

func newFlowsRepo() *flowsRepo {
	return &flowsRepo{flows: make(map[string]domain.RecoveryFlow)}
}

func (r *flowsRepo) Put(ctx context.Context, f domain.RecoveryFlow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flows[f.ID] = f
	return nil
}

func (r *flowsRepo) Get(ctx context.Context, id string) (domain.RecoveryFlow, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flows[id]
	return f, ok, nil
}

func (r *flowsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.flows, id)
	return nil
}

func (r *flowsRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	for id, f := range r.flows {
		if now.After(f.StartedAt.Add(state.FlowTTL)) {
			delete(r.flows, id)
			n++
		}
	}
	return n, nil
}
