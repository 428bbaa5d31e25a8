package memory

import (
	"context"
	"sync"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

type ledgerRepository struct {
	mu   sync.RWMutex
	last *model.FeedIdentity
}

func newLedgerRepository() *ledgerRepository {
	return &ledgerRepository{}
}

func (r *ledgerRepository) Get(ctx context.Context) (*model.FeedIdentity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.last == nil {
		return nil, nil
	}
	copied := *r.last
	return &copied, nil
}

func (r *ledgerRepository) Put(ctx context.Context, id *model.FeedIdentity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *id
	r.last = &copied
	return nil
}
