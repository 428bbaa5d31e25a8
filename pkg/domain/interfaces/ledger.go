package interfaces

import (
	"context"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

// LedgerRepository persists the identity of the last processed feed. It is
// read once at the start of a run and written once at the end.
type LedgerRepository interface {
	// Get retrieves the last recorded feed identity.
	// Returns nil, nil when no run has been recorded yet.
	Get(ctx context.Context) (*model.FeedIdentity, error)

	// Put records the feed identity of the completed run
	Put(ctx context.Context, id *model.FeedIdentity) error
}
