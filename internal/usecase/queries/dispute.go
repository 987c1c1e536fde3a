package queries

import (
	"context"
)

const (
	DefaultDisputePageSize = 50
	MaxDisputePageSize     = 200
)

type DisputeReadStore interface {
	ListOpen(ctx context.Context, limit, offset int) ([]*DisputeView, error)
}

type DisputeQueries interface {
	ListOpen(ctx context.Context, limit, offset int) ([]*DisputeView, error)
}

type disputeQueriesImpl struct {
	store DisputeReadStore
}

func NewDisputeQueries(store DisputeReadStore) DisputeQueries {
	return &disputeQueriesImpl{store: store}
}

// ListOpen pages by offset; the admin queue is short and ordered oldest first.
func (q *disputeQueriesImpl) ListOpen(ctx context.Context, limit, offset int) ([]*DisputeView, error) {
	if limit <= 0 {
		limit = DefaultDisputePageSize
	}
	if limit > MaxDisputePageSize {
		limit = MaxDisputePageSize
	}
	if offset < 0 {
		offset = 0
	}
	return q.store.ListOpen(ctx, limit, offset)
}
