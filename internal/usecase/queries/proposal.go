package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ProposalReadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID, page *Page, limit int) ([]*ProposalView, error)
}

type ProposalQueries interface {
	ListMine(ctx context.Context, actorID uuid.UUID, cursor *Cursor, limit int) ([]*ProposalView, *Cursor, error)
}

type proposalQueriesImpl struct {
	store ProposalReadStore
}

func NewProposalQueries(store ProposalReadStore) ProposalQueries {
	return &proposalQueriesImpl{store: store}
}

// ListMine returns proposals where the actor is either party, newest first.
func (q *proposalQueriesImpl) ListMine(ctx context.Context, actorID uuid.UUID, cursor *Cursor, limit int) ([]*ProposalView, *Cursor, error) {
	limit = ValidateLimit(limit)
	page, err := pageFromCursor(cursor)
	if err != nil {
		return nil, nil, ErrInvalidCursor
	}
	rows, err := q.store.ListByUser(ctx, actorID, page, limit+1)
	if err != nil {
		return nil, nil, err
	}
	rows, next := trimPage(rows, limit, func(p *ProposalView) (time.Time, uuid.UUID) { return p.CreatedAt, p.ID })
	return rows, next, nil
}
