package response

import (
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/google/uuid"
)

type AcceptProposalResponse struct {
	BookingID    uuid.UUID `json:"booking_id"`
	ClientSecret string    `json:"client_secret"`
}

func FromAcceptProposalResult(r *commands.AcceptProposalResult) *AcceptProposalResponse {
	return &AcceptProposalResponse{BookingID: r.BookingID, ClientSecret: r.ClientSecret}
}

type ProposalListResponse struct {
	Items      []*queries.ProposalView `json:"items"`
	NextCursor string                  `json:"next_cursor,omitempty"`
}

func FromProposalList(items []*queries.ProposalView, next *queries.Cursor) *ProposalListResponse {
	if items == nil {
		items = []*queries.ProposalView{}
	}
	return &ProposalListResponse{Items: items, NextCursor: cursorString(next)}
}
