package response

import (
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookingResponse struct {
	ID           uuid.UUID `json:"id"`
	ClientSecret string    `json:"client_secret"`
	Replayed     bool      `json:"replayed"`
}

func FromCreateBookingResult(r *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{ID: r.BookingID, ClientSecret: r.ClientSecret, Replayed: r.IsReplayed}
}

type CheckInResponse struct {
	Code      string     `json:"code,omitempty"`
	DisputeID *uuid.UUID `json:"dispute_id,omitempty"`
}

func FromCheckInResult(r *commands.CheckInResult) *CheckInResponse {
	return &CheckInResponse{Code: r.Code, DisputeID: r.DisputeID}
}

type CheckOutResponse struct {
	ProofID   uuid.UUID `json:"proof_id"`
	ReportURL string    `json:"report_url"`
	Replayed  bool      `json:"replayed"`
}

func FromCheckOutResult(r *commands.CheckOutResult) *CheckOutResponse {
	return &CheckOutResponse{ProofID: r.ProofID, ReportURL: r.ReportURL, Replayed: r.IsReplayed}
}

type ValidateBookingResponse struct {
	Status    string     `json:"status"`
	DisputeID *uuid.UUID `json:"dispute_id,omitempty"`
}

func FromValidationResult(r *commands.ValidationResult) *ValidateBookingResponse {
	return &ValidateBookingResponse{Status: string(r.Status), DisputeID: r.DisputeID}
}

// BookingListResponse holds role projections; each item serializes as its concrete view.
type BookingListResponse struct {
	Items      []queries.BookingView `json:"items" swaggertype:"array,object"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

func FromBookingList(items []queries.BookingView, next *queries.Cursor) *BookingListResponse {
	if items == nil {
		items = []queries.BookingView{}
	}
	return &BookingListResponse{Items: items, NextCursor: cursorString(next)}
}

func cursorString(c *queries.Cursor) string {
	if c == nil {
		return ""
	}
	return c.After
}
