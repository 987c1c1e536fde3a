package dispute

import (
	"strings"
	"time"

	"inspection-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

type Reason string

const (
	ReasonNoShow               Reason = "no_show"
	ReasonWrongInfo            Reason = "wrong_info"
	ReasonIncompleteInspection Reason = "incomplete_inspection"
	ReasonDamage               Reason = "damage"
	ReasonOther                Reason = "other"
)

func (r Reason) IsValid() bool {
	switch r {
	case ReasonNoShow, ReasonWrongInfo, ReasonIncompleteInspection, ReasonDamage, ReasonOther:
		return true
	default:
		return false
	}
}

type Status string

// StatusClosed is accepted by storage but no operation produces it yet.
const (
	StatusOpen             Status = "open"
	StatusResolvedBuyer    Status = "resolved_buyer"
	StatusResolvedMechanic Status = "resolved_mechanic"
	StatusClosed           Status = "closed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusResolvedBuyer, StatusResolvedMechanic, StatusClosed:
		return true
	default:
		return false
	}
}

type Resolution string

const (
	ResolutionBuyer    Resolution = "buyer"
	ResolutionMechanic Resolution = "mechanic"
)

func (r Resolution) IsValid() bool {
	return r == ResolutionBuyer || r == ResolutionMechanic
}

var (
	ErrInvalidReason      = errs.New("invalid dispute reason")
	ErrDescriptionMissing = errs.New("a description is required")
	ErrInvalidResolution  = errs.New("resolution must be buyer or mechanic")
	ErrAlreadyResolved    = errs.New("dispute already resolved")
)

type Case struct {
	id             uuid.UUID
	bookingID      uuid.UUID
	openedBy       uuid.UUID
	reason         Reason
	description    string
	status         Status
	resolutionNote *string
	resolvedBy     *uuid.UUID
	resolvedAt     *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// Open requires a description except for no-shows, where the absence speaks for itself.
func Open(bookingID, openedBy uuid.UUID, reason Reason, description string, now time.Time) (*Case, error) {
	if !reason.IsValid() {
		return nil, ErrInvalidReason
	}
	description = strings.TrimSpace(description)
	if reason != ReasonNoShow && description == "" {
		return nil, ErrDescriptionMissing
	}
	return &Case{
		id:          uuid.New(),
		bookingID:   bookingID,
		openedBy:    openedBy,
		reason:      reason,
		description: description,
		status:      StatusOpen,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func Reconstruct(
	id, bookingID, openedBy uuid.UUID,
	reason Reason,
	description string,
	status Status,
	resolutionNote *string,
	resolvedBy *uuid.UUID,
	resolvedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Case {
	return &Case{
		id:             id,
		bookingID:      bookingID,
		openedBy:       openedBy,
		reason:         reason,
		description:    description,
		status:         status,
		resolutionNote: resolutionNote,
		resolvedBy:     resolvedBy,
		resolvedAt:     resolvedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (c *Case) Resolve(in Resolution, adminID uuid.UUID, note string, now time.Time) error {
	if !in.IsValid() {
		return ErrInvalidResolution
	}
	if c.status != StatusOpen {
		return ErrAlreadyResolved
	}
	if in == ResolutionBuyer {
		c.status = StatusResolvedBuyer
	} else {
		c.status = StatusResolvedMechanic
	}
	if note = strings.TrimSpace(note); note != "" {
		c.resolutionNote = &note
	}
	c.resolvedBy = &adminID
	c.resolvedAt = &now
	c.updatedAt = now
	return nil
}

func (c *Case) ID() uuid.UUID           { return c.id }
func (c *Case) BookingID() uuid.UUID    { return c.bookingID }
func (c *Case) OpenedBy() uuid.UUID     { return c.openedBy }
func (c *Case) Reason() Reason          { return c.reason }
func (c *Case) Description() string     { return c.description }
func (c *Case) Status() Status          { return c.status }
func (c *Case) ResolutionNote() *string { return c.resolutionNote }
func (c *Case) ResolvedBy() *uuid.UUID  { return c.resolvedBy }
func (c *Case) ResolvedAt() *time.Time  { return c.resolvedAt }
func (c *Case) CreatedAt() time.Time    { return c.createdAt }
func (c *Case) UpdatedAt() time.Time    { return c.updatedAt }
