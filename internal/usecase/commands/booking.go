package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/pricing"
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/pkg/clock"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	createBookingEndpoint = "POST /api/bookings"
	idempotencyTTL        = 24 * time.Hour
)

type CreateBookingInput struct {
	BuyerID        uuid.UUID `json:"-"`
	IdempotencyKey uuid.UUID `json:"-"`
	SlotID         uuid.UUID `json:"slot_id"`
	VehicleType    string    `json:"vehicle_type"`
	VehicleBrand   string    `json:"vehicle_brand"`
	VehicleModel   string    `json:"vehicle_model"`
	VehicleYear    int       `json:"vehicle_year"`
	VehiclePlate   string    `json:"vehicle_plate"`
	MeetingLat     float64   `json:"meeting_lat"`
	MeetingLng     float64   `json:"meeting_lng"`
	MeetingAddress string    `json:"meeting_address"`
	OBDRequested   bool      `json:"obd_requested"`
}

type CreateBookingResult struct {
	BookingID uuid.UUID
	// ClientSecret is empty on a replay; the client already holds it.
	ClientSecret string
	IsReplayed   bool
}

type CheckInResult struct {
	// Code is the plaintext check-in code, returned exactly once.
	Code      string
	DisputeID *uuid.UUID
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error)
	Accept(ctx context.Context, mechanicID, bookingID uuid.UUID) error
	Refuse(ctx context.Context, mechanicID, bookingID uuid.UUID) error
	Cancel(ctx context.Context, buyerID, bookingID uuid.UUID) error
	CheckIn(ctx context.Context, buyerID, bookingID uuid.UUID, mechanicAbsent bool) (*CheckInResult, error)
	EnterCode(ctx context.Context, mechanicID, bookingID uuid.UUID, code string) error
	CheckOut(ctx context.Context, mechanicID, bookingID uuid.UUID, in CheckOutInput) (*CheckOutResult, error)
	Validate(ctx context.Context, buyerID, bookingID uuid.UUID, in ValidationInput) (*ValidationResult, error)

	// ReleasePayment reports false when another worker holds the booking or it is no longer validated.
	ReleasePayment(ctx context.Context, bookingID uuid.UUID) (bool, error)
	// ExpirePending cancels a booking the mechanic never answered.
	ExpirePending(ctx context.Context, bookingID uuid.UUID) (bool, error)
}

type bookingCommandsImpl struct {
	*booker
	scheduler shared.Scheduler
	storage   shared.ObjectStorage
	renderer  shared.ReportRenderer
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	payment shared.PaymentGateway,
	scheduler shared.Scheduler,
	storage shared.ObjectStorage,
	renderer shared.ReportRenderer,
	engine *pricing.Engine,
	clk clock.Clock,
	settings BookingSettings,
) BookingCommands {
	return &bookingCommandsImpl{
		booker: &booker{
			uow:      uow,
			payment:  payment,
			engine:   engine,
			clock:    clk,
			settings: settings,
		},
		scheduler: scheduler,
		storage:   storage,
		renderer:  renderer,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, in CreateBookingInput) (res *CreateBookingResult, err error) {
	now := c.clock.Now()

	if err := c.checkBuyer(ctx, in.BuyerID); err != nil {
		return nil, err
	}

	vehicle, err := booking.NewVehicle(in.VehicleType, in.VehicleBrand, in.VehicleModel, in.VehicleYear, in.VehiclePlate, now.Year())
	if err != nil {
		return nil, err
	}
	location, err := booking.NewLocation(in.MeetingLat, in.MeetingLng, in.MeetingAddress)
	if err != nil {
		return nil, err
	}

	processorRef := "booking"
	if in.IdempotencyKey != uuid.Nil {
		var replayed *uuid.UUID
		replayed, err = c.claimIdempotencyKey(ctx, in, now)
		if err != nil {
			return nil, err
		}
		if replayed != nil {
			return &CreateBookingResult{BookingID: *replayed, IsReplayed: true}, nil
		}
		// err is the named result here, so every failed return below hands the key back
		defer func() {
			if err != nil {
				c.releaseIdempotencyKey(ctx, in)
			}
		}()
		processorRef = "booking:" + in.IdempotencyKey.String()
	}

	s, err := c.uow.CommandReads().SlotByID(ctx, in.SlotID)
	if err != nil {
		return nil, notFound(err, ErrSlotNotFound)
	}
	if s.IsBooked() {
		return nil, ErrSlotAlreadyBooked
	}
	if s.StartsAt().Sub(now) < c.settings.MinAdvance {
		return nil, ErrInsufficientNotice
	}

	q, err := c.quote(ctx, s.MechanicID(), vehicle, location, in.OBDRequested, now)
	if err != nil {
		return nil, err
	}

	b, auth, err := c.book(ctx, reservation{
		buyerID:      in.BuyerID,
		quote:        q,
		scheduledAt:  s.StartsAt(),
		vehicle:      vehicle,
		location:     location,
		obd:          in.OBDRequested,
		slotID:       s.ID(),
		processorRef: processorRef,
		within: func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
			if in.IdempotencyKey == uuid.Nil {
				return nil
			}
			return tx.Idempotency().Complete(ctx, in.IdempotencyKey, in.BuyerID, b.ID(), now)
		},
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking created",
		slog.String("booking_id", b.ID().String()),
		slog.String("payment_intent_id", auth.ID))
	return &CreateBookingResult{BookingID: b.ID(), ClientSecret: auth.ClientSecret}, nil
}

func (c *bookingCommandsImpl) checkBuyer(ctx context.Context, buyerID uuid.UUID) error {
	u, err := c.uow.CommandReads().UserByID(ctx, buyerID)
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}
	if !u.IsActive() {
		return ErrUserInactive
	}
	if !u.EmailVerified() {
		return ErrEmailNotVerified
	}
	return nil
}

func requestHash(in CreateBookingInput) string {
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// claimIdempotencyKey returns the original booking id for a completed replay.
func (c *bookingCommandsImpl) claimIdempotencyKey(ctx context.Context, in CreateBookingInput, now time.Time) (*uuid.UUID, error) {
	hash := requestHash(in)

	var inserted bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		inserted, err = tx.Idempotency().TryInsert(ctx, in.IdempotencyKey, in.BuyerID, createBookingEndpoint, hash, now.Add(idempotencyTTL), now)
		return err
	})
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	existing, err := c.uow.CommandReads().IdempotencyByKey(ctx, in.IdempotencyKey, in.BuyerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// released by a failed attempt between our insert and this read
			return nil, ErrIdempotencyInProgress
		}
		return nil, err
	}
	if existing.RequestHash != hash {
		return nil, ErrIdempotencyMismatch
	}

	switch existing.Status {
	case shared.IdempotencyCompleted:
		if existing.ResultBookingID == nil {
			return nil, errs.New("completed idempotency key has no booking")
		}
		return existing.ResultBookingID, nil
	case shared.IdempotencyProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

func (c *bookingCommandsImpl) releaseIdempotencyKey(ctx context.Context, in CreateBookingInput) {
	ctx = context.WithoutCancel(ctx)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, in.IdempotencyKey, in.BuyerID)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key",
			slog.String("user_id", in.BuyerID.String()),
			slog.String("error", err.Error()))
	}
}

// lockAs loads the booking FOR UPDATE and checks the actor holds the expected side of it.
func lockAs(ctx context.Context, tx shared.Tx, bookingID, actorID uuid.UUID, asMechanic bool) (*booking.Booking, error) {
	b, err := tx.Bookings().GetForUpdate(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	owner := b.BuyerID()
	if asMechanic {
		owner = b.MechanicID()
	}
	if owner != actorID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (c *bookingCommandsImpl) Accept(ctx context.Context, mechanicID, bookingID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockAs(ctx, tx, bookingID, mechanicID, true)
		if err != nil {
			return err
		}
		now := c.clock.Now()
		if err := b.Accept(now); err != nil {
			return err
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return err
		}
		return Enqueue(ctx, tx, Notification{Topic: shared.TopicBookingConfirmed, Recipient: b.BuyerID(), Subject: b.ID()}, now)
	})
}

// Refuse is the mechanic declining a request it never accepted.
func (c *bookingCommandsImpl) Refuse(ctx context.Context, mechanicID, bookingID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockAs(ctx, tx, bookingID, mechanicID, true)
		if err != nil {
			return err
		}
		if b.Status() != booking.StatusPendingAcceptance {
			return errs.Wrapf(booking.ErrInvalidTransition, "refuse from %s", b.Status())
		}
		return cancelAndRelease(ctx, tx, c.payment, b, booking.CancelledByMechanic, true, c.clock.Now())
	})
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, buyerID, bookingID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockAs(ctx, tx, bookingID, buyerID, false)
		if err != nil {
			return err
		}
		return cancelAndRelease(ctx, tx, c.payment, b, booking.CancelledByBuyer, true, c.clock.Now())
	})
}

func (c *bookingCommandsImpl) ExpirePending(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	expired := false
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired = false
		b, err := tx.Bookings().GetForUpdateSkipLocked(ctx, bookingID)
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		now := c.clock.Now()
		if b.Status() != booking.StatusPendingAcceptance || now.Sub(b.CreatedAt()) < c.settings.AcceptanceTimeout {
			return nil
		}
		if err := cancelAndRelease(ctx, tx, c.payment, b, booking.CancelledBySystem, true, now); err != nil {
			return err
		}
		expired = true
		return nil
	})
	return expired, err
}
