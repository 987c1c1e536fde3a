package commands

import (
	"context"
	"log/slog"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/domain/pricing"
	"inspection-marketplace/internal/domain/slot"
	"inspection-marketplace/internal/pkg/clock"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/saga"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingSettings struct {
	MinAdvance        time.Duration
	Buffer            time.Duration
	CheckInTolerance  time.Duration
	Code              booking.CodePolicy
	ReleaseDelay      time.Duration
	AcceptanceTimeout time.Duration
	Currency          string
	MaxPhotos         int
}

// quote is everything the mechanic guards and the pricing engine decide before money moves.
type quote struct {
	mechanicID    uuid.UUID
	payoutAccount string
	distanceKm    decimal.Decimal
	price         pricing.Breakdown
}

// reservation is a booking ready to be authorized and written.
type reservation struct {
	buyerID     uuid.UUID
	quote       quote
	scheduledAt time.Time
	vehicle     booking.Vehicle
	location    booking.Location
	obd         bool
	// exactly one of slotID / newSlot is set
	slotID  uuid.UUID
	newSlot *slot.Slot
	// processorRef prefixes the processor idempotency key; each attempt appends its own nonce
	processorRef string
	autoConfirm  bool
	// within runs inside the booking transaction after the row exists
	within func(ctx context.Context, tx shared.Tx, b *booking.Booking) error
}

type booker struct {
	uow      shared.UnitOfWork
	payment  shared.PaymentGateway
	engine   *pricing.Engine
	clock    clock.Clock
	settings BookingSettings
}

func (k *booker) quote(ctx context.Context, mechanicID uuid.UUID, vehicle booking.Vehicle, loc booking.Location, obd bool, now time.Time) (quote, error) {
	p, err := k.uow.CommandReads().MechanicByID(ctx, mechanicID)
	if err != nil {
		return quote{}, notFound(err, ErrMechanicNotFound)
	}
	if err := p.CheckBookable(vehicle.Type, now); err != nil {
		return quote{}, err
	}

	km, err := p.DistanceTo(loc.Point())
	if err != nil {
		return quote{}, err
	}
	distance := pricing.DistanceFromKm(km)

	price, err := k.engine.Calculate(pricing.Input{
		DistanceKm:   distance,
		FreeZoneKm:   p.FreeZoneKm(),
		OBDRequested: obd,
	})
	if err != nil {
		return quote{}, err
	}

	return quote{
		mechanicID:    p.UserID(),
		payoutAccount: payoutAccountOf(p),
		distanceKm:    distance,
		price:         price,
	}, nil
}

func payoutAccountOf(p *mechanic.Profile) string {
	if p.PayoutAccountID() == nil {
		return ""
	}
	return *p.PayoutAccountID()
}

// book authorizes first and writes second. A failed write cancels the authorization, so
// a committed booking always has exactly one live authorization and an abandoned one is voided.
func (k *booker) book(ctx context.Context, r reservation) (*booking.Booking, shared.Authorization, error) {
	var created *booking.Booking
	// A retry after compensation must not replay the voided authorization.
	req := k.authorizationRequest(r, attemptKey(r.processorRef))

	auth, outcome, err := saga.Run(ctx, saga.Step[shared.Authorization]{
		Name: "create-booking",
		External: func(ctx context.Context) (shared.Authorization, error) {
			a, err := k.payment.CreateAuthorization(ctx, req)
			if err != nil {
				return a, paymentErr(err)
			}
			if !a.Status.IsLive() {
				return shared.Authorization{}, errs.Wrapf(ErrPaymentUnavailable, "authorization %s is %s", a.ID, a.Status)
			}
			return a, nil
		},
		Local: func(ctx context.Context, a shared.Authorization) error {
			return k.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
				b, err := k.writeBooking(ctx, tx, r, a.ID)
				if err != nil {
					return err
				}
				created = b
				return nil
			})
		},
		Compensate: func(ctx context.Context, a shared.Authorization) error {
			_, err := k.payment.CancelAuthorization(ctx, a.ID, "compensate:"+a.ID)
			return err
		},
	})
	if outcome == saga.CompensationFailed {
		k.alertCompensationFailed(ctx, auth.ID, r)
	}
	if err != nil {
		return nil, shared.Authorization{}, err
	}
	return created, auth, nil
}

func attemptKey(ref string) string {
	return ref + "/" + uuid.NewString()
}

func (k *booker) authorizationRequest(r reservation, idempotencyKey string) shared.AuthorizationRequest {
	price := r.quote.price
	metadata := map[string]string{
		"buyer_id":    r.buyerID.String(),
		"mechanic_id": r.quote.mechanicID.String(),
	}
	if r.newSlot == nil {
		metadata["slot_id"] = r.slotID.String()
	}
	return shared.AuthorizationRequest{
		AmountMinor:        pricing.ToMinorUnits(price.TotalPrice),
		Currency:           k.settings.Currency,
		DestinationAccount: r.quote.payoutAccount,
		// the platform keeps commission plus the processor fee it pays; the mechanic nets the payout
		ApplicationFeeMinor: pricing.ToMinorUnits(price.TotalPrice.Sub(price.MechanicPayout)),
		Metadata:            metadata,
		IdempotencyKey:      idempotencyKey,
	}
}

// writeBooking takes the slot lock, then the buffer-zone locks in start order.
func (k *booker) writeBooking(ctx context.Context, tx shared.Tx, r reservation, paymentIntentID string) (*booking.Booking, error) {
	now := k.clock.Now()

	s, err := k.claimSlot(ctx, tx, r)
	if err != nil {
		return nil, err
	}

	slotID := s.ID()
	b, err := booking.NewBooking(booking.NewParams{
		BuyerID:         r.buyerID,
		MechanicID:      r.quote.mechanicID,
		SlotID:          &slotID,
		ScheduledAt:     s.StartsAt(),
		Vehicle:         r.vehicle,
		Location:        r.location,
		DistanceKm:      r.quote.distanceKm,
		OBDRequested:    r.obd,
		Price:           r.quote.price,
		PaymentIntentID: paymentIntentID,
	}, now)
	if err != nil {
		return nil, err
	}
	if r.autoConfirm {
		if err := b.Accept(now); err != nil {
			return nil, err
		}
	}
	if err := tx.Bookings().Create(ctx, b); err != nil {
		return nil, err
	}

	if err := s.Book(b.ID(), now); err != nil {
		return nil, errs.Mark(err, ErrSlotAlreadyBooked)
	}
	if err := tx.Slots().Save(ctx, s); err != nil {
		return nil, err
	}

	from, to := s.BufferWindow(k.settings.Buffer)
	neighbours, err := tx.Slots().LockFreeInWindow(ctx, s.MechanicID(), s.ID(), from, to)
	if err != nil {
		return nil, err
	}
	for _, n := range neighbours {
		if err := n.Book(b.ID(), now); err != nil {
			return nil, err
		}
		if err := tx.Slots().Save(ctx, n); err != nil {
			return nil, err
		}
	}

	if r.within != nil {
		if err := r.within(ctx, tx, b); err != nil {
			return nil, err
		}
	}

	topic := shared.TopicBookingCreated
	if r.autoConfirm {
		topic = shared.TopicBookingConfirmed
	}
	return b, enqueueAll(ctx, tx, now,
		Notification{Topic: topic, Recipient: b.MechanicID(), Subject: b.ID()},
		Notification{Topic: topic, Recipient: b.BuyerID(), Subject: b.ID()},
	)
}

// claimSlot locks and re-checks an existing slot, or creates the synthesized one after
// making sure nothing booked overlaps it.
func (k *booker) claimSlot(ctx context.Context, tx shared.Tx, r reservation) (*slot.Slot, error) {
	if r.newSlot == nil {
		s, err := tx.Slots().GetForUpdate(ctx, r.slotID)
		if err != nil {
			return nil, notFound(err, ErrSlotNotFound)
		}
		if s.IsBooked() {
			return nil, ErrSlotAlreadyBooked
		}
		return s, nil
	}

	s := r.newSlot
	if _, err := tx.Mechanics().GetForUpdate(ctx, s.MechanicID()); err != nil {
		return nil, notFound(err, ErrMechanicNotFound)
	}
	free, err := tx.Slots().LockFreeInWindow(ctx, s.MechanicID(), s.ID(), s.StartsAt(), s.EndsAt())
	if err != nil {
		return nil, err
	}
	total, err := tx.Slots().CountOverlapping(ctx, s.MechanicID(), s.StartsAt(), s.EndsAt())
	if err != nil {
		return nil, err
	}
	if total > int64(len(free)) {
		return nil, ErrSlotAlreadyBooked
	}
	if err := tx.Slots().Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (k *booker) alertCompensationFailed(ctx context.Context, paymentIntentID string, r reservation) {
	slog.Error("authorization left without booking",
		slog.String("payment_intent_id", paymentIntentID),
		slog.String("buyer_id", r.buyerID.String()),
		slog.String("mechanic_id", r.quote.mechanicID.String()))

	ctx = context.WithoutCancel(ctx)
	err := k.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return Enqueue(ctx, tx, adminAlert(shared.TopicCompensationFailed, r.buyerID,
			map[string]string{"payment_intent_id": paymentIntentID}, paymentIntentID), k.clock.Now())
	})
	if err != nil {
		slog.Error("failed to queue compensation alert", slog.String("payment_intent_id", paymentIntentID))
	}
}
