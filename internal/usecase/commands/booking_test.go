//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/inspection"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/domain/pricing"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/saga"
	"inspection-marketplace/internal/usecase/shared"
	"inspection-marketplace/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("authorizes and holds the slot plus its buffer neighbours", func(t *testing.T) {
		h := newHarness(t)
		start := testNow.Add(48 * time.Hour)
		target := h.putSlot(start, time.Hour)
		neighbour := h.putSlot(start.Add(time.Hour), time.Hour)
		distant := h.putSlot(start.Add(5*time.Hour), time.Hour)

		res, err := h.bookings.Create(ctx, h.createInput(target.ID()))
		require.NoError(t, err)
		assert.False(t, res.IsReplayed)
		assert.Equal(t, "pi_fake_1_secret", res.ClientSecret)

		b := h.store.Booking(res.BookingID)
		require.NotNil(t, b)
		assert.Equal(t, booking.StatusPendingAcceptance, b.Status())
		assert.Equal(t, "pi_fake_1", b.PaymentIntentID())
		assert.Equal(t, start, b.ScheduledAt())

		require.Len(t, h.payment.Authorizations, 1)
		req := h.payment.Authorizations[0]
		price := b.Price()
		assert.Equal(t, pricing.ToMinorUnits(price.TotalPrice), req.AmountMinor)
		assert.Equal(t, pricing.ToMinorUnits(price.TotalPrice.Sub(price.MechanicPayout)), req.ApplicationFeeMinor)
		assert.Equal(t, "acct_test_mechanic", req.DestinationAccount)
		assert.Equal(t, "eur", req.Currency)
		assert.Equal(t, target.ID().String(), req.Metadata["slot_id"])

		for _, id := range []uuid.UUID{target.ID(), neighbour.ID()} {
			s := h.store.Slot(id)
			assert.True(t, s.IsBooked())
			require.NotNil(t, s.BookingID())
			assert.Equal(t, b.ID(), *s.BookingID())
		}
		assert.False(t, h.store.Slot(distant.ID()).IsBooked())

		assert.ElementsMatch(t,
			[]shared.NotificationTopic{shared.TopicBookingCreated, shared.TopicBookingCreated},
			h.store.Topics())
	})

	t.Run("replays a completed idempotency key without a second authorization", func(t *testing.T) {
		h := newHarness(t)
		s := h.putSlot(testNow.Add(48*time.Hour), time.Hour)
		in := h.createInput(s.ID())
		in.IdempotencyKey = uuid.New()

		first, err := h.bookings.Create(ctx, in)
		require.NoError(t, err)
		second, err := h.bookings.Create(ctx, in)
		require.NoError(t, err)

		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.BookingID, second.BookingID)
		assert.Empty(t, second.ClientSecret)
		assert.Len(t, h.payment.Authorizations, 1)
		assert.True(t, strings.HasPrefix(h.payment.Authorizations[0].IdempotencyKey, "booking:"+in.IdempotencyKey.String()+"/"))

		rec, ok := h.store.Idempotency(in.IdempotencyKey, h.buyer.ID())
		require.True(t, ok)
		assert.Equal(t, shared.IdempotencyCompleted, rec.Status)
	})

	t.Run("rejects a reused key with a different body", func(t *testing.T) {
		h := newHarness(t)
		s := h.putSlot(testNow.Add(48*time.Hour), time.Hour)
		in := h.createInput(s.ID())
		in.IdempotencyKey = uuid.New()

		_, err := h.bookings.Create(ctx, in)
		require.NoError(t, err)

		in.OBDRequested = true
		_, err = h.bookings.Create(ctx, in)
		requireIs(t, err, commands.ErrIdempotencyMismatch)
	})

	t.Run("reports a key still being processed", func(t *testing.T) {
		h := newHarness(t)
		s := h.putSlot(testNow.Add(48*time.Hour), time.Hour)
		in := h.createInput(s.ID())
		in.IdempotencyKey = uuid.New()

		body, err := json.Marshal(in)
		require.NoError(t, err)
		sum := sha256.Sum256(body)
		h.store.PutIdempotency(shared.IdempotencyRecord{
			Key:         in.IdempotencyKey,
			UserID:      h.buyer.ID(),
			Endpoint:    "POST /api/bookings",
			Status:      shared.IdempotencyProcessing,
			RequestHash: hex.EncodeToString(sum[:]),
			ExpiresAt:   testNow.Add(24 * time.Hour),
		})

		_, err = h.bookings.Create(ctx, in)
		requireIs(t, err, commands.ErrIdempotencyInProgress)
		assert.Empty(t, h.payment.Authorizations)
	})

	t.Run("a failed attempt releases its key for a retry", func(t *testing.T) {
		h := newHarness(t)
		s := h.putSlot(testNow.Add(48*time.Hour), time.Hour)
		in := h.createInput(s.ID())
		in.IdempotencyKey = uuid.New()

		h.store.Fail["Bookings.Create"] = errs.New("db down")
		_, err := h.bookings.Create(ctx, in)
		require.Error(t, err)
		_, held := h.store.Idempotency(in.IdempotencyKey, h.buyer.ID())
		require.False(t, held)

		delete(h.store.Fail, "Bookings.Create")
		res, err := h.bookings.Create(ctx, in)
		require.NoError(t, err)
		assert.False(t, res.IsReplayed)

		b := h.store.Booking(res.BookingID)
		assert.Equal(t, booking.StatusPendingAcceptance, b.Status())
		// the voided first intent is never reused
		assert.Equal(t, []string{"pi_fake_1"}, h.payment.Cancels)
		assert.Equal(t, "pi_fake_2", b.PaymentIntentID())
		require.Len(t, h.payment.Authorizations, 2)
		assert.NotEqual(t, h.payment.Authorizations[0].IdempotencyKey, h.payment.Authorizations[1].IdempotencyKey)
	})

	t.Run("a dead authorization is never booked", func(t *testing.T) {
		h := newHarness(t)
		s := h.putSlot(testNow.Add(48*time.Hour), time.Hour)
		in := h.createInput(s.ID())
		in.IdempotencyKey = uuid.New()
		h.payment.AuthorizeStatus = shared.AuthorizationCanceled

		_, err := h.bookings.Create(ctx, in)

		requireIs(t, err, commands.ErrPaymentUnavailable)
		assert.Empty(t, h.store.Bookings())
		assert.False(t, h.store.Slot(s.ID()).IsBooked())
		_, held := h.store.Idempotency(in.IdempotencyKey, h.buyer.ID())
		assert.False(t, held)
	})

	t.Run("cancels the authorization when the booking write fails", func(t *testing.T) {
		h := newHarness(t)
		s := h.putSlot(testNow.Add(48*time.Hour), time.Hour)
		in := h.createInput(s.ID())
		in.IdempotencyKey = uuid.New()
		h.store.Fail["Bookings.Create"] = errs.New("db down")

		_, err := h.bookings.Create(ctx, in)
		require.Error(t, err)

		assert.Equal(t, []string{"pi_fake_1"}, h.payment.Cancels)
		assert.Empty(t, h.store.Bookings())
		assert.False(t, h.store.Slot(s.ID()).IsBooked())
		_, held := h.store.Idempotency(in.IdempotencyKey, h.buyer.ID())
		assert.False(t, held)
	})

	t.Run("alerts an operator when compensation also fails", func(t *testing.T) {
		h := newHarness(t)
		s := h.putSlot(testNow.Add(48*time.Hour), time.Hour)
		h.store.Fail["Bookings.Create"] = errs.New("db down")
		h.payment.CancelErr = errs.New("processor down")

		_, err := h.bookings.Create(ctx, h.createInput(s.ID()))
		requireIs(t, err, saga.ErrCompensationFailed)

		jobs := h.store.Outbox()
		require.Len(t, jobs, 1)
		assert.Equal(t, shared.TopicCompensationFailed, jobs[0].Topic)
		assert.Equal(t, shared.NotifyAdmin, jobs[0].Kind)
	})

	t.Run("guards", func(t *testing.T) {
		cases := []struct {
			name  string
			setup func(h *harness) commands.CreateBookingInput
			errIs error
		}{
			{
				name: "unverified buyer",
				setup: func(h *harness) commands.CreateBookingInput {
					u, err := builder.NewUserBuilder().WithEmail("new@example.com").AsUnverified().BuildDomain()
					require.NoError(t, err)
					h.store.PutUser(u)
					in := h.createInput(h.putSlot(testNow.Add(48*time.Hour), time.Hour).ID())
					in.BuyerID = u.ID()
					return in
				},
				errIs: commands.ErrEmailNotVerified,
			},
			{
				name: "slot already booked",
				setup: func(h *harness) commands.CreateBookingInput {
					b := h.putBooking(nil)
					return h.createInput(*b.SlotID())
				},
				errIs: commands.ErrSlotAlreadyBooked,
			},
			{
				name: "less than the minimum notice",
				setup: func(h *harness) commands.CreateBookingInput {
					return h.createInput(h.putSlot(testNow.Add(2*time.Hour), time.Hour).ID())
				},
				errIs: commands.ErrInsufficientNotice,
			},
			{
				name: "unknown slot",
				setup: func(h *harness) commands.CreateBookingInput {
					return h.createInput(uuid.New())
				},
				errIs: commands.ErrSlotNotFound,
			},
			{
				name: "mechanic without payout account",
				setup: func(h *harness) commands.CreateBookingInput {
					h.store.PutMechanic(builder.NewMechanicBuilder().WithID(h.mechanic.UserID()).WithoutPayoutAccount().BuildDomain())
					return h.createInput(h.putSlot(testNow.Add(48*time.Hour), time.Hour).ID())
				},
				errIs: mechanic.ErrNoPayoutAccount,
			},
			{
				name: "meeting point outside the service radius",
				setup: func(h *harness) commands.CreateBookingInput {
					in := h.createInput(h.putSlot(testNow.Add(48*time.Hour), time.Hour).ID())
					// Lyon
					in.MeetingLat, in.MeetingLng = 45.764, 4.8357
					return in
				},
				errIs: mechanic.ErrOutOfServiceArea,
			},
			{
				name: "processor unavailable",
				setup: func(h *harness) commands.CreateBookingInput {
					h.payment.AuthorizeErr = errs.New("timeout")
					return h.createInput(h.putSlot(testNow.Add(48*time.Hour), time.Hour).ID())
				},
				errIs: commands.ErrPaymentUnavailable,
			},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				h := newHarness(t)
				in := c.setup(h)
				before := len(h.store.Bookings())

				_, err := h.bookings.Create(ctx, in)
				requireIs(t, err, c.errIs)
				assert.Len(t, h.store.Bookings(), before)
			})
		}
	})
}

func TestAcceptRefuseCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("mechanic accepts a pending booking", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(nil)

		require.NoError(t, h.bookings.Accept(ctx, h.mechanic.UserID(), b.ID()))

		got := h.store.Booking(b.ID())
		assert.Equal(t, booking.StatusConfirmed, got.Status())
		assert.NotNil(t, got.ConfirmedAt())
		assert.Equal(t, []shared.NotificationTopic{shared.TopicBookingConfirmed}, h.store.Topics())
	})

	t.Run("only the booked mechanic may accept", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(nil)

		requireIs(t, h.bookings.Accept(ctx, h.buyer.ID(), b.ID()), commands.ErrForbidden)
		requireIs(t, h.bookings.Accept(ctx, uuid.New(), b.ID()), commands.ErrForbidden)
		assert.Equal(t, booking.StatusPendingAcceptance, h.store.Booking(b.ID()).Status())
	})

	t.Run("refusal voids the authorization and frees the slot", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(nil)

		require.NoError(t, h.bookings.Refuse(ctx, h.mechanic.UserID(), b.ID()))

		got := h.store.Booking(b.ID())
		assert.Equal(t, booking.StatusCancelled, got.Status())
		require.NotNil(t, got.CancelledBy())
		assert.Equal(t, booking.CancelledByMechanic, *got.CancelledBy())
		assert.Equal(t, booking.PaymentCancelled, got.PaymentStatus())
		assert.Equal(t, []string{b.PaymentIntentID()}, h.payment.Cancels)
		assert.False(t, h.store.Slot(*b.SlotID()).IsBooked())
	})

	t.Run("refusal after acceptance is rejected", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusConfirmed })

		requireIs(t, h.bookings.Refuse(ctx, h.mechanic.UserID(), b.ID()), booking.ErrInvalidTransition)
		assert.Empty(t, h.payment.Cancels)
	})

	t.Run("buyer cancel after a capture race records a refund", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusConfirmed })
		h.payment.CancelOutcome = shared.CancelRefunded

		require.NoError(t, h.bookings.Cancel(ctx, h.buyer.ID(), b.ID()))

		got := h.store.Booking(b.ID())
		assert.Equal(t, booking.StatusCancelled, got.Status())
		assert.Equal(t, booking.PaymentRefunded, got.PaymentStatus())
		assert.ElementsMatch(t,
			[]shared.NotificationTopic{shared.TopicBookingCancelled, shared.TopicBookingCancelled},
			h.store.Topics())
	})

	t.Run("cancel past check-in never reaches the processor", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusCheckedIn })

		requireIs(t, h.bookings.Cancel(ctx, h.buyer.ID(), b.ID()), booking.ErrInvalidTransition)
		assert.Empty(t, h.payment.Cancels)
		assert.True(t, h.store.Slot(*b.SlotID()).IsBooked())
	})

	t.Run("processor failure leaves the booking untouched", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(nil)
		h.payment.CancelErr = errs.New("timeout")

		requireIs(t, h.bookings.Cancel(ctx, h.buyer.ID(), b.ID()), commands.ErrPaymentUnavailable)
		assert.Equal(t, booking.StatusPendingAcceptance, h.store.Booking(b.ID()).Status())
		assert.True(t, h.store.Slot(*b.SlotID()).IsBooked())
	})
}

func TestExpirePending(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels an unanswered booking past the timeout", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(nil)
		h.clock.Add(25 * time.Hour)

		expired, err := h.bookings.ExpirePending(ctx, b.ID())
		require.NoError(t, err)
		assert.True(t, expired)

		got := h.store.Booking(b.ID())
		assert.Equal(t, booking.StatusCancelled, got.Status())
		assert.Equal(t, booking.CancelledBySystem, *got.CancelledBy())
	})

	t.Run("leaves young, answered and locked bookings alone", func(t *testing.T) {
		h := newHarness(t)
		young := h.putBooking(nil)
		answered := h.putBooking(func(bb *builder.BookingBuilder) {
			bb.Status = booking.StatusConfirmed
			bb.CreatedAt = testNow.Add(-48 * time.Hour)
		})
		locked := h.putBooking(func(bb *builder.BookingBuilder) { bb.CreatedAt = testNow.Add(-48 * time.Hour) })
		h.store.Locked[locked.ID()] = true

		for _, id := range []uuid.UUID{young.ID(), answered.ID(), locked.ID()} {
			expired, err := h.bookings.ExpirePending(ctx, id)
			require.NoError(t, err)
			assert.False(t, expired)
		}
		assert.Empty(t, h.payment.Cancels)
	})
}

func TestCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a code inside the window", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) {
			bb.Status = booking.StatusConfirmed
			bb.ScheduledAt = testNow.Add(10 * time.Minute)
		})

		res, err := h.bookings.CheckIn(ctx, h.buyer.ID(), b.ID(), false)
		require.NoError(t, err)
		assert.Len(t, res.Code, 6)
		assert.Nil(t, res.DisputeID)

		got := h.store.Booking(b.ID())
		assert.Equal(t, booking.StatusAwaitingCode, got.Status())

		jobs := h.store.Outbox()
		require.Len(t, jobs, 1)
		assert.Equal(t, shared.TopicCheckInCode, jobs[0].Topic)
		assert.Equal(t, shared.NotifyPush, jobs[0].Kind)
		assert.NotContains(t, string(jobs[0].Payload), res.Code)
	})

	t.Run("outside the window is rejected", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusConfirmed })

		_, err := h.bookings.CheckIn(ctx, h.buyer.ID(), b.ID(), false)
		requireIs(t, err, booking.ErrOutsideCheckIn)
	})

	t.Run("an absent mechanic opens a no-show dispute", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) {
			bb.Status = booking.StatusConfirmed
			bb.ScheduledAt = testNow.Add(-20 * time.Minute)
		})

		res, err := h.bookings.CheckIn(ctx, h.buyer.ID(), b.ID(), true)
		require.NoError(t, err)
		require.NotNil(t, res.DisputeID)
		assert.Empty(t, res.Code)

		assert.Equal(t, booking.StatusDisputed, h.store.Booking(b.ID()).Status())
		dc := h.store.Dispute(*res.DisputeID)
		require.NotNil(t, dc)
		assert.Equal(t, b.ID(), dc.BookingID())
	})

	t.Run("wrong codes are counted even though the call fails", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.WithCheckInCode("123456", testNow) })

		requireIs(t, h.bookings.EnterCode(ctx, h.mechanic.UserID(), b.ID(), "000000"), booking.ErrInvalidCode)
		assert.Equal(t, 1, h.store.Booking(b.ID()).CheckInAttempts())

		require.NoError(t, h.bookings.EnterCode(ctx, h.mechanic.UserID(), b.ID(), "123456"))
		got := h.store.Booking(b.ID())
		assert.Equal(t, booking.StatusCheckedIn, got.Status())
		assert.NotNil(t, got.CheckedInAt())
	})

	t.Run("attempts cap locks the code", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.WithCheckInCode("123456", testNow).WithAttempts(5) })

		requireIs(t, h.bookings.EnterCode(ctx, h.mechanic.UserID(), b.ID(), "123456"), booking.ErrTooManyAttempts)
	})
}

func TestCheckOut(t *testing.T) {
	ctx := context.Background()
	input := commands.CheckOutInput{
		Photos: []commands.Photo{
			{Data: []byte("jpeg-1"), ContentType: "image/jpeg"},
			{Data: []byte("jpeg-2"), ContentType: "image/jpeg"},
		},
		Conditions:   map[string]string{"brakes": "good", "tires": "worn"},
		Notes:        map[string]string{"tires": "front pair near the limit"},
		OdometerKm:   84210,
		PlateReading: "AB-123-CD",
	}

	t.Run("stores the proof and report then moves to checked_out", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusCheckedIn })

		res, err := h.bookings.CheckOut(ctx, h.mechanic.UserID(), b.ID(), input)
		require.NoError(t, err)
		assert.False(t, res.IsReplayed)
		assert.NotEmpty(t, res.ReportURL)

		assert.Equal(t, booking.StatusCheckedOut, h.store.Booking(b.ID()).Status())
		require.Len(t, h.storage.Uploads, 3)
		assert.Equal(t, "application/pdf", h.storage.Uploads[2].ContentType)
		assert.Equal(t, 1, h.renderer.Calls)

		proofs := h.store.Proofs()
		require.Len(t, proofs, 1)
		assert.Equal(t, res.ProofID, proofs[0].ID())
		assert.Len(t, proofs[0].PhotoURLs(), 2)
		assert.Equal(t, []shared.NotificationTopic{shared.TopicInspectionReportReady}, h.store.Topics())
	})

	t.Run("a resubmission returns the stored proof", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusCheckedIn })

		first, err := h.bookings.CheckOut(ctx, h.mechanic.UserID(), b.ID(), input)
		require.NoError(t, err)
		uploads := len(h.storage.Uploads)

		again, err := h.bookings.CheckOut(ctx, h.mechanic.UserID(), b.ID(), input)
		require.NoError(t, err)
		assert.True(t, again.IsReplayed)
		assert.Equal(t, first.ProofID, again.ProofID)
		assert.Equal(t, first.ReportURL, again.ReportURL)
		assert.Len(t, h.storage.Uploads, uploads)
	})

	t.Run("rejections happen before any upload", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(in *commands.CheckOutInput)
			errIs  error
		}{
			{"no photos", func(in *commands.CheckOutInput) { in.Photos = nil }, inspection.ErrNoPhotos},
			{"too many photos", func(in *commands.CheckOutInput) {
				in.Photos = append(in.Photos, in.Photos...)
			}, commands.ErrTooManyPhotos},
			{"missing plate", func(in *commands.CheckOutInput) { in.PlateReading = " " }, inspection.ErrPlateMissing},
			{"unknown component", func(in *commands.CheckOutInput) {
				in.Conditions = map[string]string{"flux_capacitor": "good"}
			}, inspection.ErrUnknownComponent},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				h := newHarness(t)
				b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusCheckedIn })
				in := input
				in.Photos = append([]commands.Photo(nil), input.Photos...)
				c.mutate(&in)

				_, err := h.bookings.CheckOut(ctx, h.mechanic.UserID(), b.ID(), in)
				requireIs(t, err, c.errIs)
				assert.Empty(t, h.storage.Uploads)
				assert.Equal(t, booking.StatusCheckedIn, h.store.Booking(b.ID()).Status())
			})
		}
	})

	t.Run("storage outage surfaces as unavailable", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusCheckedIn })
		h.storage.Err = errs.New("disk full")

		_, err := h.bookings.CheckOut(ctx, h.mechanic.UserID(), b.ID(), input)
		requireIs(t, err, commands.ErrStorageUnavailable)
	})

	t.Run("buyer cannot check out", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusCheckedIn })

		_, err := h.bookings.CheckOut(ctx, h.buyer.ID(), b.ID(), input)
		requireIs(t, err, commands.ErrForbidden)
	})
}

func TestValidateAndRelease(t *testing.T) {
	ctx := context.Background()

	t.Run("acceptance schedules the release, which captures", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusCheckedOut })

		res, err := h.bookings.Validate(ctx, h.buyer.ID(), b.ID(), commands.ValidationInput{Accepted: true})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusValidated, res.Status)
		assert.Nil(t, res.DisputeID)

		require.Len(t, h.scheduler.Once, 1)
		assert.Equal(t, commands.ReleasePaymentDedupeKey(b.ID()), h.scheduler.Once[0].DedupeKey)
		assert.Equal(t, 48*time.Hour, h.scheduler.Once[0].Delay)

		require.NoError(t, h.scheduler.RunOnce(ctx))
		got := h.store.Booking(b.ID())
		assert.Equal(t, booking.StatusCompleted, got.Status())
		assert.Equal(t, booking.PaymentCaptured, got.PaymentStatus())
		assert.Equal(t, []string{b.PaymentIntentID()}, h.payment.Captures)
		assert.Contains(t, h.store.Topics(), shared.TopicPaymentReleased)
	})

	t.Run("a scheduler failure does not undo the validation", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusCheckedOut })
		h.scheduler.Err = errs.New("scheduler stopped")

		_, err := h.bookings.Validate(ctx, h.buyer.ID(), b.ID(), commands.ValidationInput{Accepted: true})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusValidated, h.store.Booking(b.ID()).Status())
	})

	t.Run("rejection needs a reason and description", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusCheckedOut })

		_, err := h.bookings.Validate(ctx, h.buyer.ID(), b.ID(), commands.ValidationInput{Reason: "incomplete_inspection"})
		requireIs(t, err, commands.ErrRejectionIncomplete)
	})

	t.Run("rejection opens a dispute", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusCheckedOut })

		res, err := h.bookings.Validate(ctx, h.buyer.ID(), b.ID(), commands.ValidationInput{
			Reason:      "incomplete_inspection",
			Description: "the brakes were never looked at",
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusDisputed, res.Status)
		require.NotNil(t, res.DisputeID)
		assert.NotNil(t, h.store.Dispute(*res.DisputeID))
		assert.Empty(t, h.scheduler.Once)
	})

	t.Run("release skips a row another worker holds", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusValidated })
		h.store.Locked[b.ID()] = true

		released, err := h.bookings.ReleasePayment(ctx, b.ID())
		require.NoError(t, err)
		assert.False(t, released)
		assert.Empty(t, h.payment.Captures)
	})

	t.Run("release of a booking no longer validated is a no-op", func(t *testing.T) {
		h := newHarness(t)
		b := h.putBooking(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusDisputed })

		released, err := h.bookings.ReleasePayment(ctx, b.ID())
		require.NoError(t, err)
		assert.False(t, released)
	})
}
