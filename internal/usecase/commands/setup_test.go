//go:build unit

package commands_test

import (
	"testing"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/domain/pricing"
	"inspection-marketplace/internal/domain/slot"
	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/pkg/clock"
	"inspection-marketplace/internal/pkg/config"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/tests/common/builder"
	"inspection-marketplace/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testSettings() commands.BookingSettings {
	return commands.BookingSettings{
		MinAdvance:        24 * time.Hour,
		Buffer:            30 * time.Minute,
		CheckInTolerance:  30 * time.Minute,
		Code:              booking.CodePolicy{Secret: builder.TestCodeSecret, TTL: 15 * time.Minute, MaxAttempts: 5},
		ReleaseDelay:      48 * time.Hour,
		AcceptanceTimeout: 24 * time.Hour,
		Currency:          "eur",
		MaxPhotos:         3,
	}
}

func testProposalSettings() commands.ProposalSettings {
	return commands.ProposalSettings{MaxRounds: 3, TTL: 48 * time.Hour, SlotDuration: time.Hour}
}

func testEngine(t *testing.T) *pricing.Engine {
	t.Helper()
	p := config.DefaultPricing()
	engine, err := pricing.NewEngine(pricing.Config{
		BaseFee:          p.BaseFee,
		OBDSupplement:    p.OBDSupplement,
		PerKmRate:        p.PerKmRate,
		CommissionRate:   p.CommissionRate,
		ProcessorPercent: p.ProcessorPercent,
		ProcessorFixed:   p.ProcessorFixed,
	})
	require.NoError(t, err)
	return engine
}

// harness wires every command against the in-memory store with one verified buyer and
// one bookable mechanic.
type harness struct {
	store     *fake.Store
	payment   *fake.Payment
	scheduler *fake.Scheduler
	storage   *fake.Storage
	renderer  *fake.Renderer
	clock     *clock.MockClock

	bookings  commands.BookingCommands
	proposals commands.ProposalCommands
	disputes  commands.DisputeCommands
	webhooks  commands.WebhookCommands
	admin     commands.AdminCommands
	mechanics commands.MechanicCommands
	slots     commands.AvailabilityCommands

	buyer    *user.User
	mechanic *mechanic.Profile
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		store:     fake.NewStore(),
		payment:   fake.NewPayment(),
		scheduler: &fake.Scheduler{},
		storage:   &fake.Storage{},
		renderer:  &fake.Renderer{},
		clock:     clock.NewMockClock(testNow),
	}

	buyer, err := builder.NewUserBuilder().WithEmail("buyer@example.com").BuildDomain()
	require.NoError(t, err)
	h.buyer = buyer
	h.store.PutUser(buyer)

	mechUser, err := builder.NewUserBuilder().WithEmail("mechanic@example.com").WithRole("mechanic").BuildDomain()
	require.NoError(t, err)
	h.store.PutUser(mechUser)
	h.mechanic = builder.NewMechanicBuilder().WithID(mechUser.ID()).BuildDomain()
	h.store.PutMechanic(h.mechanic)

	engine := testEngine(t)
	h.bookings = commands.NewBookingCommands(h.store, h.payment, h.scheduler, h.storage, h.renderer, engine, h.clock, testSettings())
	h.proposals = commands.NewProposalCommands(h.store, h.payment, engine, h.clock, testSettings(), testProposalSettings())
	h.disputes = commands.NewDisputeCommands(h.store, h.payment, h.clock)
	h.webhooks = commands.NewWebhookCommands(h.store, h.payment, h.clock)
	h.admin = commands.NewAdminCommands(h.store, h.clock)
	h.mechanics = commands.NewMechanicCommands(h.store, h.payment, h.clock)
	h.slots = commands.NewAvailabilityCommands(h.store, h.clock)
	return h
}

// putSlot stores a free slot of the harness mechanic starting after start for d.
func (h *harness) putSlot(start time.Time, d time.Duration) *slot.Slot {
	s := builder.NewSlotBuilder().WithMechanic(h.mechanic.UserID()).StartingAt(start, d).BuildDomain()
	h.store.PutSlot(s)
	return s
}

// putBooking stores a booking between the harness parties, holding one slot.
func (h *harness) putBooking(mutate func(*builder.BookingBuilder)) *booking.Booking {
	bb := builder.NewBookingBuilder().WithParties(h.buyer.ID(), h.mechanic.UserID())
	if mutate != nil {
		bb.With(mutate)
	}
	sl := builder.NewSlotBuilder().WithMechanic(h.mechanic.UserID()).StartingAt(bb.ScheduledAt, time.Hour).BookedBy(bb.ID)
	slotID := sl.ID
	bb.SlotID = &slotID
	h.store.PutSlot(sl.BuildDomain())

	b := bb.BuildDomain()
	h.store.PutBooking(b)
	return b
}

func (h *harness) createInput(slotID uuid.UUID) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		BuyerID:        h.buyer.ID(),
		SlotID:         slotID,
		VehicleType:    "car",
		VehicleBrand:   "Peugeot",
		VehicleModel:   "308",
		VehicleYear:    2019,
		VehiclePlate:   "AB-123-CD",
		MeetingLat:     builder.Paris.Lat,
		MeetingLng:     builder.Paris.Lng,
		MeetingAddress: "1 rue de Rivoli, Paris",
	}
}

func requireIs(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errs.Is(err, target), "expected %v, got %v", target, err)
}
