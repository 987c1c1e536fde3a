package components

import (
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/pricing"
	"inspection-marketplace/internal/pkg/clock"
	"inspection-marketplace/internal/pkg/config"
	"inspection-marketplace/internal/usecase"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewPricingEngine,
		NewBookingSettings,
		NewProposalSettings,

		// Commands
		commands.NewAuthCommands,
		commands.NewAdminCommands,
		commands.NewAvailabilityCommands,
		commands.NewMechanicCommands,
		commands.NewBookingCommands,
		commands.NewProposalCommands,
		commands.NewDisputeCommands,
		commands.NewWebhookCommands,

		// Queries
		queries.NewUserQueries,
		queries.NewAvailabilityQueries,
		queries.NewBookingQueries,
		queries.NewProposalQueries,
		queries.NewDisputeQueries,

		usecase.NewTokenValidator,
	),
)

func NewPricingEngine(cfg config.Config) (*pricing.Engine, error) {
	return pricing.NewEngine(pricing.Config{
		BaseFee:          cfg.Pricing.BaseFee,
		OBDSupplement:    cfg.Pricing.OBDSupplement,
		PerKmRate:        cfg.Pricing.PerKmRate,
		CommissionRate:   cfg.Pricing.CommissionRate,
		ProcessorPercent: cfg.Pricing.ProcessorPercent,
		ProcessorFixed:   cfg.Pricing.ProcessorFixed,
	})
}

func NewBookingSettings(cfg config.Config) commands.BookingSettings {
	return commands.BookingSettings{
		MinAdvance:       cfg.Booking.MinAdvance,
		Buffer:           time.Duration(cfg.Booking.BufferMinutes) * time.Minute,
		CheckInTolerance: cfg.Booking.CheckInTolerance,
		Code: booking.CodePolicy{
			Secret:      cfg.Booking.CodeSecret,
			TTL:         cfg.Booking.CodeTTL,
			MaxAttempts: cfg.Booking.CodeMaxAttempts,
		},
		ReleaseDelay:      cfg.Booking.PaymentReleaseWait,
		AcceptanceTimeout: cfg.Booking.AcceptanceTimeout,
		Currency:          cfg.Pricing.Currency,
		MaxPhotos:         cfg.Storage.MaxPhotos,
	}
}

func NewProposalSettings(cfg config.Config) commands.ProposalSettings {
	return commands.ProposalSettings{
		MaxRounds:    cfg.Proposal.MaxRounds,
		TTL:          cfg.Proposal.TTL,
		SlotDuration: cfg.Proposal.SlotDuration,
	}
}
