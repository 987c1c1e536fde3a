package pricing

import (
	"inspection-marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	MoneyPlaces = 2
	RatePlaces  = 4
)

var (
	ErrInvalidConfig = errs.New("invalid pricing configuration")
	ErrNegativeInput = errs.New("distance and free zone must not be negative")
)

var hundred = decimal.NewFromInt(100)

type Config struct {
	BaseFee          decimal.Decimal
	OBDSupplement    decimal.Decimal
	PerKmRate        decimal.Decimal
	CommissionRate   decimal.Decimal
	ProcessorPercent decimal.Decimal
	ProcessorFixed   decimal.Decimal
}

type Input struct {
	DistanceKm   decimal.Decimal
	FreeZoneKm   decimal.Decimal
	OBDRequested bool
}

// Breakdown amounts carry 2 fractional digits, CommissionRate carries 4.
type Breakdown struct {
	BasePrice        decimal.Decimal
	TravelFees       decimal.Decimal
	MechanicPayout   decimal.Decimal
	CommissionRate   decimal.Decimal
	CommissionAmount decimal.Decimal
	Subtotal         decimal.Decimal
	ProcessorFee     decimal.Decimal
	TotalPrice       decimal.Decimal
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

func (c Config) validate() error {
	for _, d := range []decimal.Decimal{c.BaseFee, c.OBDSupplement, c.PerKmRate, c.CommissionRate, c.ProcessorPercent, c.ProcessorFixed} {
		if d.IsNegative() {
			return ErrInvalidConfig
		}
	}
	// the fee inversion divides by (1 - percent)
	if c.ProcessorPercent.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidConfig
	}
	if c.CommissionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidConfig
	}
	return nil
}

// Calculate is pure: every monetary step is rounded half-up to cents before it feeds the next one.
func (e *Engine) Calculate(in Input) (Breakdown, error) {
	if in.DistanceKm.IsNegative() || in.FreeZoneKm.IsNegative() {
		return Breakdown{}, ErrNegativeInput
	}

	base := e.cfg.BaseFee
	if in.OBDRequested {
		base = base.Add(e.cfg.OBDSupplement)
	}
	base = roundMoney(base)

	billableKm := decimal.Max(decimal.Zero, in.DistanceKm.Sub(in.FreeZoneKm))
	travel := roundMoney(billableKm.Mul(e.cfg.PerKmRate))

	payout := base.Add(travel)
	rate := e.cfg.CommissionRate.Round(RatePlaces)
	commission := roundMoney(payout.Mul(rate))
	subtotal := payout.Add(commission)

	charge := roundMoney(subtotal.Add(e.cfg.ProcessorFixed).Div(decimal.NewFromInt(1).Sub(e.cfg.ProcessorPercent)))
	processorFee := charge.Sub(subtotal)

	return Breakdown{
		BasePrice:        base,
		TravelFees:       travel,
		MechanicPayout:   payout,
		CommissionRate:   rate,
		CommissionAmount: commission,
		Subtotal:         subtotal,
		ProcessorFee:     processorFee,
		TotalPrice:       subtotal.Add(processorFee),
	}, nil
}

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ToMinorUnits converts a money amount to cents. Only the payment port boundary should call it.
func ToMinorUnits(d decimal.Decimal) int64 {
	return roundMoney(d).Mul(hundred).IntPart()
}

func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -MoneyPlaces)
}

// DistanceFromKm fixes a float distance to 2 fractional digits so it prices deterministically.
func DistanceFromKm(km float64) decimal.Decimal {
	return decimal.NewFromFloat(km).Round(MoneyPlaces)
}
