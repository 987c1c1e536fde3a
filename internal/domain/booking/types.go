package booking

type Status string

const (
	StatusPendingAcceptance Status = "pending_acceptance"
	StatusConfirmed         Status = "confirmed"
	StatusAwaitingCode      Status = "awaiting_code"
	StatusCheckedIn         Status = "checked_in"
	StatusCheckedOut        Status = "checked_out"
	StatusValidated         Status = "validated"
	StatusCompleted         Status = "completed"
	StatusCancelled         Status = "cancelled"
	StatusDisputed          Status = "disputed"
)

var AllStatuses = []Status{
	StatusPendingAcceptance,
	StatusConfirmed,
	StatusAwaitingCode,
	StatusCheckedIn,
	StatusCheckedOut,
	StatusValidated,
	StatusCompleted,
	StatusCancelled,
	StatusDisputed,
}

var transitions = map[Status][]Status{
	StatusPendingAcceptance: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:         {StatusAwaitingCode, StatusCancelled, StatusDisputed},
	StatusAwaitingCode:      {StatusCheckedIn},
	StatusCheckedIn:         {StatusCheckedOut},
	StatusCheckedOut:        {StatusValidated, StatusDisputed},
	StatusValidated:         {StatusCompleted},
	StatusDisputed:          {StatusCancelled, StatusCompleted},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingAcceptance, StatusConfirmed, StatusAwaitingCode, StatusCheckedIn,
		StatusCheckedOut, StatusValidated, StatusCompleted, StatusCancelled, StatusDisputed:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

type CancelledBy string

const (
	CancelledByBuyer    CancelledBy = "buyer"
	CancelledByMechanic CancelledBy = "mechanic"
	CancelledBySystem   CancelledBy = "system"
)

func (c CancelledBy) IsValid() bool {
	switch c {
	case CancelledByBuyer, CancelledByMechanic, CancelledBySystem:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentNone       PaymentStatus = "none"
	PaymentAuthorized PaymentStatus = "authorized"
	PaymentCaptured   PaymentStatus = "captured"
	PaymentCancelled  PaymentStatus = "cancelled"
	PaymentRefunded   PaymentStatus = "refunded"
	PaymentFailed     PaymentStatus = "failed"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentNone, PaymentAuthorized, PaymentCaptured, PaymentCancelled, PaymentRefunded, PaymentFailed:
		return true
	default:
		return false
	}
}

// rank orders payment states so late or replayed webhooks never move a booking backwards.
func (p PaymentStatus) rank() int {
	switch p {
	case PaymentAuthorized:
		return 1
	case PaymentFailed:
		return 2
	case PaymentCaptured, PaymentCancelled:
		return 3
	case PaymentRefunded:
		return 4
	default:
		return 0
	}
}

type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleVan        VehicleType = "van"
	VehicleCamper     VehicleType = "camper"
)

func (v VehicleType) IsValid() bool {
	switch v {
	case VehicleCar, VehicleMotorcycle, VehicleVan, VehicleCamper:
		return true
	default:
		return false
	}
}
