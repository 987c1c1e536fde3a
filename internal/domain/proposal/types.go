package proposal

type Status string

const (
	StatusPending         Status = "pending"
	StatusAccepted        Status = "accepted"
	StatusRefused         Status = "refused"
	StatusCounterProposed Status = "counter_proposed"
	StatusExpired         Status = "expired"
	StatusCancelled       Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRefused, StatusCounterProposed, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

type Party string

const (
	PartyBuyer    Party = "buyer"
	PartyMechanic Party = "mechanic"
)

func (p Party) IsValid() bool {
	return p == PartyBuyer || p == PartyMechanic
}

func (p Party) Other() Party {
	if p == PartyBuyer {
		return PartyMechanic
	}
	return PartyBuyer
}
