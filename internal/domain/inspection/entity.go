package inspection

import (
	"sort"
	"strings"
	"time"

	"inspection-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

type Condition string

const (
	ConditionGood       Condition = "good"
	ConditionWorn       Condition = "worn"
	ConditionDefective  Condition = "defective"
	ConditionNotChecked Condition = "not_checked"
)

func (c Condition) IsValid() bool {
	switch c {
	case ConditionGood, ConditionWorn, ConditionDefective, ConditionNotChecked:
		return true
	default:
		return false
	}
}

// Components is the closed list a checklist may report on.
var Components = []string{
	"engine", "transmission", "brakes", "tires", "suspension", "steering",
	"exhaust", "body", "lights", "electronics", "interior", "fluids",
}

func isComponent(name string) bool {
	for _, c := range Components {
		if c == name {
			return true
		}
	}
	return false
}

var (
	ErrNoPhotos         = errs.New("at least one inspection photo is required")
	ErrInvalidOdometer  = errs.New("odometer reading must not be negative")
	ErrPlateMissing     = errs.New("plate reading is required")
	ErrEmptyChecklist   = errs.New("checklist must cover at least one component")
	ErrUnknownComponent = errs.New("unknown checklist component")
	ErrInvalidCondition = errs.New("invalid component condition")
	ErrPartialGPS       = errs.New("gps needs both latitude and longitude")
)

type Item struct {
	Component string
	Condition Condition
	Note      string
}

type Checklist struct {
	items []Item
}

func NewChecklist(conditions map[string]string, notes map[string]string) (Checklist, error) {
	if len(conditions) == 0 {
		return Checklist{}, ErrEmptyChecklist
	}
	items := make([]Item, 0, len(conditions))
	for comp, cond := range conditions {
		comp = strings.ToLower(strings.TrimSpace(comp))
		if !isComponent(comp) {
			return Checklist{}, errs.Wrapf(ErrUnknownComponent, "%q", comp)
		}
		c := Condition(cond)
		if !c.IsValid() {
			return Checklist{}, errs.Wrapf(ErrInvalidCondition, "%s=%q", comp, cond)
		}
		items = append(items, Item{Component: comp, Condition: c, Note: strings.TrimSpace(notes[comp])})
	}
	// stable order keeps the stored JSON and the PDF deterministic
	sort.Slice(items, func(i, j int) bool { return items[i].Component < items[j].Component })
	return Checklist{items: items}, nil
}

func ReconstructChecklist(items []Item) Checklist {
	return Checklist{items: items}
}

func (c Checklist) Items() []Item {
	return c.items
}

func (c Checklist) CountBy(cond Condition) int {
	n := 0
	for _, it := range c.items {
		if it.Condition == cond {
			n++
		}
	}
	return n
}

type GPS struct {
	Lat float64
	Lng float64
}

type ProofInput struct {
	BookingID    uuid.UUID
	PhotoURLs    []string
	OdometerKm   int
	PlateReading string
	GPSLat       *float64
	GPSLng       *float64
	Checklist    Checklist
}

// Proof is the mechanic's evidence that the inspection took place. One per booking.
type Proof struct {
	id           uuid.UUID
	bookingID    uuid.UUID
	photoURLs    []string
	odometerKm   int
	plateReading string
	gps          *GPS
	reportURL    *string
	checklist    Checklist
	createdAt    time.Time
}

// ValidateInput runs before any upload so a bad form never leaves orphan files behind.
func ValidateInput(odometerKm int, plate string, lat, lng *float64) error {
	if odometerKm < 0 {
		return ErrInvalidOdometer
	}
	if strings.TrimSpace(plate) == "" {
		return ErrPlateMissing
	}
	if (lat == nil) != (lng == nil) {
		return ErrPartialGPS
	}
	return nil
}

func NewProof(in ProofInput, now time.Time) (*Proof, error) {
	if len(in.PhotoURLs) == 0 {
		return nil, ErrNoPhotos
	}
	if err := ValidateInput(in.OdometerKm, in.PlateReading, in.GPSLat, in.GPSLng); err != nil {
		return nil, err
	}
	if len(in.Checklist.items) == 0 {
		return nil, ErrEmptyChecklist
	}
	var gps *GPS
	if in.GPSLat != nil {
		gps = &GPS{Lat: *in.GPSLat, Lng: *in.GPSLng}
	}
	return &Proof{
		id:           uuid.New(),
		bookingID:    in.BookingID,
		photoURLs:    in.PhotoURLs,
		odometerKm:   in.OdometerKm,
		plateReading: strings.ToUpper(strings.TrimSpace(in.PlateReading)),
		gps:          gps,
		checklist:    in.Checklist,
		createdAt:    now,
	}, nil
}

func ReconstructProof(id, bookingID uuid.UUID, photoURLs []string, odometerKm int, plate string, gps *GPS, reportURL *string, checklist Checklist, createdAt time.Time) *Proof {
	return &Proof{
		id:           id,
		bookingID:    bookingID,
		photoURLs:    photoURLs,
		odometerKm:   odometerKm,
		plateReading: plate,
		gps:          gps,
		reportURL:    reportURL,
		checklist:    checklist,
		createdAt:    createdAt,
	}
}

func (p *Proof) AttachReport(url string) {
	p.reportURL = &url
}

func (p *Proof) ID() uuid.UUID        { return p.id }
func (p *Proof) BookingID() uuid.UUID { return p.bookingID }
func (p *Proof) PhotoURLs() []string  { return p.photoURLs }
func (p *Proof) OdometerKm() int      { return p.odometerKm }
func (p *Proof) PlateReading() string { return p.plateReading }
func (p *Proof) GPS() *GPS            { return p.gps }
func (p *Proof) ReportURL() *string   { return p.reportURL }
func (p *Proof) Checklist() Checklist { return p.checklist }
func (p *Proof) CreatedAt() time.Time { return p.createdAt }
