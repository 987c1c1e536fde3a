package queries

import (
	"context"
	"time"

	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingAccess   = errs.New("booking access denied")
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingRecord, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, page *Page, limit int) ([]*BookingRecord, error)
	ListByMechanic(ctx context.Context, mechanicID uuid.UUID, page *Page, limit int) ([]*BookingRecord, error)
	ListAll(ctx context.Context, page *Page, limit int) ([]*BookingRecord, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (BookingView, error)
	List(ctx context.Context, actorID uuid.UUID, actorRole string, cursor *Cursor, limit int) ([]BookingView, *Cursor, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (BookingView, error) {
	rec, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return ProjectBooking(rec, actorID, actorRole)
}

func (q *bookingQueriesImpl) List(ctx context.Context, actorID uuid.UUID, actorRole string, cursor *Cursor, limit int) ([]BookingView, *Cursor, error) {
	limit = ValidateLimit(limit)
	page, err := pageFromCursor(cursor)
	if err != nil {
		return nil, nil, ErrInvalidCursor
	}

	var rows []*BookingRecord
	switch actorRole {
	case RoleBuyer:
		rows, err = q.store.ListByBuyer(ctx, actorID, page, limit+1)
	case RoleMechanic:
		rows, err = q.store.ListByMechanic(ctx, actorID, page, limit+1)
	case RoleAdmin:
		rows, err = q.store.ListAll(ctx, page, limit+1)
	default:
		return nil, nil, ErrBookingAccess
	}
	if err != nil {
		return nil, nil, err
	}

	rows, next := trimPage(rows, limit, func(r *BookingRecord) (time.Time, uuid.UUID) { return r.CreatedAt, r.ID })
	views := make([]BookingView, 0, len(rows))
	for _, r := range rows {
		v, err := ProjectBooking(r, actorID, actorRole)
		if err != nil {
			return nil, nil, err
		}
		views = append(views, v)
	}
	return views, next, nil
}

var projectionOption = copier.Option{
	Converters: []copier.TypeConverter{{
		SrcType: decimal.Decimal{},
		DstType: copier.String,
		Fn: func(src interface{}) (interface{}, error) {
			d, ok := src.(decimal.Decimal)
			if !ok {
				return nil, errs.New("expected decimal.Decimal")
			}
			return d.StringFixed(2), nil
		},
	}},
}

// ProjectBooking picks the view the actor is entitled to. Participants see their own side only.
func ProjectBooking(rec *BookingRecord, actorID uuid.UUID, actorRole string) (BookingView, error) {
	var (
		view BookingView
		err  error
	)
	switch {
	case actorRole == RoleAdmin:
		v := AdminBookingView{}
		err = copier.CopyWithOption(&v, rec, projectionOption)
		view = v
	case actorRole == RoleBuyer && rec.BuyerID == actorID:
		v := BuyerBookingView{}
		err = copier.CopyWithOption(&v, rec, projectionOption)
		view = v
	case actorRole == RoleMechanic && rec.MechanicID == actorID:
		v := MechanicBookingView{}
		err = copier.CopyWithOption(&v, rec, projectionOption)
		view = v
	default:
		return nil, ErrBookingAccess
	}
	if err != nil {
		return nil, errs.Wrap(err, "project booking")
	}
	return view, nil
}
