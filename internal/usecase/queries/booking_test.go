//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingStore struct {
	records []*queries.BookingRecord
	gotPage *queries.Page
	gotLim  int
}

func (f *fakeBookingStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (f *fakeBookingStore) list(page *queries.Page, limit int) ([]*queries.BookingRecord, error) {
	f.gotPage, f.gotLim = page, limit
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func (f *fakeBookingStore) ListByBuyer(_ context.Context, _ uuid.UUID, page *queries.Page, limit int) ([]*queries.BookingRecord, error) {
	return f.list(page, limit)
}

func (f *fakeBookingStore) ListByMechanic(_ context.Context, _ uuid.UUID, page *queries.Page, limit int) ([]*queries.BookingRecord, error) {
	return f.list(page, limit)
}

func (f *fakeBookingStore) ListAll(_ context.Context, page *queries.Page, limit int) ([]*queries.BookingRecord, error) {
	return f.list(page, limit)
}

func record(buyerID, mechanicID uuid.UUID, createdAt time.Time) *queries.BookingRecord {
	d := decimal.RequireFromString
	return &queries.BookingRecord{
		ID:               uuid.New(),
		BuyerID:          buyerID,
		MechanicID:       mechanicID,
		Status:           "confirmed",
		DistanceKm:       d("30"),
		BasePrice:        d("40"),
		TravelFees:       d("6"),
		ProcessorFee:     d("1.09"),
		TotalPrice:       d("56.29"),
		CommissionRate:   "0.2000",
		CommissionAmount: d("9.2"),
		MechanicPayout:   d("46"),
		PaymentIntentID:  "pi_123",
		PaymentStatus:    "authorized",
		CreatedAt:        createdAt,
	}
}

func TestProjectBooking(t *testing.T) {
	buyerID, mechanicID := uuid.New(), uuid.New()
	rec := record(buyerID, mechanicID, time.Now())

	t.Run("buyer sees what they pay, not the payout split", func(t *testing.T) {
		v, err := queries.ProjectBooking(rec, buyerID, queries.RoleBuyer)
		require.NoError(t, err)

		bv, ok := v.(queries.BuyerBookingView)
		require.True(t, ok)
		assert.Equal(t, "56.29", bv.TotalPrice)
		assert.Equal(t, "1.09", bv.ProcessorFee)
		assert.Equal(t, "6.00", bv.TravelFees)
		assert.Equal(t, mechanicID, bv.MechanicID)
	})

	t.Run("mechanic sees the payout", func(t *testing.T) {
		v, err := queries.ProjectBooking(rec, mechanicID, queries.RoleMechanic)
		require.NoError(t, err)

		mv, ok := v.(queries.MechanicBookingView)
		require.True(t, ok)
		assert.Equal(t, "46.00", mv.MechanicPayout)
		assert.Equal(t, buyerID, mv.BuyerID)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		v, err := queries.ProjectBooking(rec, uuid.New(), queries.RoleAdmin)
		require.NoError(t, err)

		av, ok := v.(queries.AdminBookingView)
		require.True(t, ok)
		assert.Equal(t, "9.20", av.CommissionAmount)
		assert.Equal(t, "0.2000", av.CommissionRate)
		assert.Equal(t, "pi_123", av.PaymentIntentID)
	})

	t.Run("other participants are denied", func(t *testing.T) {
		_, err := queries.ProjectBooking(rec, uuid.New(), queries.RoleBuyer)
		require.ErrorIs(t, err, queries.ErrBookingAccess)

		_, err = queries.ProjectBooking(rec, buyerID, queries.RoleMechanic)
		require.ErrorIs(t, err, queries.ErrBookingAccess)
	})
}

func TestBookingQueries_GetByID_NotFound(t *testing.T) {
	q := queries.NewBookingQueries(&fakeBookingStore{})

	_, err := q.GetByID(context.Background(), uuid.New(), queries.RoleAdmin, uuid.New())

	require.ErrorIs(t, err, queries.ErrBookingNotFound)
}

func TestBookingQueries_List_Pagination(t *testing.T) {
	buyerID := uuid.New()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := &fakeBookingStore{}
	for i := 0; i < 3; i++ {
		store.records = append(store.records, record(buyerID, uuid.New(), base.Add(-time.Duration(i)*time.Hour)))
	}
	q := queries.NewBookingQueries(store)

	views, next, err := q.List(context.Background(), buyerID, queries.RoleBuyer, nil, 2)
	require.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, 3, store.gotLim)
	require.NotNil(t, next)

	_, _, err = q.List(context.Background(), buyerID, queries.RoleBuyer, next, 2)
	require.NoError(t, err)
	require.NotNil(t, store.gotPage)
	assert.Equal(t, store.records[1].ID, store.gotPage.AfterID)
	assert.True(t, store.records[1].CreatedAt.Equal(store.gotPage.AfterCreatedAt))

	_, _, err = q.List(context.Background(), buyerID, queries.RoleBuyer, &queries.Cursor{After: "%%%"}, 2)
	require.ErrorIs(t, err, queries.ErrInvalidCursor)

	_, _, err = q.List(context.Background(), buyerID, "guest", nil, 2)
	require.ErrorIs(t, err, queries.ErrBookingAccess)
}
