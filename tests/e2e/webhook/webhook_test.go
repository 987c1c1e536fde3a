//go:build e2e

package webhook_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/handler/dto/request"
	"inspection-marketplace/internal/handler/dto/response"
	"inspection-marketplace/internal/usecase/shared"
	"inspection-marketplace/tests/common/authtest"
	"inspection-marketplace/tests/common/dbtest"
	"inspection-marketplace/tests/common/httptest"
	"inspection-marketplace/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const webhookURL = "/webhooks/payments"

type webhookSuite struct {
	e2e.SharedSuite

	bookingID uuid.UUID
}

func TestWebhookSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(webhookSuite))
}

func (s *webhookSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	t := s.T()

	mechanicID := dbtest.CreateBookableMechanic(t, s.DB, "mechanic@example.com")
	slotID := dbtest.CreateTestSlot(t, s.DB, mechanicID, time.Now().Add(72*time.Hour).Truncate(time.Hour), time.Hour)
	buyerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", string(user.RoleBuyer))

	raw, err := json.Marshal(request.CreateBookingRequest{
		SlotID:         slotID,
		VehicleType:    "car",
		VehicleBrand:   "Peugeot",
		VehicleModel:   "308",
		VehicleYear:    2019,
		VehiclePlate:   "AB-123-CD",
		MeetingLat:     48.8606,
		MeetingLng:     2.3376,
		MeetingAddress: "Rue de Rivoli, Paris",
	})
	require.NoError(t, err)

	req := nethttptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buyerToken)
	req.Header.Set("Idempotency-Key", uuid.NewString())
	w := nethttptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.CreateBookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	s.bookingID = created.ID
}

func (s *webhookSuite) deliver() *http.Request {
	req := nethttptest.NewRequest(http.MethodPost, webhookURL, bytes.NewReader([]byte(`{"id":"evt_1"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", "t=1,v1=signed")
	return req
}

func (s *webhookSuite) count(query string, args ...any) int {
	var n int
	require.NoError(s.T(), s.DB.QueryRow(s.T().Context(), query, args...).Scan(&n))
	return n
}

func (s *webhookSuite) TestDuplicateDelivery() {
	s.Run("sequential redelivery is acknowledged without effect", func() {
		t := s.T()
		s.Ports.Payment.Event = shared.PaymentEvent{
			ID:        "evt_seq_1",
			Type:      "payment_intent.payment_failed",
			Kind:      shared.EventPaymentFailed,
			BookingID: &s.bookingID,
		}

		for range 2 {
			w := nethttptest.NewRecorder()
			s.Router.ServeHTTP(w, s.deliver())
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}

		require.Equal(t, 1, s.count("SELECT count(*) FROM processed_webhook_events WHERE event_id = $1", "evt_seq_1"))
		require.Equal(t, 2, s.count("SELECT count(*) FROM notification_jobs WHERE topic = 'booking_cancelled'"))
	})

	s.Run("concurrent copies of one event apply once", func() {
		t := s.T()
		const copies = 8
		s.Ports.Payment.Event = shared.PaymentEvent{
			ID:        "evt_par_1",
			Type:      "payment_intent.payment_failed",
			Kind:      shared.EventPaymentFailed,
			BookingID: &s.bookingID,
		}

		reqs := make([]*http.Request, copies)
		for i := range reqs {
			reqs[i] = s.deliver()
		}

		codes := make([]int, copies)
		start := make(chan struct{})
		var wg sync.WaitGroup
		for i, req := range reqs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				w := nethttptest.NewRecorder()
				s.Router.ServeHTTP(w, req)
				codes[i] = w.Code
			}()
		}
		close(start)
		wg.Wait()

		for _, code := range codes {
			require.Equal(t, http.StatusOK, code, "codes: %v", codes)
		}
		require.Equal(t, 1, s.count("SELECT count(*) FROM processed_webhook_events WHERE event_id = $1", "evt_par_1"))
		require.Equal(t, 2, s.count("SELECT count(*) FROM notification_jobs WHERE topic = 'booking_cancelled'"))

		var status string
		require.NoError(t, s.DB.QueryRow(t.Context(), "SELECT status FROM bookings WHERE id = $1", s.bookingID).Scan(&status))
		require.Equal(t, "cancelled", status)

		var booked bool
		require.NoError(t, s.DB.QueryRow(t.Context(),
			"SELECT is_booked FROM availability_slots WHERE id = (SELECT slot_id FROM bookings WHERE id = $1)", s.bookingID).Scan(&booked))
		require.False(t, booked)
	})
}
