//go:build e2e

package booking_test

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
	"inspection-marketplace/tests/common/authtest"
	"inspection-marketplace/tests/common/dbtest"
	"inspection-marketplace/tests/common/httptest"
	"inspection-marketplace/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type bookingSuite struct {
	e2e.SharedSuite

	buyerToken    string
	mechanicToken string
	mechanicID    uuid.UUID
	slotID        uuid.UUID
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	t := s.T()

	s.mechanicID = dbtest.CreateBookableMechanic(t, s.DB, "mechanic@example.com")
	s.slotID = dbtest.CreateTestSlot(t, s.DB, s.mechanicID, time.Now().Add(72*time.Hour).Truncate(time.Hour), time.Hour)
	s.buyerToken = authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", string(user.RoleBuyer))
	s.mechanicToken = authtest.LoginUser(t, s.Router, "mechanic@example.com", dbtest.DefaultPassword)
}

func (s *bookingSuite) createRequest() request.CreateBookingRequest {
	return request.CreateBookingRequest{
		SlotID:         s.slotID,
		VehicleType:    "car",
		VehicleBrand:   "Peugeot",
		VehicleModel:   "308",
		VehicleYear:    2019,
		VehiclePlate:   "AB-123-CD",
		MeetingLat:     48.8606,
		MeetingLng:     2.3376,
		MeetingAddress: "Rue de Rivoli, Paris",
	}
}

func (s *bookingSuite) create(body request.CreateBookingRequest, key string) *nethttptest.ResponseRecorder {
	w := nethttptest.NewRecorder()
	s.Router.ServeHTTP(w, s.createRequestFor(body, key))
	return w
}

// createRequestFor builds the request on the test goroutine so it can be served from others.
func (s *bookingSuite) createRequestFor(body request.CreateBookingRequest, key string) *http.Request {
	raw, err := json.Marshal(body)
	require.NoError(s.T(), err)

	req := nethttptest.NewRequest(http.MethodPost, bookingsURL, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.buyerToken)
	req.Header.Set("Idempotency-Key", key)
	return req
}

func (s *bookingSuite) status(id uuid.UUID) string {
	var status string
	err := s.DB.QueryRow(s.T().Context(), "SELECT status FROM bookings WHERE id = $1", id).Scan(&status)
	require.NoError(s.T(), err)
	return status
}

func (s *bookingSuite) TestCreate() {
	s.Run("authorizes payment and books the slot", func() {
		t := s.T()

		w := s.create(s.createRequest(), uuid.NewString())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.NotEmpty(t, res.ClientSecret)
		require.False(t, res.Replayed)

		require.Equal(t, "pending_acceptance", s.status(res.ID))
		require.Len(t, s.Ports.Payment.Authorizations, 1)

		var booked bool
		err := s.DB.QueryRow(t.Context(), "SELECT is_booked FROM availability_slots WHERE id = $1", s.slotID).Scan(&booked)
		require.NoError(t, err)
		require.True(t, booked)
	})

	s.Run("replayed key returns the first booking", func() {
		t := s.T()
		key := uuid.NewString()

		first := s.create(s.createRequest(), key)
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
		var created response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, first.Body, &created))

		again := s.create(s.createRequest(), key)
		require.Equal(t, http.StatusOK, again.Code, again.Body.String())
		var replayed response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, again.Body, &replayed))

		require.Equal(t, created.ID, replayed.ID)
		require.True(t, replayed.Replayed)

		var count int
		require.NoError(t, s.DB.QueryRow(t.Context(), "SELECT count(*) FROM bookings").Scan(&count))
		require.Equal(t, 1, count)
	})

	s.Run("same key with another body is rejected", func() {
		t := s.T()
		key := uuid.NewString()

		require.Equal(t, http.StatusCreated, s.create(s.createRequest(), key).Code)

		other := s.createRequest()
		other.VehicleModel = "3008"
		w := s.create(other, key)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("slot taken by an earlier booking", func() {
		t := s.T()

		require.Equal(t, http.StatusCreated, s.create(s.createRequest(), uuid.NewString()).Code)

		w := s.create(s.createRequest(), uuid.NewString())
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Len(t, s.Ports.Payment.Authorizations, 1, "a taken slot is refused before authorizing")
	})

	s.Run("concurrent creates on one slot book it once", func() {
		t := s.T()
		const attempts = 8

		reqs := make([]*http.Request, attempts)
		for i := range reqs {
			reqs[i] = s.createRequestFor(s.createRequest(), uuid.NewString())
		}

		codes := make([]int, attempts)
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

		created, conflicts := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicts++
			}
		}
		require.Equal(t, 1, created, "codes: %v", codes)
		require.Equal(t, attempts-1, conflicts, "codes: %v", codes)

		var count int
		require.NoError(t, s.DB.QueryRow(t.Context(), "SELECT count(*) FROM bookings WHERE slot_id = $1", s.slotID).Scan(&count))
		require.Equal(t, 1, count)

		// every loser that got as far as authorizing was voided
		live := len(s.Ports.Payment.Authorizations) - len(s.Ports.Payment.Cancels)
		require.Equal(t, 1, live)
	})

	s.Run("vehicle type the mechanic does not inspect", func() {
		body := s.createRequest()
		body.VehicleType = "motorcycle"

		w := s.create(body, uuid.NewString())
		require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("mechanic cannot book", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, s.createRequest(), s.mechanicToken)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

func (s *bookingSuite) TestLifecycle() {
	s.Run("mechanic accepts, buyer cancels", func() {
		t := s.T()

		w := s.create(s.createRequest(), uuid.NewString())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		path := bookingsURL + "/" + created.ID.String()

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, path+"/accept", nil, s.mechanicToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "confirmed", s.status(created.ID))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, path+"/accept", nil, s.mechanicToken)
		require.Equal(t, http.StatusConflict, w.Code, "accept twice")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, path+"/cancel", nil, s.buyerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "cancelled", s.status(created.ID))
		require.Len(t, s.Ports.Payment.Cancels, 1)

		var booked bool
		err := s.DB.QueryRow(t.Context(), "SELECT is_booked FROM availability_slots WHERE id = $1", s.slotID).Scan(&booked)
		require.NoError(t, err)
		require.False(t, booked, "slot is released")
	})

	s.Run("mechanic refuses", func() {
		t := s.T()

		w := s.create(s.createRequest(), uuid.NewString())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID.String()+"/refuse", nil, s.mechanicToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "cancelled", s.status(created.ID))
	})

	s.Run("each party sees its own projection", func() {
		t := s.T()

		w := s.create(s.createRequest(), uuid.NewString())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		path := bookingsURL + "/" + created.ID.String()

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, path, nil, s.buyerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var buyerView map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &buyerView))
		require.Contains(t, buyerView, "total_price")
		require.NotContains(t, buyerView, "buyer_id")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, path, nil, s.mechanicToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var mechanicView map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &mechanicView))
		require.Contains(t, mechanicView, "buyer_id")

		stranger := authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", string(user.RoleBuyer))
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, path, nil, stranger)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("list pages through the buyer's bookings", func() {
		t := s.T()

		require.Equal(t, http.StatusCreated, s.create(s.createRequest(), uuid.NewString()).Code)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?limit=10", nil, s.buyerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var page struct {
			Items      []map[string]any `json:"items"`
			NextCursor string           `json:"next_cursor"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &page))
		require.Len(t, page.Items, 1)
		require.Empty(t, page.NextCursor)
	})
}
