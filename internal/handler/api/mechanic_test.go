//go:build unit

package api_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/domain/slot"
	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/handler/api"
	resdto "inspection-marketplace/internal/handler/dto/response"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/queries"
	"inspection-marketplace/tests/common/httptest"
	commandsmock "inspection-marketplace/tests/mock/commands"
	queriesmock "inspection-marketplace/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MechanicHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mechanics    *commandsmock.MockMechanicCommands
	availability *commandsmock.MockAvailabilityCommands
	slots        *queriesmock.MockAvailabilityQueries
	userID       uuid.UUID
}

func (s *MechanicHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mechanics = commandsmock.NewMockMechanicCommands(s.mockCtrl)
	s.availability = commandsmock.NewMockAvailabilityCommands(s.mockCtrl)
	s.slots = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	handler := api.NewMechanicHandler(s.mechanics, s.availability, s.slots)
	s.userID = uuid.New()

	auth := fakeAuth(s.userID, user.RoleMechanic)
	s.router.POST("/availability", auth, handler.CreateSlot)
	s.router.GET("/mechanics/:id/availability", auth, handler.ListAvailability)
	s.router.PUT("/mechanics/me/profile", auth, handler.UpsertProfile)
	s.router.POST("/mechanics/me/payout-account", auth, handler.StartPayoutOnboarding)
	s.router.GET("/mechanics/me/payout-dashboard", auth, handler.PayoutDashboard)
}

func (s *MechanicHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMechanicHandlerSuite(t *testing.T) {
	suite.Run(t, new(MechanicHandlerTestSuite))
}

func (s *MechanicHandlerTestSuite) TestCreateSlot() {
	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	s.Run("success: 201", func() {
		id := uuid.New()
		s.availability.EXPECT().CreateSlot(gomock.Any(), s.userID, start, end).Return(id, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability",
			map[string]any{"starts_at": start, "ends_at": end}, "token")

		var body resdto.IDResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(id, body.ID)
	})

	s.Run("error: end before start is rejected at binding", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability",
			map[string]any{"starts_at": end, "ends_at": start}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: overlap is 409", func() {
		s.availability.EXPECT().CreateSlot(gomock.Any(), s.userID, start, end).Return(uuid.Nil, slot.ErrOverlap).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability",
			map[string]any{"starts_at": start, "ends_at": end}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *MechanicHandlerTestSuite) TestListAvailability() {
	mechanicID := uuid.New()
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(7 * 24 * time.Hour)

	s.Run("success: explicit window", func() {
		views := []*queries.SlotView{{ID: uuid.New(), MechanicID: mechanicID, StartsAt: from.Add(time.Hour), EndsAt: from.Add(2 * time.Hour)}}
		s.slots.EXPECT().ListFree(gomock.Any(), mechanicID, from, to).Return(views, nil).Times(1)

		q := url.Values{"from": {from.Format(time.RFC3339)}, "to": {to.Format(time.RFC3339)}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/mechanics/"+mechanicID.String()+"/availability?"+q.Encode(), nil, "token")

		var body []queries.SlotView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("success: to defaults to two weeks after from", func() {
		s.slots.EXPECT().ListFree(gomock.Any(), mechanicID, from, from.Add(14*24*time.Hour)).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/mechanics/"+mechanicID.String()+"/availability?from="+url.QueryEscape(from.Format(time.RFC3339)), nil, "token")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("error: 400 on an unparsable time", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/mechanics/"+mechanicID.String()+"/availability?from=yesterday", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid from")
	})

	s.Run("error: 400 on an oversized range", func() {
		s.slots.EXPECT().ListFree(gomock.Any(), mechanicID, gomock.Any(), gomock.Any()).Return(nil, queries.ErrInvalidRange).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/mechanics/"+mechanicID.String()+"/availability", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *MechanicHandlerTestSuite) TestUpsertProfile() {
	body := map[string]any{
		"base_lat":          48.85,
		"base_lng":          2.35,
		"service_radius_km": 40,
		"free_zone_km":      "10.5",
		"vehicle_types":     []string{"car", "van"},
	}

	s.Run("success: decimal free zone is parsed exactly", func() {
		s.mechanics.EXPECT().UpsertProfile(gomock.Any(), s.userID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, in commands.ProfileInput) error {
				s.True(in.FreeZoneKm.Equal(decimal.RequireFromString("10.5")))
				s.Equal([]string{"car", "van"}, in.VehicleTypes)
				return nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/mechanics/me/profile", body, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on unknown vehicle type or empty list", func() {
		for _, types := range [][]string{{"boat"}, {}} {
			b := map[string]any{}
			for k, v := range body {
				b[k] = v
			}
			b["vehicle_types"] = types
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/mechanics/me/profile", b, "token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("error: domain rejection of the service area", func() {
		s.mechanics.EXPECT().UpsertProfile(gomock.Any(), s.userID, gomock.Any()).Return(mechanic.ErrInvalidServiceArea).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/mechanics/me/profile", body, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *MechanicHandlerTestSuite) TestPayout() {
	s.Run("onboarding returns the hosted link", func() {
		s.mechanics.EXPECT().StartPayoutOnboarding(gomock.Any(), s.userID).
			Return(&commands.PayoutOnboarding{AccountID: "acct_1", OnboardingURL: "https://connect.example/onboard"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/mechanics/me/payout-account", nil, "token")

		var body resdto.PayoutOnboardingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("acct_1", body.AccountID)
	})

	s.Run("onboarding twice is 409", func() {
		s.mechanics.EXPECT().StartPayoutOnboarding(gomock.Any(), s.userID).Return(nil, commands.ErrPayoutAccountExists).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/mechanics/me/payout-account", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("dashboard without an account is 422", func() {
		s.mechanics.EXPECT().PayoutDashboardLink(gomock.Any(), s.userID).Return("", mechanic.ErrNoPayoutAccount).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/mechanics/me/payout-dashboard", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})

	s.Run("dashboard link", func() {
		s.mechanics.EXPECT().PayoutDashboardLink(gomock.Any(), s.userID).Return("https://connect.example/login", nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/mechanics/me/payout-dashboard", nil, "token")

		var body resdto.URLResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("https://connect.example/login", body.URL)
	})
}
