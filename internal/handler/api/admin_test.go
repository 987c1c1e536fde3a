//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"inspection-marketplace/internal/domain/dispute"
	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/handler/api"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/queries"
	"inspection-marketplace/tests/common/httptest"
	commandsmock "inspection-marketplace/tests/mock/commands"
	queriesmock "inspection-marketplace/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	admin    *commandsmock.MockAdminCommands
	disputes *commandsmock.MockDisputeCommands
	q        *queriesmock.MockDisputeQueries
	adminID  uuid.UUID
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.admin = commandsmock.NewMockAdminCommands(s.mockCtrl)
	s.disputes = commandsmock.NewMockDisputeCommands(s.mockCtrl)
	s.q = queriesmock.NewMockDisputeQueries(s.mockCtrl)
	handler := api.NewAdminHandler(s.admin, s.disputes, s.q)
	s.adminID = uuid.New()

	auth := fakeAuth(s.adminID, user.RoleAdmin)
	s.router.GET("/admin/disputes", auth, handler.ListDisputes)
	s.router.POST("/admin/disputes/:id/resolve", auth, handler.ResolveDispute)
	s.router.POST("/admin/users/:id/verify-email", auth, handler.VerifyEmail)
	s.router.POST("/admin/mechanics/:id/verify-identity", auth, handler.VerifyIdentity)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) TestListDisputes() {
	s.Run("success: paging parameters are forwarded", func() {
		views := []*queries.DisputeView{{ID: uuid.New(), Reason: "damage", Status: "open"}}
		s.q.EXPECT().ListOpen(gomock.Any(), 10, 20).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/disputes?limit=10&offset=20", nil, "token")

		var body []queries.DisputeView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("success: defaults", func() {
		s.q.EXPECT().ListOpen(gomock.Any(), queries.DefaultListLimit, 0).Return(nil, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/disputes", nil, "token")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})
}

func (s *AdminHandlerTestSuite) TestResolveDispute() {
	id := uuid.New()
	url := "/admin/disputes/" + id.String() + "/resolve"

	s.Run("success: 204", func() {
		s.disputes.EXPECT().Resolve(gomock.Any(), s.adminID, id, "buyer", "mechanic never showed").Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"resolution": "buyer", "note": "mechanic never showed"}, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on an unknown resolution", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"resolution": "split"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: resolving twice is 409", func() {
		s.disputes.EXPECT().Resolve(gomock.Any(), s.adminID, id, "mechanic", "").Return(dispute.ErrAlreadyResolved).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"resolution": "mechanic"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: unknown dispute is 404", func() {
		s.disputes.EXPECT().Resolve(gomock.Any(), s.adminID, id, "mechanic", "").Return(commands.ErrDisputeNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"resolution": "mechanic"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "dispute not found")
	})
}

func (s *AdminHandlerTestSuite) TestVerification() {
	id := uuid.New()

	s.admin.EXPECT().VerifyEmail(gomock.Any(), id).Return(nil).Times(1)
	s.admin.EXPECT().VerifyIdentity(gomock.Any(), id).Return(commands.ErrMechanicNotFound).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/users/"+id.String()+"/verify-email", nil, "token")
	s.Equal(http.StatusNoContent, rec.Code)

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/mechanics/"+id.String()+"/verify-identity", nil, "token")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
}
