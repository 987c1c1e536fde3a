//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	nethttptest "net/http/httptest"
	"strconv"
	"testing"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/handler/api"
	resdto "inspection-marketplace/internal/handler/dto/response"
	"inspection-marketplace/internal/pkg/config"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/queries"
	"inspection-marketplace/tests/common/builder"
	"inspection-marketplace/tests/common/httptest"
	"inspection-marketplace/tests/common/testutil"
	commandsmock "inspection-marketplace/tests/mock/commands"
	queriesmock "inspection-marketplace/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	buyerID      uuid.UUID
	mechanicID   uuid.UUID
	storage      config.StorageConfig
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.storage = config.StorageConfig{MaxPhotoBytes: 1 << 10, MaxPhotos: 3}
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries, s.storage)
	s.buyerID = uuid.New()
	s.mechanicID = uuid.New()

	asBuyer := fakeAuth(s.buyerID, user.RoleBuyer)
	asMechanic := fakeAuth(s.mechanicID, user.RoleMechanic)

	s.router.POST("/bookings", asBuyer, s.handler.Create)
	s.router.GET("/bookings", asBuyer, s.handler.List)
	s.router.GET("/bookings/:id", asBuyer, s.handler.Get)
	s.router.GET("/mechanic/bookings/:id", asMechanic, s.handler.Get)
	s.router.POST("/bookings/:id/accept", asMechanic, s.handler.Accept)
	s.router.POST("/bookings/:id/refuse", asMechanic, s.handler.Refuse)
	s.router.POST("/bookings/:id/cancel", asBuyer, s.handler.Cancel)
	s.router.POST("/bookings/:id/check-in", asBuyer, s.handler.CheckIn)
	s.router.POST("/bookings/:id/code", asMechanic, s.handler.EnterCode)
	s.router.POST("/bookings/:id/check-out", asMechanic, s.handler.CheckOut)
	s.router.POST("/bookings/:id/validate", asBuyer, s.handler.Validate)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *BookingHandlerTestSuite) performWithKey(body any, key string) *nethttptest.ResponseRecorder {
	b, err := json.Marshal(body)
	s.Require().NoError(err)
	req := nethttptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	rec := nethttptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *BookingHandlerTestSuite) TestCreate() {
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
	key := uuid.New()
	bookingID := uuid.New()

	s.Run("success: returns 201 and passes buyer and key through", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateBookingInput) (*commands.CreateBookingResult, error) {
				s.Equal(s.buyerID, in.BuyerID)
				s.Equal(key, in.IdempotencyKey)
				s.Equal(reqBody.SlotID, in.SlotID)
				s.Equal(reqBody.VehiclePlate, in.VehiclePlate)
				return &commands.CreateBookingResult{BookingID: bookingID, ClientSecret: "pi_secret"}, nil
			}).Times(1)

		rec := s.performWithKey(reqBody, key.String())

		var body resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(bookingID, body.ID)
		s.Equal("pi_secret", body.ClientSecret)
		s.False(body.Replayed)
	})

	s.Run("success: a replay answers 200 with the original booking", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&commands.CreateBookingResult{BookingID: bookingID, IsReplayed: true}, nil).Times(1)

		rec := s.performWithKey(reqBody, key.String())

		var body resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Replayed)
		s.Empty(body.ClientSecret)
	})

	s.Run("error: 400 without a UUID idempotency key", func() {
		for _, k := range []string{"", "not-a-uuid"} {
			rec := s.performWithKey(reqBody, k)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key")
		}
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseBooking{
			{name: "unknown vehicle type", mutate: testutil.Field("vehicle_type", "boat"), expectCode: http.StatusBadRequest},
			{name: "year before 1950", mutate: testutil.Field("vehicle_year", 1949), expectCode: http.StatusBadRequest},
			{name: "latitude out of range", mutate: testutil.Field("meeting_lat", 90.5), expectCode: http.StatusBadRequest},
			{name: "missing slot", mutate: testutil.Field("slot_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing address", mutate: testutil.Field("meeting_address", nil), expectCode: http.StatusBadRequest},
			{name: "plate too long", mutate: testutil.Field("vehicle_plate", "ABCDEFGHIJKLMNOPQRSTU"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := s.performWithKey(testutil.DtoMap(s.T(), reqBody, tc.mutate), key.String())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: usecase errors map to statuses", func() {
		cases := []struct {
			err  error
			code int
		}{
			{commands.ErrSlotNotFound, http.StatusNotFound},
			{errs.Wrap(commands.ErrSlotAlreadyBooked, "reserve"), http.StatusConflict},
			{commands.ErrIdempotencyInProgress, http.StatusConflict},
			{commands.ErrIdempotencyMismatch, http.StatusUnprocessableEntity},
			{mechanic.ErrOutOfServiceArea, http.StatusUnprocessableEntity},
			{commands.ErrInsufficientNotice, http.StatusBadRequest},
			{errs.Wrap(commands.ErrPaymentUnavailable, "authorize"), http.StatusBadGateway},
			{errs.New("boom"), http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.err.Error(), func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
				rec := s.performWithKey(reqBody, key.String())
				httptest.AssertErrorResponse(s.T(), rec, tc.code, "")
			})
		}
	})

	s.Run("error: the 502 message asks to retry and hides the cause", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(commands.ErrPaymentUnavailable, "stripe: connection reset")).Times(1)
		rec := s.performWithKey(reqBody, key.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "please try again")
		s.NotContains(rec.Body.String(), "connection reset")
	})
}

func (s *BookingHandlerTestSuite) TestGet() {
	id := uuid.New()

	s.Run("success: buyer receives the buyer projection", func() {
		view := queries.BuyerBookingView{ID: id, MechanicID: s.mechanicID, Status: "confirmed", TotalPrice: "56.29"}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.buyerID, queries.RoleBuyer, id).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "token")

		var body queries.BuyerBookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		if diff := cmp.Diff(view, body); diff != "" {
			s.T().Errorf("view mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("success: mechanic role is forwarded", func() {
		view := queries.MechanicBookingView{ID: id, BuyerID: s.buyerID}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.mechanicID, queries.RoleMechanic, id).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/mechanic/bookings/"+id.String(), nil, "token")
		s.Equal(http.StatusOK, rec.Code)
		s.NotContains(rec.Body.String(), "total_price")
	})

	s.Run("error: 403 for a non-participant", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), gomock.Any(), id).Return(nil, queries.ErrBookingAccess).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/nope", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("success: forwards cursor and clamps limit", func() {
		next := &queries.Cursor{After: "next-page"}
		items := []queries.BookingView{queries.BuyerBookingView{ID: uuid.New()}}
		s.mockQueries.EXPECT().List(gomock.Any(), s.buyerID, queries.RoleBuyer, &queries.Cursor{After: "abc"}, queries.MaxListLimit).
			Return(items, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?cursor=abc&limit=500", nil, "token")

		var body struct {
			Items      []map[string]any `json:"items"`
			NextCursor string           `json:"next_cursor"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 1)
		s.Equal("next-page", body.NextCursor)
	})

	s.Run("success: empty page renders an empty array", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.buyerID, queries.RoleBuyer, nil, queries.DefaultListLimit).
			Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "token")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"items":[]}`, rec.Body.String())
	})

	s.Run("error: 400 on a bad cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?cursor=garbage", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid cursor")
	})
}

func (s *BookingHandlerTestSuite) TestTransitions() {
	id := uuid.New()

	s.Run("success: accept, refuse and cancel answer 204", func() {
		s.mockCommands.EXPECT().Accept(gomock.Any(), s.mechanicID, id).Return(nil).Times(1)
		s.mockCommands.EXPECT().Refuse(gomock.Any(), s.mechanicID, id).Return(nil).Times(1)
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.buyerID, id).Return(nil).Times(1)

		for _, action := range []string{"accept", "refuse", "cancel"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/"+action, nil, "token")
			s.Equal(http.StatusNoContent, rec.Code, action)
		}
	})

	s.Run("error: illegal transition is 409", func() {
		s.mockCommands.EXPECT().Accept(gomock.Any(), s.mechanicID, id).
			Return(errs.Wrap(booking.ErrInvalidTransition, "confirmed -> confirmed")).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/accept", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: wrong participant is 403", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.buyerID, id).Return(commands.ErrForbidden).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/cancel", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

func (s *BookingHandlerTestSuite) TestCheckIn() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/check-in"

	s.Run("success: returns the code once", func() {
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), s.buyerID, id, false).
			Return(&commands.CheckInResult{Code: "042133"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var body resdto.CheckInResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("042133", body.Code)
		s.Nil(body.DisputeID)
	})

	s.Run("success: reporting the mechanic absent opens a dispute", func() {
		disputeID := uuid.New()
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), s.buyerID, id, true).
			Return(&commands.CheckInResult{DisputeID: &disputeID}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"mechanic_absent": true}, "token")

		var body resdto.CheckInResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Code)
		s.Equal(&disputeID, body.DisputeID)
	})

	s.Run("error: outside the window is 409", func() {
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), s.buyerID, id, false).Return(nil, booking.ErrOutsideCheckIn).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *BookingHandlerTestSuite) TestEnterCode() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/code"

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().EnterCode(gomock.Any(), s.mechanicID, id, "123456").Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "123456"}, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on malformed codes", func() {
		for _, code := range []string{"12345", "1234567", "12a456", ""} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": code}, "token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("error: wrong code is 400, lockout is 429", func() {
		s.mockCommands.EXPECT().EnterCode(gomock.Any(), s.mechanicID, id, "000000").Return(booking.ErrInvalidCode).Times(1)
		s.mockCommands.EXPECT().EnterCode(gomock.Any(), s.mechanicID, id, "111111").Return(booking.ErrTooManyAttempts).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "000000"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "111111"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusTooManyRequests, "")
	})
}

type checkOutForm struct {
	photos    int
	photoSize int
	checklist string
	odometer  string
	plate     string
}

func (s *BookingHandlerTestSuite) performCheckOut(id uuid.UUID, f checkOutForm) *nethttptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i := 0; i < f.photos; i++ {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="photos"; filename="p`+strconv.Itoa(i)+`.jpg"`)
		h.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(h)
		s.Require().NoError(err)
		data := append([]byte{}, jpegHeader...)
		data = append(data, make([]byte, f.photoSize)...)
		_, err = part.Write(data)
		s.Require().NoError(err)
	}
	fields := map[string]string{"checklist": f.checklist, "odometer_km": f.odometer, "plate_reading": f.plate}
	for k, v := range fields {
		if v != "" {
			s.Require().NoError(w.WriteField(k, v))
		}
	}
	s.Require().NoError(w.Close())

	req := nethttptest.NewRequest(http.MethodPost, "/bookings/"+id.String()+"/check-out", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer token")
	rec := nethttptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *BookingHandlerTestSuite) TestCheckOut() {
	id := uuid.New()
	valid := checkOutForm{photos: 2, photoSize: 100, checklist: `{"brakes":"good","tyres":"worn"}`, odometer: "84210", plate: "AB-123-CD"}

	s.Run("success: photos and checklist reach the command", func() {
		proofID := uuid.New()
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), s.mechanicID, id, gomock.Any()).
			DoAndReturn(func(_ any, _, _ uuid.UUID, in commands.CheckOutInput) (*commands.CheckOutResult, error) {
				s.Len(in.Photos, 2)
				s.Equal("image/jpeg", in.Photos[0].ContentType)
				s.Equal(jpegHeader, in.Photos[0].Data[:len(jpegHeader)])
				s.Equal(map[string]string{"brakes": "good", "tyres": "worn"}, in.Conditions)
				s.Equal(84210, in.OdometerKm)
				s.Equal("AB-123-CD", in.PlateReading)
				s.Nil(in.GPSLat)
				return &commands.CheckOutResult{ProofID: proofID, ReportURL: "http://files/report.pdf"}, nil
			}).Times(1)

		rec := s.performCheckOut(id, valid)

		var body resdto.CheckOutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(proofID, body.ProofID)
		s.Equal("http://files/report.pdf", body.ReportURL)
	})

	s.Run("success: a resubmission returns 200", func() {
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), s.mechanicID, id, gomock.Any()).
			Return(&commands.CheckOutResult{ProofID: uuid.New(), IsReplayed: true}, nil).Times(1)
		rec := s.performCheckOut(id, valid)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: too many photos", func() {
		f := valid
		f.photos = s.storage.MaxPhotos + 1
		rec := s.performCheckOut(id, f)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "too many photos")
	})

	s.Run("error: oversized photo is 413", func() {
		f := valid
		f.photos = 1
		f.photoSize = int(s.storage.MaxPhotoBytes)
		rec := s.performCheckOut(id, f)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusRequestEntityTooLarge, "")
	})

	s.Run("error: 400 on bad form fields", func() {
		cases := map[string]checkOutForm{
			"no photos":          {photos: 0, checklist: valid.checklist, odometer: valid.odometer, plate: valid.plate},
			"checklist not json": {photos: 1, checklist: "brakes=good", odometer: valid.odometer, plate: valid.plate},
			"missing odometer":   {photos: 1, checklist: valid.checklist, plate: valid.plate},
			"negative odometer":  {photos: 1, checklist: valid.checklist, odometer: "-1", plate: valid.plate},
			"missing plate":      {photos: 1, checklist: valid.checklist, odometer: valid.odometer},
		}
		for name, f := range cases {
			s.Run(name, func() {
				rec := s.performCheckOut(id, f)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestValidate() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/validate"

	s.Run("success: acceptance", func() {
		s.mockCommands.EXPECT().Validate(gomock.Any(), s.buyerID, id, commands.ValidationInput{Accepted: true}).
			Return(&commands.ValidationResult{Status: booking.StatusValidated}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"accepted": true}, "token")

		var body resdto.ValidateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(string(booking.StatusValidated), body.Status)
	})

	s.Run("success: rejection opens a dispute", func() {
		disputeID := uuid.New()
		in := commands.ValidationInput{Accepted: false, Reason: "damage", Description: "scratched the door"}
		s.mockCommands.EXPECT().Validate(gomock.Any(), s.buyerID, id, in).
			Return(&commands.ValidationResult{Status: booking.StatusDisputed, DisputeID: &disputeID}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"accepted": false, "reason": "damage", "description": "scratched the door"}, "token")

		var body resdto.ValidateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(&disputeID, body.DisputeID)
	})

	s.Run("error: 400 when accepted is absent or the reason is unknown", func() {
		for _, body := range []map[string]any{{}, {"accepted": false, "reason": "vibes"}} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("error: incomplete rejection surfaces the reason", func() {
		s.mockCommands.EXPECT().Validate(gomock.Any(), s.buyerID, id, gomock.Any()).
			Return(nil, commands.ErrRejectionIncomplete).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"accepted": false}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "reason and a description")
	})
}
