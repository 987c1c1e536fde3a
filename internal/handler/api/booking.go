package api

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	reqdto "inspection-marketplace/internal/handler/dto/request"
	resdto "inspection-marketplace/internal/handler/dto/response"
	"inspection-marketplace/internal/handler/httperr"
	"inspection-marketplace/internal/handler/middleware"
	"inspection-marketplace/internal/pkg/config"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/queries"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errIdempotencyKey = errs.New("Idempotency-Key header must be a UUID")

// multipartOverhead covers the non-photo form fields of a check-out.
const multipartOverhead = 1 << 20

type BookingHandler struct {
	cmds    commands.BookingCommands
	q       queries.BookingQueries
	storage config.StorageConfig
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries, storage config.StorageConfig) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, storage: storage}
}

// @Summary Create booking
// @Description Book a free slot. The payment is authorized, not captured. Replaying the same
// @Description Idempotency-Key with the same body returns the original booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key (UUID)"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Success 200 {object} resdto.CreateBookingResponse "Replayed request"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	key, err := uuid.Parse(c.GetHeader("Idempotency-Key"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errIdempotencyKey), errIdempotencyKey.Error(), nil)
		return
	}
	var req reqdto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.cmds.Create(c.Request.Context(), req.ToInput(userID, key))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	status := http.StatusCreated
	if res.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromCreateBookingResult(res))
}

// @Summary Get booking
// @Description The fields returned depend on the caller's role
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BuyerBookingView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)
	view, err := h.q.GetByID(c.Request.Context(), userID, string(role), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List bookings
// @Description Buyers and mechanics see their own bookings; admins see all
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)
	cursor, limit := listParams(c)
	items, next, err := h.q.List(c.Request.Context(), userID, string(role), cursor, limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingList(items, next))
}

// @Summary Accept booking
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/accept [post]
func (h *BookingHandler) Accept(c *gin.Context) {
	h.transition(c, h.cmds.Accept)
}

// @Summary Refuse booking
// @Description Refusing voids the payment authorization and frees the slot
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/refuse [post]
func (h *BookingHandler) Refuse(c *gin.Context) {
	h.transition(c, h.cmds.Refuse)
}

// @Summary Cancel booking
// @Description Buyer cancellation; late cancellations are not refunded in full
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cmds.Cancel)
}

// @Summary Check in
// @Description Buyer confirms presence and receives the one-time code, or reports the mechanic absent
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CheckInRequest false "Check-in"
// @Success 200 {object} resdto.CheckInResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/check-in [post]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req reqdto.CheckInRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	res, err := h.cmds.CheckIn(c.Request.Context(), userID, id, req.MechanicAbsent)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckInResult(res))
}

// @Summary Enter check-in code
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.EnterCodeRequest true "Code"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /bookings/{id}/code [post]
func (h *BookingHandler) EnterCode(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req reqdto.EnterCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.EnterCode(c.Request.Context(), userID, id, req.Code); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Check out
// @Description Submit the inspection proof. A second submission returns the stored proof.
// @Tags bookings
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param photos formData file true "Photos (repeatable)"
// @Param checklist formData string true "JSON object of component to condition"
// @Param notes formData string false "JSON object of component to note"
// @Param odometer_km formData int true "Odometer reading"
// @Param plate_reading formData string true "Plate as read on site"
// @Param gps_lat formData number false "Latitude"
// @Param gps_lng formData number false "Longitude"
// @Success 201 {object} resdto.CheckOutResponse
// @Success 200 {object} resdto.CheckOutResponse "Replayed submission"
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /bookings/{id}/check-out [post]
func (h *BookingHandler) CheckOut(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit := h.storage.MaxPhotoBytes*int64(h.storage.MaxPhotos) + multipartOverhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	var form reqdto.CheckOutForm
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errs.As(err, &tooLarge) {
			httperr.Respond(c, errs.Mark(err, shared.ErrContentTooLarge))
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if len(form.Photos) > h.storage.MaxPhotos {
		httperr.Respond(c, commands.ErrTooManyPhotos)
		return
	}
	in, err := form.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid checklist", nil)
		return
	}
	if in.Photos, err = h.readPhotos(form.Photos); err != nil {
		httperr.Respond(c, err)
		return
	}

	res, err := h.cmds.CheckOut(c.Request.Context(), userID, id, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	status := http.StatusCreated
	if res.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromCheckOutResult(res))
}

// @Summary Validate inspection
// @Description Accept releases the payment after a delay; rejecting opens a dispute
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ValidateBookingRequest true "Validation"
// @Success 200 {object} resdto.ValidateBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/validate [post]
func (h *BookingHandler) Validate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req reqdto.ValidateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.cmds.Validate(c.Request.Context(), userID, id, req.ToInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromValidationResult(res))
}

func (h *BookingHandler) transition(c *gin.Context, fn func(ctx context.Context, actorID, bookingID uuid.UUID) error) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := fn(c.Request.Context(), userID, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) readPhotos(files []*multipart.FileHeader) ([]commands.Photo, error) {
	photos := make([]commands.Photo, 0, len(files))
	for _, fh := range files {
		if fh.Size > h.storage.MaxPhotoBytes {
			return nil, errs.Wrapf(shared.ErrContentTooLarge, "photo %q is %d bytes", fh.Filename, fh.Size)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, errs.Wrap(err, "open photo")
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, errs.Wrap(err, "read photo")
		}
		photos = append(photos, commands.Photo{Data: data, ContentType: fh.Header.Get("Content-Type")})
	}
	return photos, nil
}
