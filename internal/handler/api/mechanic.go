package api

import (
	"net/http"
	"time"

	reqdto "inspection-marketplace/internal/handler/dto/request"
	resdto "inspection-marketplace/internal/handler/dto/response"
	"inspection-marketplace/internal/handler/httperr"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// defaultAvailabilityWindow applies when ?to= is omitted.
const defaultAvailabilityWindow = 14 * 24 * time.Hour

type MechanicHandler struct {
	mechanics    commands.MechanicCommands
	availability commands.AvailabilityCommands
	slots        queries.AvailabilityQueries
}

func NewMechanicHandler(mechanics commands.MechanicCommands, availability commands.AvailabilityCommands, slots queries.AvailabilityQueries) *MechanicHandler {
	return &MechanicHandler{mechanics: mechanics, availability: availability, slots: slots}
}

// @Summary Create availability slot
// @Tags mechanics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSlotRequest true "Slot window"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /availability [post]
func (h *MechanicHandler) CreateSlot(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req reqdto.CreateSlotRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.availability.CreateSlot(c.Request.Context(), userID, req.StartsAt, req.EndsAt)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}

// @Summary List free slots
// @Description Unbooked future slots of a mechanic between from and to (RFC 3339)
// @Tags mechanics
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mechanic ID"
// @Param from query string false "Window start, defaults to now"
// @Param to query string false "Window end, defaults to from + 14 days"
// @Success 200 {array} queries.SlotView
// @Failure 400 {object} map[string]string
// @Router /mechanics/{id}/availability [get]
func (h *MechanicHandler) ListAvailability(c *gin.Context) {
	mechanicID, ok := pathID(c, "id")
	if !ok {
		return
	}
	from, ok := queryTime(c, "from", time.Now().UTC())
	if !ok {
		return
	}
	to, ok := queryTime(c, "to", from.Add(defaultAvailabilityWindow))
	if !ok {
		return
	}
	slots, err := h.slots.ListFree(c.Request.Context(), mechanicID, from, to)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if slots == nil {
		slots = []*queries.SlotView{}
	}
	c.JSON(http.StatusOK, slots)
}

// @Summary Upsert mechanic profile
// @Tags mechanics
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.UpsertProfileRequest true "Service area and vehicle types"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /mechanics/me/profile [put]
func (h *MechanicHandler) UpsertProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req reqdto.UpsertProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.mechanics.UpsertProfile(c.Request.Context(), userID, req.ToInput()); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Start payout onboarding
// @Description Create the mechanic's connected account and return the hosted onboarding link
// @Tags mechanics
// @Produce json
// @Security BearerAuth
// @Success 201 {object} resdto.PayoutOnboardingResponse
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /mechanics/me/payout-account [post]
func (h *MechanicHandler) StartPayoutOnboarding(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	res, err := h.mechanics.StartPayoutOnboarding(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPayoutOnboarding(res))
}

// @Summary Payout dashboard link
// @Tags mechanics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.URLResponse
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /mechanics/me/payout-dashboard [get]
func (h *MechanicHandler) PayoutDashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	url, err := h.mechanics.PayoutDashboardLink(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.URLResponse{URL: url})
}
