package api

import (
	"net/http"

	reqdto "inspection-marketplace/internal/handler/dto/request"
	"inspection-marketplace/internal/handler/httperr"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

type AdminHandler struct {
	admin    commands.AdminCommands
	disputes commands.DisputeCommands
	q        queries.DisputeQueries
}

func NewAdminHandler(admin commands.AdminCommands, disputes commands.DisputeCommands, q queries.DisputeQueries) *AdminHandler {
	return &AdminHandler{admin: admin, disputes: disputes, q: q}
}

// @Summary List open disputes
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} queries.DisputeView
// @Failure 403 {object} map[string]string
// @Router /admin/disputes [get]
func (h *AdminHandler) ListDisputes(c *gin.Context) {
	limit := queries.ValidateLimit(cast.ToInt(c.Query("limit")))
	items, err := h.q.ListOpen(c.Request.Context(), limit, cast.ToInt(c.Query("offset")))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if items == nil {
		items = []*queries.DisputeView{}
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Resolve dispute
// @Description Resolution "buyer" refunds the buyer; "mechanic" releases the payment
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "Dispute ID"
// @Param request body reqdto.ResolveDisputeRequest true "Resolution"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/disputes/{id}/resolve [post]
func (h *AdminHandler) ResolveDispute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	var req reqdto.ResolveDisputeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.disputes.Resolve(c.Request.Context(), adminID, id, req.Resolution, req.Note); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Mark email verified
// @Tags admin
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /admin/users/{id}/verify-email [post]
func (h *AdminHandler) VerifyEmail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.admin.VerifyEmail(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Mark mechanic identity verified
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Mechanic user ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /admin/mechanics/{id}/verify-identity [post]
func (h *AdminHandler) VerifyIdentity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.admin.VerifyIdentity(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
