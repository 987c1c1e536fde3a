package api

import (
	"context"
	"net/http"

	reqdto "inspection-marketplace/internal/handler/dto/request"
	resdto "inspection-marketplace/internal/handler/dto/response"
	"inspection-marketplace/internal/handler/httperr"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProposalHandler struct {
	cmds commands.ProposalCommands
	q    queries.ProposalQueries
}

func NewProposalHandler(cmds commands.ProposalCommands, q queries.ProposalQueries) *ProposalHandler {
	return &ProposalHandler{cmds: cmds, q: q}
}

// @Summary Propose an inspection date
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ProposeRequest true "Proposal"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /proposals [post]
func (h *ProposalHandler) Propose(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req reqdto.ProposeRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.cmds.Propose(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}

// @Summary Counter a proposal
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Param request body reqdto.CounterProposalRequest true "New date"
// @Success 201 {object} resdto.IDResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /proposals/{id}/counter [post]
func (h *ProposalHandler) Counter(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req reqdto.CounterProposalRequest
	if !bindJSON(c, &req) {
		return
	}
	next, err := h.cmds.Counter(c.Request.Context(), userID, id, req.ProposedAt)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.IDResponse{ID: next})
}

// @Summary Accept a proposal
// @Description Accepting creates the booking and its payment authorization
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 201 {object} resdto.AcceptProposalResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /proposals/{id}/accept [post]
func (h *ProposalHandler) Accept(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	res, err := h.cmds.Accept(c.Request.Context(), userID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromAcceptProposalResult(res))
}

// @Summary Refuse a proposal
// @Tags proposals
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /proposals/{id}/refuse [post]
func (h *ProposalHandler) Refuse(c *gin.Context) {
	h.transition(c, h.cmds.Refuse)
}

// @Summary Withdraw a proposal
// @Tags proposals
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /proposals/{id}/cancel [post]
func (h *ProposalHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cmds.Cancel)
}

// @Summary List my proposals
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} resdto.ProposalListResponse
// @Failure 400 {object} map[string]string
// @Router /proposals [get]
func (h *ProposalHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cursor, limit := listParams(c)
	items, next, err := h.q.ListMine(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProposalList(items, next))
}

func (h *ProposalHandler) transition(c *gin.Context, fn func(ctx context.Context, actorID, proposalID uuid.UUID) error) {
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
