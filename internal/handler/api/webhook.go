package api

import (
	"io"
	"net/http"

	"inspection-marketplace/internal/handler/httperr"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	signatureHeader = "Stripe-Signature"
	maxWebhookBytes = 1 << 20
)

type WebhookHandler struct {
	cmds commands.WebhookCommands
}

func NewWebhookHandler(cmds commands.WebhookCommands) *WebhookHandler {
	return &WebhookHandler{cmds: cmds}
}

// @Summary Payment processor webhook
// @Description Signature-verified event ingestion. Replayed events are acknowledged without effect.
// @Tags webhooks
// @Accept json
// @Param Stripe-Signature header string true "Processor signature"
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /webhooks/payments [post]
func (h *WebhookHandler) Payments(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBytes))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Wrap(err, "read webhook body"), "Invalid request", nil)
		return
	}
	if err := h.cmds.Ingest(c.Request.Context(), payload, c.GetHeader(signatureHeader)); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
