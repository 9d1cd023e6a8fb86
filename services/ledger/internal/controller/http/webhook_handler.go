package http

import (
	"errors"
	"io"
	"net/http"

	"pool-fund/pkg/logger"
	"pool-fund/services/ledger/internal/usecase"
	"pool-fund/services/ledger/internal/webhook"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody caps what we read from a delivery.
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	webhookUseCase usecase.WebhookUseCase
	logger         *logger.Logger
}

func NewWebhookHandler(webhookUseCase usecase.WebhookUseCase, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhookUseCase: webhookUseCase,
		logger:         logger,
	}
}

// HandleStripe godoc
// @Summary      Payment provider webhook
// @Description  Verifies the Stripe-Signature header and applies the event to the ledger
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header  string  true  "t=<unix>,v1=<hex hmac>"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /webhooks/stripe [post]
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	result, err := h.webhookUseCase.HandleDelivery(c.Request.Context(), payload, c.GetHeader(webhook.SignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		case errors.Is(err, webhook.ErrMalformedEvent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event"})
		default:
			h.logger.Error("Webhook processing failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Processing failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"received": true,
		"handled":  result.Handled,
		"outcome":  result.Outcome,
	})
}
