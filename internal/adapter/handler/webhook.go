package handler

import (
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/minutemind/errors"
	aiUsecase "github.com/johnquangdev/minutemind/internal/usecase/ai"
	pkgai "github.com/johnquangdev/minutemind/pkg/ai"
)

const maxWebhookBody = 1 << 20

// WebhookHandler handles transcript webhooks from AssemblyAI
type WebhookHandler struct {
	aiService aiUsecase.Service
	logger    *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(aiService aiUsecase.Service, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		aiService: aiService,
		logger:    logger,
	}
}

// HandleAssemblyAIWebhook handles POST /webhooks/assemblyai
// @Summary      AssemblyAI webhook
// @Description  Receives transcript status changes. The shared secret is sent in the X-Webhook-Token header.
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Token  header    string  false  "Webhook secret"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /webhooks/assemblyai [post]
func (h *WebhookHandler) HandleAssemblyAIWebhook(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	token := c.Request().Header.Get(pkgai.WebhookAuthHeader)
	if err := h.aiService.HandleAssemblyAIWebhook(c.Request().Context(), body, token); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"status": "ok"})
}
