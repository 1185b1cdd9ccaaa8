package controller

import (
	"whatsapp-storefront-be/internal/dto"
	"whatsapp-storefront-be/internal/pkg/logger"
	"whatsapp-storefront-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Verify(ctx *fiber.Ctx) error
	HandleEvent(ctx *fiber.Ctx) error
}

type webhookController struct {
	dialogService service.IDialogService
	verifyToken   string
	log           logger.ILogger
}

func NewWebhookController(dialogService service.IDialogService, verifyToken string, log logger.ILogger) IWebhookController {
	return &webhookController{
		dialogService: dialogService,
		verifyToken:   verifyToken,
		log:           log,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook")
	h.Get("", c.Verify)
	h.Post("", c.HandleEvent)
}

// Verify answers the Meta subscription handshake.
func (c *webhookController) Verify(ctx *fiber.Ctx) error {
	mode := ctx.Query("hub.mode")
	token := ctx.Query("hub.verify_token")
	challenge := ctx.Query("hub.challenge")

	if mode == "subscribe" && token == c.verifyToken {
		return ctx.Status(fiber.StatusOK).SendString(challenge)
	}

	return ctx.SendStatus(fiber.StatusForbidden)
}

// HandleEvent processes one inbound event. It always acks with 200:
// Meta retries non-2xx deliveries and a retried turn would double-reply.
func (c *webhookController) HandleEvent(ctx *fiber.Ctx) error {
	var payload dto.WebhookPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.JSON(fiber.Map{"received": true})
	}

	phoneNumberId, from, body, ok := payload.FirstMessage()
	if !ok {
		return ctx.JSON(fiber.Map{"received": true})
	}

	if _, err := c.dialogService.HandleTurn(ctx.Context(), &dto.InboundMessage{
		PhoneNumberId: phoneNumberId,
		From:          from,
		Text:          body,
	}); err != nil {
		c.log.Error("webhook", "Turn failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{"received": true})
}
