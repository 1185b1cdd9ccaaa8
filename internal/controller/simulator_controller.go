package controller

import (
	"whatsapp-storefront-be/internal/dto"
	"whatsapp-storefront-be/internal/pkg/serverutils"
	"whatsapp-storefront-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISimulatorController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
}

// simulatorController drives the dialogue engine without WhatsApp. The
// reply still goes through the delivery pipeline; the synchronous response
// echoes the routing decision for inspection.
type simulatorController struct {
	dialogService service.IDialogService
}

func NewSimulatorController(dialogService service.IDialogService) ISimulatorController {
	return &simulatorController{dialogService: dialogService}
}

func (c *simulatorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/simulator")
	h.Post("/message", c.SendMessage)
	h.Post("/reset", c.ResetSession)
}

func (c *simulatorController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SimulateMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dialogService.HandleTurn(ctx.Context(), &dto.InboundMessage{
		PhoneNumberId: req.PhoneNumberId,
		From:          req.From,
		Text:          req.Text,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success simulate message", res))
}

func (c *simulatorController) ResetSession(ctx *fiber.Ctx) error {
	var req dto.ResetSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.dialogService.ResetSession(ctx.Context(), req.PhoneNumberId, req.From); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success reset session", nil))
}
