package controller

import (
	"encoding/json"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/pkg/apperror"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/pkg/serverutils"
	"fashion-chatbot-be/internal/service"
	"fashion-chatbot-be/pkg/payment/momo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Callback(ctx *fiber.Ctx) error
	CheckStatus(ctx *fiber.Ctx) error
	ListOrders(ctx *fiber.Ctx) error
	CancelOrder(ctx *fiber.Ctx) error
}

type paymentController struct {
	checkoutService service.ICheckoutService
	logger          logger.ILogger
}

func NewPaymentController(checkoutService service.ICheckoutService, log logger.ILogger) IPaymentController {
	return &paymentController{
		checkoutService: checkoutService,
		logger:          log,
	}
}

func (c *paymentController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	m := r.Group("/momo")
	m.Post("/callback", c.Callback)
	m.Post("/check-status", auth, c.CheckStatus)

	o := r.Group("/orders", auth)
	o.Get("", c.ListOrders)
	o.Post("/:orderId/cancel", c.CancelOrder)
}

// Callback acknowledges every notification with 204 so the gateway stops
// retrying; outcomes are only logged.
func (c *paymentController) Callback(ctx *fiber.Ctx) error {
	var ipn momo.IPN
	if err := json.Unmarshal(ctx.Body(), &ipn); err != nil {
		c.logger.Warn("MOMO", "Malformed callback body", map[string]interface{}{"error": err.Error()})
		return ctx.SendStatus(fiber.StatusNoContent)
	}

	if err := c.checkoutService.HandleCallback(ctx.Context(), &ipn); err != nil {
		if !service.IsInvalidSignature(err) {
			c.logger.Error("MOMO", "Callback processing failed", map[string]interface{}{
				"order_code": ipn.OrderId,
				"error":      err.Error(),
			})
		}
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *paymentController) CheckStatus(ctx *fiber.Ctx) error {
	var req dto.CheckStatusRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.checkoutService.CheckStatus(ctx.Context(), serverutils.UserID(ctx), req.OrderId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *paymentController) ListOrders(ctx *fiber.Ctx) error {
	res, err := c.checkoutService.ListOrders(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *paymentController) CancelOrder(ctx *fiber.Ctx) error {
	orderId, err := uuid.Parse(ctx.Params("orderId"))
	if err != nil {
		return apperror.Validation("orderId không hợp lệ", err)
	}
	res, err := c.checkoutService.CancelOrder(ctx.Context(), serverutils.UserID(ctx), orderId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
