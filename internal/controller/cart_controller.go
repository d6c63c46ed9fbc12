package controller

import (
	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/pkg/apperror"
	"fashion-chatbot-be/internal/pkg/serverutils"
	"fashion-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICartController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetCart(ctx *fiber.Ctx) error
	AddItem(ctx *fiber.Ctx) error
	UpdateItem(ctx *fiber.Ctx) error
	RemoveItem(ctx *fiber.Ctx) error
	Pay(ctx *fiber.Ctx) error
}

type cartController struct {
	cartService     service.ICartService
	checkoutService service.ICheckoutService
}

func NewCartController(cartService service.ICartService, checkoutService service.ICheckoutService) ICartController {
	return &cartController{
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

func (c *cartController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/cart", auth)
	h.Get("", c.GetCart)
	h.Post("", c.AddItem)
	h.Put("/update", c.UpdateItem)
	h.Delete("/remove", c.RemoveItem)
	h.Post("/payment", c.Pay)
}

func bindBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Validation("Dữ liệu không hợp lệ", err)
	}
	return serverutils.ValidateRequest(req)
}

func (c *cartController) GetCart(ctx *fiber.Ctx) error {
	res, err := c.cartService.GetCart(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *cartController) AddItem(ctx *fiber.Ctx) error {
	var req dto.AddToCartRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.cartService.AddItem(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *cartController) UpdateItem(ctx *fiber.Ctx) error {
	var req dto.UpdateCartRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.cartService.UpdateItem(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *cartController) RemoveItem(ctx *fiber.Ctx) error {
	var req dto.RemoveCartRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.cartService.RemoveItem(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *cartController) Pay(ctx *fiber.Ctx) error {
	var req dto.PaymentRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.checkoutService.Pay(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
