package controller

import (
	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/pkg/apperror"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/pkg/serverutils"
	"fashion-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const chatFailureMessage = "Đã xảy ra lỗi khi xử lý tin nhắn"

type IChatbotController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	UpdatePreferences(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
	logger         logger.ILogger
}

func NewChatbotController(chatbotService service.IChatbotService, log logger.ILogger) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
		logger:         log,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Post("/message", auth, c.SendMessage)
	r.Get("/history", auth, c.GetHistory)
	r.Put("/user/preferences", auth, c.UpdatePreferences)
}

// SendMessage never leaks internal errors; the chat surface only shows a
// localized failure.
func (c *chatbotController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Tin nhắn không hợp lệ", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return apperror.Validation("Tin nhắn không được để trống", err)
	}

	userId := serverutils.UserID(ctx)
	res, err := c.chatbotService.ProcessMessage(ctx.Context(), userId, req.Message)
	if err != nil {
		c.logger.Error("CHATBOT", "Failed to process message", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, chatFailureMessage))
	}
	return ctx.JSON(res)
}

func (c *chatbotController) GetHistory(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.GetHistory(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatbotController) UpdatePreferences(ctx *fiber.Ctx) error {
	var req dto.UpdatePreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Dữ liệu không hợp lệ", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.UpdatePreferences(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
