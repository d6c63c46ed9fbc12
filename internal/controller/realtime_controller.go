package controller

import (
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/pkg/serverutils"
	internalWS "fashion-chatbot-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IRealtimeController interface {
	RegisterRoutes(r fiber.Router)
	ServeWs(ctx *fiber.Ctx) error
}

type realtimeController struct {
	hub       *internalWS.Hub
	jwtSecret []byte
	logger    logger.ILogger
}

func NewRealtimeController(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) IRealtimeController {
	return &realtimeController{
		hub:       hub,
		jwtSecret: []byte(jwtSecret),
		logger:    log,
	}
}

func (c *realtimeController) RegisterRoutes(r fiber.Router) {
	r.Get("/ws", c.ServeWs)
}

// ServeWs authenticates the handshake, then hands the connection to the hub.
// Browsers pass the token as ?token=, other clients use the auth headers.
func (c *realtimeController) ServeWs(ctx *fiber.Ctx) error {
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		tokenStr = serverutils.ExtractToken(ctx)
	}
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}

	userID, err := serverutils.ParseUserID(tokenStr, c.jwtSecret)
	if err != nil {
		c.logger.Warn("WS", "Invalid token in handshake", map[string]interface{}{"error": err.Error()})
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		c.logger.Info("WS", "Session started", map[string]interface{}{"user_id": userID.String()})
		internalWS.ServeWs(c.hub, conn, userID)
		c.logger.Info("WS", "Session ended", map[string]interface{}{"user_id": userID.String()})
	})(ctx)
}
