package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs registers the connection and blocks until the peer goes away.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID) {
	serve(hub, c, userID)
}

func serve(hub *Hub, c conn, userID uuid.UUID) {
	client := newClient(hub, c, userID)
	hub.register <- client

	go client.writePump()
	client.readPump()
}
