package websocket

import (
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

// Frame is the JSON text frame pushed to a user, e.g.
// {"type":"order_status","data":{...order...}}.
type Frame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func encodeFrame(msgType string, data interface{}) ([]byte, error) {
	return json.Marshal(Frame{Type: msgType, Data: data})
}

// conn is the part of *websocket.Conn the pumps drive.
type conn interface {
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one connection of an authenticated user. A user may hold several.
type Client struct {
	hub    *Hub
	conn   conn
	userID uuid.UUID
	send   chan []byte
}

func newClient(hub *Hub, c conn, userID uuid.UUID) *Client {
	return &Client{hub: hub, conn: c, userID: userID, send: make(chan []byte, sendBuffer)}
}

func (c *Client) UserID() uuid.UUID {
	return c.userID
}

// offer queues a frame without blocking; false means the buffer is full.
func (c *Client) offer(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// readPump drains inbound frames until the peer goes away. The push channel
// is one way, so payloads are dropped.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("Hub", "Unexpected websocket close", map[string]interface{}{
					"user_id": c.userID.String(),
					"error":   err.Error(),
				})
			}
			return
		}
	}
}

// writePump is the only writer on the connection. It exits when the hub
// closes send or a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.hub.logger.Debug("Hub", "Websocket write failed", map[string]interface{}{
					"user_id": c.userID.String(),
					"error":   err.Error(),
				})
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
