package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/sokhnamaimouna97/Paps/internal/ws"
)

// FeedHandler upgrades merchant dashboard connections onto the order event
// feed.
type FeedHandler struct {
	Hub *ws.Hub
}

func NewFeedHandler(hub *ws.Hub) *FeedHandler {
	return &FeedHandler{Hub: hub}
}

// WebSocketUpgradeMiddleware ensures the client is trying to upgrade to WebSocket
func (h *FeedHandler) WebSocketUpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler returns the websocket handler function
func (h *FeedHandler) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		// user_id is set by the auth middleware before the upgrade
		merchantID, ok := conn.Locals("user_id").(string)
		if !ok || merchantID == "" {
			conn.Close()
			return
		}

		client := &ws.Client{
			Hub:        h.Hub,
			Conn:       conn,
			Send:       make(chan []byte, 64),
			MerchantID: merchantID,
		}
		h.Hub.Register <- client

		go client.WritePump()
		client.ReadPump()
	})
}
