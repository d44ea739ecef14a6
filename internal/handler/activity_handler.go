package handler

import (
	"study-assistant-be/internal/pkg/logger"
	internalWS "study-assistant-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ActivityHandler exposes the live activity feed over a websocket.
type ActivityHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewActivityHandler(hub *internalWS.Hub, log logger.ILogger) *ActivityHandler {
	return &ActivityHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs upgrades the request and streams activity events until the peer
// disconnects. Plain HTTP requests get 426.
func (h *ActivityHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("ActivityHandler", "WebSocket session started", map[string]interface{}{"remote": conn.RemoteAddr().String()})
		internalWS.ServeWs(h.hub, conn)
		h.logger.Info("ActivityHandler", "WebSocket session ended", nil)
	})(c)
}

func (h *ActivityHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/activity", h.ServeWs)
}
