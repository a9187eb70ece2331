package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/printbridge/printbridge/api/models"
)

const closeWriteWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	// same allow-all posture as the HTTP CORS middleware
	CheckOrigin: func(*http.Request) bool { return true },
}

// ServeWS upgrades the connection and runs one intake session: a capability
// hello pushed exactly once, then one PrintResult reply per inbound image
// frame. Frames on this path always target the system default printer.
// Sessions are independent; the executor serializes them per device.
func (h *Handler) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if err := h.sendHello(conn); err != nil {
		h.Logger.Error("capability push failed", "error", err)
		return
	}
	h.Logger.Debug("websocket client connected", "remote", conn.RemoteAddr())

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				h.Logger.Debug("websocket client closed", "remote", conn.RemoteAddr())
				return
			}
			h.Logger.Error("websocket read failed", "error", err)
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "read failed"),
				time.Now().Add(closeWriteWait))
			return
		}

		if messageType != websocket.TextMessage {
			// not a submission; reply inline and keep the connection open
			if err := conn.WriteJSON(models.ErrorMessage{Error: "expected a base64 image text frame"}); err != nil {
				h.Logger.Error("websocket reply failed", "error", err)
				return
			}
			continue
		}

		result := h.Executor.PrintLabel(string(payload), "")
		if err := conn.WriteJSON(result); err != nil {
			h.Logger.Error("websocket reply failed", "error", err)
			return
		}
	}
}

func (h *Handler) sendHello(conn *websocket.Conn) error {
	printers, err := h.Spooler.Printers()
	if err != nil {
		return fmt.Errorf("enumerate printers: %w", err)
	}

	defaultPrinter, err := h.Spooler.DefaultPrinter()
	if err != nil {
		h.Logger.Warn("default printer lookup failed", "error", err)
		defaultPrinter = ""
	}

	return conn.WriteJSON(models.NewHelloMessage(printers, defaultPrinter))
}
