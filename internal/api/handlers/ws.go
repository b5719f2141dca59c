package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"

	"github.com/Siddique-web/EchoPlay/internal/websocket"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler upgrades notification connections.
type WSHandler struct {
	manager *websocket.Manager
}

// NewWSHandler returns a websocket handler over the given manager.
func NewWSHandler(manager *websocket.Manager) *WSHandler {
	return &WSHandler{manager: manager}
}

// Connect upgrades the request and keeps the connection registered until
// the client goes away.
func (h *WSHandler) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := &websocket.Client{
		UserID: c.GetUint("user_id"),
		Conn:   conn,
	}
	h.manager.RegisterClient(client)

	go func() {
		defer func() {
			h.manager.UnregisterClient(client)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
