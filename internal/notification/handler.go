package notification

import (
	"net/http"

	"flamingo/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// origin policy is enforced by the CORS middleware on the rest of
		// the API; the socket carries no sensitive commands
		return true
	},
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// RegisterRoutes mounts the alert socket on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/alerts", middleware.AdminOnly(), h.Subscribe)
}

// Subscribe upgrades the request and keeps the connection registered
// until the peer goes away.
func (h *Handler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	userID := middleware.Principal(c).ID
	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	// drain control frames; the server never expects client messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
