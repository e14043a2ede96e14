package events

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"salonbook/internal/pkg/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// Origin is checked by the CORS middleware on the HTTP side; the
	// websocket endpoint authenticates via token instead.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades authenticated connections and streams the salon's
// appointment events to them.
type WSHandler struct {
	hub        *Hub
	jwtService *jwt.Service
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service) *WSHandler {
	return &WSHandler{
		hub:        hub,
		jwtService: jwtService,
	}
}

// HandleWebSocket serves GET /ws/events?token=JWT_TOKEN.
//
// Browsers cannot set headers on websocket handshakes, so the token rides in
// the query string. The feed is read-only: clients receive events and may
// only send pings.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Token is required. Use ?token=YOUR_JWT_TOKEN",
		})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired token",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	cl := &client{conn: conn, send: make(chan Event, 16)}
	h.hub.register(claims.SalonID, cl)
	log.Printf("Staff %d subscribed to salon %d events", claims.StaffID, claims.SalonID)

	defer func() {
		h.hub.unregister(claims.SalonID, cl)
		conn.Close()
		log.Printf("Staff %d unsubscribed from salon %d events", claims.StaffID, claims.SalonID)
	}()

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go h.writePump(cl)

	// Drain the connection so close frames and pongs are processed. Any
	// payload the client sends is ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for staff %d: %v", claims.StaffID, err)
			}
			return
		}
	}
}

// writePump pushes queued events and keeps the connection alive with pings.
func (h *WSHandler) writePump(cl *client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-cl.send:
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := cl.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
