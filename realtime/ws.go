package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/iamkaranroushan/grocery-application-backend/middleware"
	"github.com/iamkaranroushan/grocery-application-backend/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// inbound is a client-originated event. The orderUpdated relay exists because
// the status mutation itself does not broadcast: the operator UI that learns
// of a status change re-broadcasts it to the affected customer.
type inbound struct {
	Event string          `json:"event"`
	Order json.RawMessage `json:"order"`
}

// ServeWS upgrades an authenticated session and subscribes it to its room.
// Room membership is derived from the verified token, never from fields the
// client declares after connecting.
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, err := middleware.CurrentUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		room := UserRoom(userID)
		if role == models.RoleAdmin {
			room = AdminRoom
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("realtime: upgrade failed: %v", err)
			return
		}

		client := hub.register(room, conn)
		defer func() {
			hub.unregister(room, client)
			conn.Close()
		}()

		conn.SetReadLimit(maxMessageSize)
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return
		}
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(pingPeriod)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if err := client.ping(); err != nil {
						return
					}
				}
			}
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("realtime: read error in room %s: %v", room, err)
				}
				return
			}

			var msg inbound
			if err := json.Unmarshal(raw, &msg); err != nil {
				continue
			}
			hub.relay(role, msg)
		}
	}
}

// relay routes a client-originated event to its audience.
func (h *Hub) relay(senderRole string, msg inbound) {
	switch msg.Event {
	case "orderPlaced":
		h.Publish(AdminRoom, Event{
			Event:   "newOrder",
			Message: "New order placed",
			Order:   msg.Order,
		})
	case "orderUpdated":
		// Only operators may push into another user's room.
		if senderRole != models.RoleAdmin {
			return
		}
		var order struct {
			UserID uint `json:"userId"`
		}
		if err := json.Unmarshal(msg.Order, &order); err != nil || order.UserID == 0 {
			return
		}
		h.Publish(UserRoom(order.UserID), Event{
			Event:   "updatedOrder",
			Message: "New order updated",
			Order:   msg.Order,
		})
	}
}
