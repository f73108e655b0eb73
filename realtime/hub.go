package realtime

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// AdminRoom is the single shared broadcast group all admin sessions join.
const AdminRoom = "admin"

// UserRoom returns the per-customer room name for a user id.
func UserRoom(userID uint) string {
	return fmt.Sprintf("user-%d", userID)
}

// Event is the envelope pushed to subscribed sessions.
type Event struct {
	Event   string      `json:"event"`
	Message string      `json:"message"`
	Order   interface{} `json:"order,omitempty"`
}

// client wraps a websocket connection with a write lock, since gorilla
// permits only one concurrent writer per connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// Hub owns the room registry: room name -> set of active sessions. Delivery
// is at-most-once and best-effort; if no session is subscribed at publish
// time the event is dropped and the durable notification row is the
// recovery path.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*client]bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*client]bool)}
}

func (h *Hub) register(room string, conn *websocket.Conn) *client {
	c := &client{conn: conn}
	h.mu.Lock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]bool)
	}
	h.rooms[room][c] = true
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(room string, c *client) {
	h.mu.Lock()
	if clients, ok := h.rooms[room]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
	h.mu.Unlock()
}

// Publish sends one event to every session currently in the room and reports
// how many deliveries succeeded. Failed connections are pruned.
func (h *Hub) Publish(room string, ev Event) int {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range clients {
		if err := c.send(ev); err != nil {
			log.Printf("realtime: dropping client in room %s: %v", room, err)
			h.unregister(room, c)
			c.conn.Close()
			continue
		}
		delivered++
	}
	return delivered
}

// RoomSize reports the number of active sessions in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
