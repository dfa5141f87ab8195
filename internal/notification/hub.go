package notification

import (
	"context"
	"sync"
	"time"

	"flamingo/internal/domain"

	"github.com/gorilla/websocket"
)

// LowSeatAlert is pushed to connected admins when an offer's seat counter
// drops to its alert threshold.
type LowSeatAlert struct {
	Type           string    `json:"type"`
	OfferID        int64     `json:"offerId"`
	Title          string    `json:"title"`
	AvailableSeats int       `json:"availableSeats"`
	TotalSeats     int       `json:"totalSeats"`
	At             time.Time `json:"at"`
}

// Hub tracks live admin websocket connections and fans alerts out to all
// of them. A user reconnecting replaces their previous connection.
type Hub struct {
	connections map[int64]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[userID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[userID] = conn
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[userID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, userID)
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

// NotifyLowSeats broadcasts a low-seat alert. Dead connections found
// while writing are dropped.
func (h *Hub) NotifyLowSeats(ctx context.Context, offer *domain.Offer) {
	alert := LowSeatAlert{
		Type:           "low_seats",
		OfferID:        offer.ID,
		Title:          offer.Title,
		AvailableSeats: offer.AvailableSeats,
		TotalSeats:     offer.TotalSeats,
		At:             time.Now(),
	}

	h.mutex.RLock()
	targets := make(map[int64]*websocket.Conn, len(h.connections))
	for id, conn := range h.connections {
		targets[id] = conn
	}
	h.mutex.RUnlock()

	for id, conn := range targets {
		if conn == nil {
			continue
		}
		if err := conn.WriteJSON(alert); err != nil {
			h.Unregister(id)
		}
	}
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, userID)
	}
}
