package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"petmatch-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// wsConn serializes writes to a single connection. gorilla/websocket
// allows at most one concurrent writer, but pushes originate from
// arbitrary HTTP handler goroutines.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// WSHub manages WebSocket connections, one per user. Connected users
// receive push events when a match request, sitting booking or vet
// appointment addressed to them changes; delivery is best effort and
// never fails the HTTP operation that triggered it.
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*wsConn
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[string]*wsConn),
	}
}

// Register registers a new WebSocket connection for a user,
// replacing any stale one.
func (h *WSHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.connections[userID]; ok {
		existing.conn.Close()
	}
	h.connections[userID] = &wsConn{conn: conn}

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes a WebSocket connection for a user
func (h *WSHub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.connections[userID]; ok {
		c.conn.Close()
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// SendToUser sends a message to a specific user
func (h *WSHub) SendToUser(userID string, message WSMessage) error {
	h.mu.RLock()
	c, ok := h.connections[userID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user %s is not connected", userID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := c.write(data); err != nil {
		h.Unregister(userID)
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// IsOnline checks if a user is online
func (h *WSHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.connections[userID]
	return ok
}

// NotifyMatchRequested pushes a new match request to its recipient
func (h *WSHub) NotifyMatchRequested(m *models.MatchRequest) {
	h.notify(m.RecipientID, WSMessage{Type: "match_request", Data: m})
}

// NotifyMatchResponded pushes a response back to the requester
func (h *WSHub) NotifyMatchResponded(m *models.MatchRequest) {
	h.notify(m.RequesterID, WSMessage{Type: "match_response", Data: m})
}

// NotifyBookingRequested pushes a new sitting request to its sitter
func (h *WSHub) NotifyBookingRequested(b *models.SittingBooking) {
	h.notify(b.SitterID, WSMessage{Type: "sitting_request", Data: b})
}

// NotifyBookingUpdated pushes a booking status change to its owner
func (h *WSHub) NotifyBookingUpdated(b *models.SittingBooking) {
	h.notify(b.OwnerID, WSMessage{Type: "sitting_response", Data: b})
}

// NotifyBookingCancelled pushes an owner cancellation to the sitter
func (h *WSHub) NotifyBookingCancelled(b *models.SittingBooking) {
	h.notify(b.SitterID, WSMessage{Type: "sitting_cancelled", Data: b})
}

// NotifyAppointmentUpdated pushes an appointment change to a party
func (h *WSHub) NotifyAppointmentUpdated(userID string, a *models.VetAppointment) {
	h.notify(userID, WSMessage{Type: "appointment_update", Data: a})
}

func (h *WSHub) notify(userID string, message WSMessage) {
	if !h.IsOnline(userID) {
		return
	}
	if err := h.SendToUser(userID, message); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("type", message.Type).
			Msg("Failed to push notification")
	}
}
