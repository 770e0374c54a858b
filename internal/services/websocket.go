package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/driveline/rental-backend/internal/models"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a connected staff dashboard
type Client struct {
	ID   uint
	Role string
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub
}

// Hub maintains the set of active clients
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client %d connected", client.ID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.Printf("Client %d disconnected", client.ID)
		}
	}
}

// BroadcastToUser sends a message to a specific user
func (h *Hub) BroadcastToUser(userID uint, message []byte) {
	// Full lock: clients that cannot keep up are dropped here.
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if client.ID == userID {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
			}
		}
	}
}

// BroadcastToRole sends a message to all connected users with a role
func (h *Hub) BroadcastToRole(role string, message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if client.Role == role {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
			}
		}
	}
}

// GetConnectedClients returns the number of connected clients
func (h *Hub) GetConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// WebSocket message envelope
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// BookingEvent notifies connected dashboards of a booking lifecycle change.
type BookingEvent struct {
	BookingID uint   `json:"bookingId"`
	VehicleID uint   `json:"vehicleId"`
	DriverID  *uint  `json:"driverId,omitempty"`
	Status    string `json:"status"`
	ActorID   uint   `json:"actorId"`
}

func marshalBookingEvent(eventType string, event BookingEvent) []byte {
	msg := WebSocketMessage{Type: eventType, Data: event}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling booking event: %v", err)
		return nil
	}
	return data
}

// BroadcastBookingEvent fans a lifecycle event out to every connected
// staff dashboard. Stakeholders are notified per-owner instead, via
// NotifyBookingEvent.
func (h *Hub) BroadcastBookingEvent(eventType string, event BookingEvent) {
	data := marshalBookingEvent(eventType, event)
	if data == nil {
		return
	}
	h.BroadcastToRole(string(models.RoleAdmin), data)
	h.BroadcastToRole(string(models.RoleEmployee), data)
}

// NotifyBookingEvent sends a lifecycle event to one user, typically the
// booked vehicle's owner.
func (h *Hub) NotifyBookingEvent(userID uint, eventType string, event BookingEvent) {
	data := marshalBookingEvent(eventType, event)
	if data == nil {
		return
	}
	h.BroadcastToUser(userID, data)
}

// HandleWebSocket handles WebSocket connections
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, role string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:   userID,
		Role: role,
		Conn: conn,
		Send: make(chan []byte, 256),
		Hub:  hub,
	}

	client.Hub.register <- client

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump()
}

// readPump drains the connection; dashboards are receive-only, so inbound
// frames are discarded but keep the connection's close handling alive.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
