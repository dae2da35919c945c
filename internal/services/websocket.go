package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a WebSocket client
type Client struct {
	ID       uint
	UserType string
	Conn     *websocket.Conn
	Send     chan []byte
	Hub      *Hub
}

// Hub maintains the set of active clients and broadcasts messages
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
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.ID == userID {
			select {
			case client.Send <- message:
			default:
				log.Printf("Warning: Could not send to client %d (channel full)", client.ID)
			}
		}
	}
}

// BroadcastToUserType sends a message to all users of a specific type
func (h *Hub) BroadcastToUserType(userType string, message []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.UserType == userType {
			select {
			case client.Send <- message:
			default:
				log.Printf("Warning: Could not send to client %d (channel full)", client.ID)
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

// WebSocket message types
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// TripCreated tells connected drivers a new trip is open for bidding
type TripCreated struct {
	TripID        uint      `json:"tripId"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureDate time.Time `json:"departureDate"`
	SeatsNeeded   int       `json:"seatsNeeded"`
	MaxPrice      float64   `json:"maxPrice"`
}

// BidSubmitted tells the trip owner a driver has placed or updated a bid
type BidSubmitted struct {
	BidID     uint    `json:"bidId"`
	TripID    uint    `json:"tripId"`
	DriverID  uint    `json:"driverId"`
	BidAmount float64 `json:"bidAmount"`
}

// BidAccepted tells the winning driver their bid turned into a booking
type BidAccepted struct {
	BidID      uint      `json:"bidId"`
	TripID     uint      `json:"tripId"`
	BookingID  uint      `json:"bookingId"`
	FinalPrice float64   `json:"finalPrice"`
	PickupTime time.Time `json:"pickupTime"`
}

// BidRejected tells a driver the trip owner declined their bid
type BidRejected struct {
	BidID  uint `json:"bidId"`
	TripID uint `json:"tripId"`
}

// TripCompleted tells both parties the booking is closed out
type TripCompleted struct {
	TripID    uint `json:"tripId"`
	BookingID uint `json:"bookingId"`
}

// HandleWebSocket handles WebSocket connections
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, userType string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:       userID,
		UserType: userType,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Hub:      hub,
	}

	client.Hub.register <- client

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so pings and close frames are processed.
// The server pushes events; incoming application messages are ignored.
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
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *Hub) sendToUser(userID uint, msgType string, data interface{}) {
	message := WebSocketMessage{Type: msgType, Data: data}

	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling %s: %v", msgType, err)
		return
	}

	h.BroadcastToUser(userID, payload)
}

// SendTripCreatedToDrivers announces a new open trip to all connected drivers
func (h *Hub) SendTripCreatedToDrivers(created TripCreated) {
	message := WebSocketMessage{Type: "trip_created", Data: created}

	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling trip created: %v", err)
		return
	}

	h.BroadcastToUserType("driver", payload)
}

// SendBidSubmitted notifies the trip owner of a new or updated bid
func (h *Hub) SendBidSubmitted(travelerID uint, submitted BidSubmitted) {
	h.sendToUser(travelerID, "bid_submitted", submitted)
}

// SendBidAccepted notifies the winning driver
func (h *Hub) SendBidAccepted(driverID uint, accepted BidAccepted) {
	h.sendToUser(driverID, "bid_accepted", accepted)
}

// SendBidRejected notifies a driver their bid was declined
func (h *Hub) SendBidRejected(driverID uint, rejected BidRejected) {
	h.sendToUser(driverID, "bid_rejected", rejected)
}

// SendTripCompleted notifies a party that the trip is closed out
func (h *Hub) SendTripCompleted(userID uint, completed TripCompleted) {
	h.sendToUser(userID, "trip_completed", completed)
}
