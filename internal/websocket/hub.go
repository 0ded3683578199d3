package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cx-tal-miterani/seat-reservation/internal/inventory"
)

// MessageType identifies a feed message.
type MessageType string

const (
	MessageTypeSeatUpdated MessageType = "seat_updated"
)

// Seat statuses carried on the wire.
const (
	SeatStatusAvailable = "available"
	SeatStatusBooked    = "booked"
)

// SeatUpdate describes one seat's new state.
type SeatUpdate struct {
	SeatNumber int    `json:"seatNumber"`
	Status     string `json:"status"`
	Price      int    `json:"price"`
}

// Message is a feed message for a single flight.
type Message struct {
	Type         MessageType `json:"type"`
	FlightNumber string      `json:"flightNumber"`
	Date         string      `json:"date"`
	Seat         SeatUpdate  `json:"seat"`
	Timestamp    int64       `json:"timestamp"`
}

// Hub fans seat updates out to clients watching a flight. Clients are keyed
// by flight identity (flight number + date).
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	mu         sync.RWMutex
	log        *logrus.Entry
}

// NewHub creates a Hub. Call Run in a goroutine before registering clients.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		log:        logrus.WithField("component", "websocket-hub"),
	}
}

// Run drains the hub's channels. It never returns.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.flightKey] == nil {
				h.clients[client.flightKey] = make(map[*Client]bool)
			}
			h.clients[client.flightKey][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.flightKey]; ok {
				if clients[client] {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.flightKey)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				h.log.WithError(err).Error("failed to marshal feed message")
				continue
			}

			key := flightKey(message.FlightNumber, message.Date)
			h.mu.RLock()
			clients := h.clients[key]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.mu.Lock()
					delete(h.clients[key], client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// SeatChanged implements service.SeatBroadcaster.
func (h *Hub) SeatChanged(flightNumber, date string, seat inventory.Seat) {
	status := SeatStatusAvailable
	if seat.Booked {
		status = SeatStatusBooked
	}
	h.broadcast <- &Message{
		Type:         MessageTypeSeatUpdated,
		FlightNumber: flightNumber,
		Date:         date,
		Seat: SeatUpdate{
			SeatNumber: seat.Number,
			Status:     status,
			Price:      seat.Price,
		},
		Timestamp: time.Now().UnixMilli(),
	}
}

// ClientCount returns the number of clients watching a flight.
func (h *Hub) ClientCount(flightNumber, date string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[flightKey(flightNumber, date)])
}

func flightKey(flightNumber, date string) string {
	return flightNumber + "|" + date
}
