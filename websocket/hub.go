// Package websocket fans ledger events out to every connected observer.
// Each observer gets a buffered send queue; the hub's run loop is the only
// goroutine that touches the client set.
package websocket

import (
	"github.com/rs/zerolog"

	"github.com/ergeargwer/investment-competition-platform-v2/models"
)

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan models.WSMessage
	register   chan *Client
	unregister chan *Client
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan models.WSMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log.With().Str("component", "hub").Logger(),
	}
}

// Run is the hub's main loop; start it once with go hub.Run().
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Info().Str("client", client.ID).Int("connected", len(h.clients)).Msg("client registered")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.shutdown()
				h.log.Info().Str("client", client.ID).Int("connected", len(h.clients)).Msg("client unregistered")
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				if !client.Enqueue(message) {
					// Slow or gone; drop the client rather than block fan-out.
					delete(h.clients, client)
					client.shutdown()
				}
			}
		}
	}
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// Broadcast queues a message for every connected client.
func (h *Hub) Broadcast(msg models.WSMessage) { h.broadcast <- msg }
