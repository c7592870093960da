package websocket

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ergeargwer/investment-competition-platform-v2/models"
)

const sendBuffer = 256

// Client wraps one observer connection. Writes go through the send queue so
// the write pump is the only goroutine writing to the socket.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan models.WSMessage
	log  zerolog.Logger

	mu     sync.Mutex
	closed bool
}

func NewClient(conn *websocket.Conn, log zerolog.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		ID:   id,
		conn: conn,
		send: make(chan models.WSMessage, sendBuffer),
		log:  log.With().Str("component", "client").Str("client", id).Logger(),
	}
}

// Enqueue queues a message for this client. It reports false when the client
// is shut down or its queue is full; the caller decides whether that means
// dropping the client.
func (c *Client) Enqueue(msg models.WSMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// shutdown closes the send queue, which ends the write pump. Safe to call
// more than once; late Enqueue calls become no-ops instead of panics.
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// WritePump drains the send queue onto the connection until the queue closes
// or a write fails.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteJSON(message); err != nil {
			c.log.Debug().Err(err).Msg("write failed")
			return
		}
	}
}
