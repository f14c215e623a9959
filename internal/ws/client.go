package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"whisper-service/internal/auth"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1 << 20
)

// Client is one websocket connection known to the relay. The joined flag is
// owned by the relay loop; the pumps never touch it.
type Client struct {
	relay       *Relay
	conn        *websocket.Conn
	send        chan []byte
	identity    auth.Identity
	joined      bool
	connID      string
	connectedAt time.Time
}

// sendError queues an error event for this client only; it is never
// broadcast. A client too slow to drain its buffer just misses it.
func (c *Client) sendError(msg string) {
	payload, err := json.Marshal(errorEvent{Type: eventError, Message: msg})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (c *Client) readPump() {
	defer func() {
		c.relay.unregister <- c
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var in inboundEvent
		if err := json.Unmarshal(data, &in); err != nil {
			continue
		}
		switch in.Type {
		case eventJoin:
			c.relay.joins <- c
		case eventChatMessage:
			c.relay.submissions <- submission{client: c, content: in.Content}
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
