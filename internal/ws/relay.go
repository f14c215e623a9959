package ws

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"whisper-service/internal/auth"
	"whisper-service/internal/observability"
	"whisper-service/internal/repositories"
)

// Relay is the single actor owning the presence set and the client registry.
// All membership mutation, persistence, and fan-out happen on its loop: a
// submission is persisted and broadcast before the next event is handled, so
// per-channel send order is broadcast order.
type Relay struct {
	chatRepo repositories.ChatMessageRepository

	register    chan *Client
	unregister  chan *Client
	joins       chan *Client
	submissions chan submission

	// owned by the Run loop
	clients  map[*Client]bool
	presence map[string]int
}

type submission struct {
	client  *Client
	content string
}

// NewRelay constructs a relay. Call Run in its own goroutine before serving
// connections.
func NewRelay(chatRepo repositories.ChatMessageRepository) *Relay {
	return &Relay{
		chatRepo:    chatRepo,
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		joins:       make(chan *Client),
		submissions: make(chan submission, 64),
		clients:     make(map[*Client]bool),
		presence:    make(map[string]int),
	}
}

// Serve registers the connection with the relay and starts its pumps. The
// identity may be anonymous; such clients receive broadcasts but cannot join
// or submit.
func (r *Relay) Serve(conn *websocket.Conn, identity auth.Identity) {
	client := &Client{
		relay:       r,
		conn:        conn,
		send:        make(chan []byte, 256),
		identity:    identity,
		connID:      newConnID(),
		connectedAt: time.Now(),
	}
	r.register <- client

	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")

	go client.writePump()
	go func() {
		defer func() {
			observability.DecWSActive()
			observability.IncWSEvent("ws_disconnect")
		}()
		client.readPump()
	}()
}

// Run processes relay events until the process exits. Presence is purely
// in-memory and resets to empty on restart.
func (r *Relay) Run() {
	for {
		select {
		case c := <-r.register:
			r.clients[c] = true

		case c := <-r.unregister:
			if !r.clients[c] {
				continue
			}
			delete(r.clients, c)
			close(c.send)
			if c.joined {
				r.leave(c.identity.Username)
				r.broadcastUserCount()
			}

		case c := <-r.joins:
			// A join without a session identity is ignored.
			if !r.clients[c] || !c.identity.Authenticated() {
				continue
			}
			if !c.joined {
				c.joined = true
				r.presence[c.identity.Username]++
			}
			observability.IncWSEvent("ws_join")
			r.broadcastUserCount()

		case s := <-r.submissions:
			r.handleSubmission(s)
		}
	}
}

func (r *Relay) leave(username string) {
	if n := r.presence[username]; n > 1 {
		r.presence[username] = n - 1
	} else {
		delete(r.presence, username)
	}
}

func (r *Relay) broadcastUserCount() {
	count := len(r.presence)
	observability.SetOnlineUsers(count)
	payload, err := json.Marshal(userCountEvent{Type: eventUserCount, Count: count})
	if err != nil {
		return
	}
	r.broadcast(payload)
}

// broadcast fans a payload out to every connected client, joined or not.
// Clients whose send buffer is full are dropped.
func (r *Relay) broadcast(payload []byte) {
	var dropped []*Client
	for c := range r.clients {
		select {
		case c.send <- payload:
		default:
			dropped = append(dropped, c)
		}
	}
	if len(dropped) == 0 {
		return
	}

	rebroadcast := false
	for _, c := range dropped {
		delete(r.clients, c)
		close(c.send)
		if c.joined {
			r.leave(c.identity.Username)
			rebroadcast = true
		}
	}
	if rebroadcast {
		r.broadcastUserCount()
	}
}

func (r *Relay) handleSubmission(s submission) {
	if !r.clients[s.client] {
		return
	}
	if !s.client.joined {
		observability.IncWSEvent("ws_unauthorized")
		s.client.sendError("Authentication required")
		return
	}
	if strings.TrimSpace(s.content) == "" {
		s.client.sendError("Failed to send message")
		return
	}

	msg, err := r.chatRepo.CreateChatMessage(context.Background(), s.client.identity.ID, s.content)
	if err != nil {
		log.Error().Err(err).Str("username", s.client.identity.Username).Msg("persist chat message")
		s.client.sendError("Failed to send message")
		return
	}

	out := chatMessageEvent{
		Type: eventNewChatMessage,
		ChatBroadcast: ChatBroadcast{
			ID:        msg.ID,
			Username:  s.client.identity.Username,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
			Initials:  initials(s.client.identity.Username),
		},
	}
	payload, err := json.Marshal(out)
	if err != nil {
		return
	}
	observability.IncChatMessage()
	r.broadcast(payload)
}
