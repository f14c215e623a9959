package ws

import "time"

// Inbound event types understood by the relay.
const (
	eventJoin        = "join"
	eventChatMessage = "chat_message"
)

// Outbound event types.
const (
	eventUserCount      = "user_count"
	eventNewChatMessage = "new_chat_message"
	eventError          = "error"
)

type inboundEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// ChatBroadcast is the payload fanned out to every connected client when a
// chat message is accepted.
type ChatBroadcast struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Initials  string    `json:"initials"`
}

type chatMessageEvent struct {
	Type string `json:"type"`
	ChatBroadcast
}

type userCountEvent struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type errorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
