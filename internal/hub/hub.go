package hub

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Event represents a real-time event sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	// EventChatMessage carries a chat message on a conversation topic.
	EventChatMessage = "chatMessage"
	// EventActiveSessions carries the connected-session count; broadcast to
	// every session on each connect and disconnect.
	EventActiveSessions = "activeMembers"
	// EventRelationUpdate carries a relationship status transition on a
	// relationship topic.
	EventRelationUpdate = "relationUpdate"
)

// ConversationTopic names the room for a user pair. The pair is unordered:
// both parties subscribe to the same topic.
func ConversationTopic(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("chat:%d:%d", a, b)
}

// RelationTopic names the room carrying one relationship's transitions.
func RelationTopic(relationID uint) string {
	return fmt.Sprintf("relationship:%d", relationID)
}

// Client is the receive channel handed to a subscriber. The SSE handler
// drains it until it is closed.
type Client chan []byte

type session struct {
	client Client
	topics []string
}

// Hub fans events out to connected sessions, scoped by topic. A session
// subscribes to a set of topics at connect time and additionally receives
// the process-wide active-session count events.
type Hub struct {
	mu       sync.RWMutex
	topics   map[string]map[Client]bool
	sessions map[string]session
}

// GlobalHub is the process-wide Hub instance.
var GlobalHub = NewHub()

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		topics:   make(map[string]map[Client]bool),
		sessions: make(map[string]session),
	}
}

// Connect registers a new session subscribed to the given topics and
// returns its id and receive channel. Every session is told the new
// active-session count, including the one just connected.
func (h *Hub) Connect(topics ...string) (string, Client) {
	client := make(Client, 16)

	h.mu.Lock()
	sessionID := uuid.New().String()
	h.sessions[sessionID] = session{client: client, topics: topics}
	for _, topic := range topics {
		if _, ok := h.topics[topic]; !ok {
			h.topics[topic] = make(map[Client]bool)
		}
		h.topics[topic][client] = true
	}
	count := len(h.sessions)
	h.broadcastAllLocked(Event{Type: EventActiveSessions, Payload: count})
	h.mu.Unlock()

	return sessionID, client
}

// Disconnect removes a session, closes its channel, and re-broadcasts the
// active-session count. Unknown ids are ignored so teardown is idempotent.
func (h *Hub) Disconnect(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sess, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	delete(h.sessions, sessionID)
	for _, topic := range sess.topics {
		if clients, ok := h.topics[topic]; ok {
			delete(clients, sess.client)
			if len(clients) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	close(sess.client)

	h.broadcastAllLocked(Event{Type: EventActiveSessions, Payload: len(h.sessions)})
}

// Broadcast sends an event to all sessions subscribed to a topic.
// Fire-and-forget: there is no delivery guarantee.
func (h *Hub) Broadcast(topic string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.topics[topic]
	if !ok {
		return
	}
	messageBytes, err := json.Marshal(event)
	if err != nil {
		return
	}
	for client := range clients {
		// Non-blocking send so a slow client cannot stall the hub.
		select {
		case client <- messageBytes:
		default:
		}
	}
}

// ActiveSessions returns the number of connected sessions.
func (h *Hub) ActiveSessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) broadcastAllLocked(event Event) {
	messageBytes, err := json.Marshal(event)
	if err != nil {
		return
	}
	for _, sess := range h.sessions {
		select {
		case sess.client <- messageBytes:
		default:
		}
	}
}
