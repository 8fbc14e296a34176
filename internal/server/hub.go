package server

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Envelope is the wire format for hub events.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// hubMessage pairs an incoming envelope with its sender.
type hubMessage struct {
	client  *Client
	content Envelope
}

// Hub relays presence events between connected clients. Delivery is
// best-effort: slow clients are dropped, nothing is persisted or replayed.
type Hub struct {
	clients    map[*Client]bool
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan hubMessage
	logger     *slog.Logger
	mu         sync.RWMutex
}

// NewHub returns a hub ready for Run.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan hubMessage),
		logger:     logger,
	}
}

// Run processes registration and event traffic until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.joinLocked(client, client.room)
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				h.leaveLocked(client)
				close(client.send)
			}
			h.mu.Unlock()

		case msg := <-h.incoming:
			h.handleEvent(msg.client, msg.content)
		}
	}
}

// handleEvent routes one client event.
func (h *Hub) handleEvent(client *Client, msg Envelope) {
	switch msg.Type {
	case "joinRoom":
		room := decodeRoom(msg.Payload)
		if room == "" {
			return
		}
		h.mu.Lock()
		h.leaveLocked(client)
		client.room = room
		h.clients[client] = true
		h.joinLocked(client, room)
		h.mu.Unlock()

	case "typingStart":
		h.BroadcastToRoomExcept(client.room, client, Envelope{Type: "userTyping", Payload: msg.Payload})

	case "typingComplete":
		h.BroadcastToRoomExcept(client.room, client, Envelope{Type: "userCompleted", Payload: msg.Payload})

	default:
		h.logger.Debug("unknown hub event", "type", msg.Type)
	}
}

// Broadcast sends the message to every connected client.
func (h *Hub) Broadcast(message any) {
	raw, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		h.deliverLocked(client, raw)
	}
}

// BroadcastToRoomExcept sends the message to every room member but the sender.
func (h *Hub) BroadcastToRoomExcept(room string, sender *Client, message any) {
	raw, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[room] {
		if client == sender {
			continue
		}
		h.deliverLocked(client, raw)
	}
}

func (h *Hub) deliverLocked(client *Client, raw []byte) {
	select {
	case client.send <- raw:
	default:
		// Slow consumer, drop the message rather than block the hub.
	}
}

func (h *Hub) joinLocked(client *Client, room string) {
	if room == "" {
		return
	}
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
}

func (h *Hub) leaveLocked(client *Client) {
	if members, ok := h.rooms[client.room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, client.room)
		}
	}
}

// decodeRoom accepts either a bare string or {"room": "..."}.
func decodeRoom(payload json.RawMessage) string {
	var name string
	if err := json.Unmarshal(payload, &name); err == nil {
		return name
	}
	var obj struct {
		Room string `json:"room"`
	}
	if err := json.Unmarshal(payload, &obj); err == nil {
		return obj.Room
	}
	return ""
}
