package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Message types
const (
	TypeNotification = "notification"
	TypeMarkRead     = "mark_read"
)

// Hub maintains the set of active clients and pushes messages to the
// clients of one recipient
type Hub struct {
	// Registered clients organized by recipient (student or professor id)
	clients map[string]map[*Client]bool

	// Outbound messages waiting to be delivered
	broadcast chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Mutex for message listeners
	listenersMu sync.RWMutex

	// Listeners receive messages sent by clients
	messageListeners []chan *Message

	// Logger for Hub operations
	logger zerolog.Logger
}

// Message is a frame exchanged over a websocket
type Message struct {
	// Type of message: "notification" from the server, "mark_read" from a client
	Type string `json:"type"`

	// Recipient the message is addressed to or was sent by
	Recipient string `json:"recipient"`

	// ID of the record the message is about
	ID string `json:"id,omitempty"`

	// Payload carries the record itself
	Payload json.RawMessage `json:"payload,omitempty"`

	// Timestamp when the message was created
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:        make(chan *Message, 64),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		done:             make(chan struct{}),
		clients:          make(map[string]map[*Client]bool),
		messageListeners: []chan *Message{},
		logger:           logger,
	}
}

// Run starts the hub and handles registrations and deliveries until ctx is
// done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

// Register hands a client to the hub. It returns false once the hub has
// stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.recipient]; !ok {
		h.clients[client.recipient] = make(map[*Client]bool)
	}
	h.clients[client.recipient][client] = true

	h.logger.Info().
		Str("clientID", client.id).
		Str("recipient", client.recipient).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(client)
}

func (h *Hub) dropLocked(client *Client) {
	clients, ok := h.clients[client.recipient]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.recipient)
	}

	h.logger.Info().
		Str("clientID", client.id).
		Str("recipient", client.recipient).
		Msg("Client unregistered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.dropLocked(client)
		}
	}
}

// deliver sends a message to every client of its recipient. Clients whose
// buffer is full are dropped.
func (h *Hub) deliver(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("recipient", message.Recipient).
			Msg("Failed to marshal message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[message.Recipient]
	if !ok {
		h.logger.Debug().
			Str("recipient", message.Recipient).
			Msg("No connected clients for recipient")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn().
				Str("clientID", client.id).
				Msg("Dropping slow client")
			h.dropLocked(client)
		}
	}
}

// Publish queues payload for the clients of recipient. It never blocks: when
// the queue is full the message is dropped and false is returned.
func (h *Hub) Publish(recipient, msgType, id string, payload interface{}) bool {
	raw, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to marshal payload")
		return false
	}
	msg := &Message{
		Type:      msgType,
		Recipient: recipient,
		ID:        id,
		Payload:   raw,
		Timestamp: time.Now(),
	}
	select {
	case h.broadcast <- msg:
		return true
	default:
		h.logger.Warn().Str("recipient", recipient).Msg("Hub queue full, message dropped")
		return false
	}
}

// GetClientsCount returns the number of connected clients for a recipient
func (h *Hub) GetClientsCount(recipient string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[recipient]; ok {
		return len(clients)
	}
	return 0
}

// AddMessageListener registers a channel to receive messages sent by clients
func (h *Hub) AddMessageListener(listener chan *Message) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	h.messageListeners = append(h.messageListeners, listener)
	h.logger.Info().Msg("Added new message listener")
}

// RemoveMessageListener removes a listener from the hub
func (h *Hub) RemoveMessageListener(listener chan *Message) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.messageListeners {
		if l == listener {
			h.messageListeners[i] = h.messageListeners[len(h.messageListeners)-1]
			h.messageListeners = h.messageListeners[:len(h.messageListeners)-1]
			h.logger.Info().Msg("Removed message listener")
			break
		}
	}
}

// notifyMessageListeners hands a client message to every listener without
// blocking
func (h *Hub) notifyMessageListeners(message *Message) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.messageListeners {
		select {
		case listener <- message:
		default:
			h.logger.Warn().Msg("Skipped slow message listener")
		}
	}
}
