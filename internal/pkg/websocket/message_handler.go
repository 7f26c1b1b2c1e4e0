package websocket

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ReadMarker marks a notification read on behalf of its recipient
type ReadMarker interface {
	MarkReadFor(ctx context.Context, notificationID, recipient string) error
}

// MessageHandler processes frames sent by clients
type MessageHandler struct {
	marker ReadMarker
	hub    *Hub
	logger zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(marker ReadMarker, hub *Hub, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		marker: marker,
		hub:    hub,
		logger: logger,
	}
}

// Start begins processing client messages until ctx is done
func (h *MessageHandler) Start(ctx context.Context) {
	messageChan := make(chan *Message, 32)
	h.hub.AddMessageListener(messageChan)

	go func() {
		defer h.hub.RemoveMessageListener(messageChan)
		for {
			select {
			case <-ctx.Done():
				return
			case message := <-messageChan:
				h.HandleIncomingMessage(ctx, message)
			}
		}
	}()
}

// HandleIncomingMessage applies one client frame
func (h *MessageHandler) HandleIncomingMessage(ctx context.Context, message *Message) {
	if message.Type != TypeMarkRead {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := h.marker.MarkReadFor(ctx, message.ID, message.Recipient); err != nil {
		h.logger.Warn().
			Err(err).
			Str("notificationID", message.ID).
			Str("recipient", message.Recipient).
			Msg("Failed to mark notification read")
		return
	}

	h.logger.Debug().
		Str("notificationID", message.ID).
		Msg("Notification marked read over websocket")
}
