package websocket

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// RecipientResolver maps an authenticated user to the profile id that
// notifications are addressed to
type RecipientResolver interface {
	RecipientFor(ctx context.Context, userID, role string) (string, error)
}

// Handler for WebSocket connections
type Handler struct {
	hub      *Hub
	resolver RecipientResolver
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. allowedOrigins limits the
// browser origins allowed to connect; "*" or an empty list allows any.
func NewHandler(hub *Hub, resolver RecipientResolver, allowedOrigins []string, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		resolver: resolver,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || len(set) == 0 || set[origin]
	}
}

// HandleConnection upgrades an authenticated request to a websocket that
// receives the caller's notifications as they are created
func (h *Handler) HandleConnection(c *gin.Context) {
	userID := c.GetString("userID")
	role := c.GetString("role")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in context",
		})
		return
	}

	recipient, err := h.resolver.RecipientFor(c.Request.Context(), userID, role)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("userID", userID).
			Msg("No notification recipient for user")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Only students and professors receive notifications",
		})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:       h.hub,
		id:        uuid.NewString(),
		conn:      conn,
		send:      make(chan []byte, 256),
		recipient: recipient,
		logger:    h.logger,
	}
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("clientID", client.id).
		Str("recipient", recipient).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
