package websocket

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // must stay below pongWait
	maxMessageSize = 4 * 1024
)

// Client is one notification socket. It receives messages for a single
// recipient (a student or professor id).
type Client struct {
	hub       *Hub
	id        string
	conn      *websocket.Conn
	send      chan []byte
	recipient string
	logger    zerolog.Logger
}

// readPump consumes frames from the browser. The only frame clients may send
// is mark_read; anything else is dropped.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			c.logClose(err)
			return
		}
		if msg, ok := c.decode(frame); ok {
			c.hub.notifyMessageListeners(msg)
		}
	}
}

func (c *Client) decode(frame []byte) (*Message, bool) {
	var msg Message
	if err := json.Unmarshal(frame, &msg); err != nil {
		c.logger.Debug().Err(err).Str("clientID", c.id).Msg("Ignoring malformed client frame")
		return nil, false
	}
	if msg.Type != TypeMarkRead || msg.ID == "" {
		return nil, false
	}
	// the socket's own recipient wins over whatever the frame claims
	msg.Recipient = c.recipient
	msg.Timestamp = time.Now()
	return &msg, true
}

func (c *Client) logClose(err error) {
	switch {
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		c.logger.Info().Str("clientID", c.id).Msg("WebSocket closed normally")
	case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure):
		c.logger.Warn().Err(err).Str("clientID", c.id).Msg("Unexpected WebSocket close")
	default:
		c.logger.Debug().Err(err).Str("clientID", c.id).Msg("WebSocket read error")
	}
}

// writePump sends each queued notification as its own text frame and keeps
// the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Debug().Err(err).Str("clientID", c.id).Msg("WebSocket write failed")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
