package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)
	return hub
}

func TestPublishReachesRecipientOnly(t *testing.T) {
	hub := startHub(t)

	student := &Client{hub: hub, id: "a", send: make(chan []byte, 4), recipient: "s1", logger: zerolog.Nop()}
	other := &Client{hub: hub, id: "b", send: make(chan []byte, 4), recipient: "s2", logger: zerolog.Nop()}
	require.True(t, hub.Register(student))
	require.True(t, hub.Register(other))
	require.Eventually(t, func() bool { return hub.GetClientsCount("s1") == 1 }, time.Second, 5*time.Millisecond)

	require.True(t, hub.Publish("s1", TypeNotification, "n1", map[string]any{"grade": 9}))

	select {
	case data := <-student.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, TypeNotification, msg.Type)
		assert.Equal(t, "n1", msg.ID)
		assert.JSONEq(t, `{"grade":9}`, string(msg.Payload))
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
	assert.Empty(t, other.send)
}

func TestPublishWithoutClientsDoesNotBlock(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	// nothing drains the queue, so it fills up and further messages drop
	for i := 0; i < cap(hub.broadcast); i++ {
		require.True(t, hub.Publish("nobody", TypeNotification, "", nil))
	}
	assert.False(t, hub.Publish("nobody", TypeNotification, "", nil))
}

func TestRegisterAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zerolog.Nop())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	assert.False(t, hub.Register(&Client{hub: hub, send: make(chan []byte, 1), recipient: "x"}))
}

type recordingMarker struct {
	calls chan [2]string
	err   error
}

func (m *recordingMarker) MarkReadFor(_ context.Context, id, recipient string) error {
	m.calls <- [2]string{id, recipient}
	return m.err
}

func TestMessageHandlerMarksRead(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	marker := &recordingMarker{calls: make(chan [2]string, 2)}
	handler := NewMessageHandler(marker, hub, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handler.Start(ctx)

	hub.notifyMessageListeners(&Message{Type: TypeMarkRead, ID: "n1", Recipient: "s1"})
	select {
	case call := <-marker.calls:
		assert.Equal(t, [2]string{"n1", "s1"}, call)
	case <-time.After(time.Second):
		t.Fatal("mark read not called")
	}

	handler.HandleIncomingMessage(ctx, &Message{Type: TypeNotification, ID: "n2"})
	assert.Empty(t, marker.calls)
}

func TestMessageHandlerLogsFailures(t *testing.T) {
	marker := &recordingMarker{calls: make(chan [2]string, 1), err: errors.New("not found")}
	handler := NewMessageHandler(marker, NewHub(zerolog.Nop()), zerolog.Nop())

	handler.HandleIncomingMessage(context.Background(), &Message{Type: TypeMarkRead, ID: "n3", Recipient: "p1"})
	assert.Len(t, marker.calls, 1)
}
