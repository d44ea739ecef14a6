package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	return hub, cancel
}

func TestBroadcastReachesRegisteredClients(t *testing.T) {
	hub, cancel := startHub(t)
	defer cancel()

	a := &Client{Hub: hub, ID: "a", Send: make(chan []byte, 1)}
	b := &Client{Hub: hub, ID: "b", Send: make(chan []byte, 1)}
	hub.register <- a
	hub.register <- b
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(dto.ActivityMessage{Type: "state.subject_updated", EventID: "e1"})

	for _, c := range []*Client{a, b} {
		select {
		case raw := <-c.Send:
			var msg dto.ActivityMessage
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, "e1", msg.EventID)
		case <-time.After(time.Second):
			t.Fatalf("client %s got nothing", c.ID)
		}
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	hub, cancel := startHub(t)
	defer cancel()

	slow := &Client{Hub: hub, ID: "slow", Send: make(chan []byte)}
	hub.register <- slow
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(dto.ActivityMessage{Type: "x"})

	assert.Equal(t, 0, hub.ClientCount())
	_, open := <-slow.Send
	assert.False(t, open)
}

func TestUnregisterTwiceIsSafe(t *testing.T) {
	hub, cancel := startHub(t)
	defer cancel()

	c := &Client{Hub: hub, ID: "c", Send: make(chan []byte, 1)}
	hub.register <- c
	hub.unregister <- c
	hub.unregister <- c

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRunClosesClientsOnShutdown(t *testing.T) {
	hub, cancel := startHub(t)

	c := &Client{Hub: hub, ID: "c", Send: make(chan []byte, 1)}
	hub.register <- c
	cancel()

	select {
	case <-hub.done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	_, open := <-c.Send
	assert.False(t, open)
}
