package notifications

import (
	"testing"

	"launchpad/internal/middleware"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClient_TrySendCountsBufferFullDrop(t *testing.T) {
	hub := NewHub()
	client := &Client{Hub: hub, UserID: 9, Send: make(chan []byte, 1)}
	client.Send <- []byte("occupied")

	before := testutil.ToFloat64(middleware.WebSocketDrops.WithLabelValues("buffer_full"))
	client.TrySend([]byte("overflow"))
	after := testutil.ToFloat64(middleware.WebSocketDrops.WithLabelValues("buffer_full"))

	assert.Equal(t, before+1, after)
	// The queued message survives; the overflow is what gets dropped.
	assert.Equal(t, "occupied", string(<-client.Send))
}

func TestClient_TrySendCountsClosedChannelDrop(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, 9)
	close(client.Send)

	before := testutil.ToFloat64(middleware.WebSocketDrops.WithLabelValues("closed_channel"))
	client.TrySend([]byte("late"))
	after := testutil.ToFloat64(middleware.WebSocketDrops.WithLabelValues("closed_channel"))

	assert.Equal(t, before+1, after)
}
