package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillBridge_RoundTrip(t *testing.T) {
	bridge := NewWatermillBridge(nil)
	t.Cleanup(func() { _ = bridge.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan Message, 1)
	require.NoError(t, bridge.Subscribe(ctx, "wall.post.created", func(ctx context.Context, msg Message) error {
		received <- msg
		return nil
	}))

	require.NoError(t, bridge.Publish(ctx, Message{
		Topic:    "wall.post.created",
		UserID:   "1",
		Payload:  []byte(`{"userID":"1"}`),
		Metadata: map[string]string{"request_id": "req-123"},
	}))

	select {
	case msg := <-received:
		assert.Equal(t, "wall.post.created", msg.Topic)
		assert.Equal(t, "1", msg.UserID)
		assert.JSONEq(t, `{"userID":"1"}`, string(msg.Payload))
		assert.Equal(t, "req-123", msg.Metadata["request_id"])
		assert.NotContains(t, msg.Metadata, metaKeyTopic)
	case <-time.After(2 * time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestMapToPubSubMessage_StripsReservedKeys(t *testing.T) {
	wm := mapToWatermillMessage(Message{Topic: "a", UserID: "u", Metadata: map[string]string{"k": "v"}})
	msg := mapToPubSubMessage(wm)

	assert.Equal(t, "a", msg.Topic)
	assert.Equal(t, "u", msg.UserID)
	assert.Equal(t, map[string]string{"k": "v"}, msg.Metadata)
}
