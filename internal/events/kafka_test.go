package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_KeysByOrder(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	err := p.Publish(context.Background(), OrderStatusChangedRoutingKey, OrderStatusChanged{
		EventType: "OrderStatusChanged",
		OrderID:   "order-7",
		From:      "PLACED",
		To:        "CONFIRMED",
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "order-7", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, OrderStatusChangedRoutingKey, string(msg.Headers[0].Value))

	var decoded OrderStatusChanged
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "CONFIRMED", decoded.To)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_UnkeyedEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	require.NoError(t, p.Publish(context.Background(), "misc", map[string]string{"a": "b"}))
	assert.Nil(t, w.msgs[0].Key)
}

func TestMultiPublisher(t *testing.T) {
	ok := &Recorder{}
	broken := &Recorder{Err: errors.New("down")}

	err := MultiPublisher{broken, ok}.Publish(context.Background(), OrderPlacedRoutingKey, OrderPlaced{OrderID: "o1"})

	assert.EqualError(t, err, "down")
	assert.Len(t, ok.Events(), 1, "healthy sink still receives the event")
}
