package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondecom/eshop/internal/logging"
)

type fakeWriter struct {
	msgs  []kafka.Message
	err   error
	calls int
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, logging.Discard())

	err := p.Publish(context.Background(), TopicCart, "3", map[string]any{"type": "cart_item_added", "quantity": 2})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	m := w.msgs[0]
	assert.Equal(t, TopicCart, m.Topic)
	assert.Equal(t, "3", string(m.Key))

	var body map[string]any
	require.NoError(t, json.Unmarshal(m.Value, &body))
	assert.Equal(t, "cart_item_added", body["type"])
}

func TestKafkaPublisher_BreakerOpens(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newKafkaPublisher(w, logging.Discard())

	for i := 0; i < 5; i++ {
		assert.Error(t, p.Publish(context.Background(), TopicUser, "1", map[string]any{}))
	}
	err := p.Publish(context.Background(), TopicUser, "1", map[string]any{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, w.calls)
}

func TestNewKafkaPublisher_NoBrokers(t *testing.T) {
	_, err := NewKafkaPublisher(nil, logging.Discard())
	assert.Error(t, err)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Publish(context.Background(), TopicOrder, "9", "x"))
	assert.Equal(t, []string{TopicOrder}, r.Topics())

	r.Err = errors.New("fail")
	assert.Error(t, r.Publish(context.Background(), TopicOrder, "9", "x"))
	assert.Len(t, r.Messages(), 1)
}
