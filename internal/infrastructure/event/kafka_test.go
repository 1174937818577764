package event

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/saleflow/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaForwarder_Handle(t *testing.T) {
	writer := &recordingWriter{}
	forwarder := NewKafkaForwarder(writer, NewEventSerializer(), zap.NewNop())
	tenantID := uuid.New()
	event := newOrderEvent("TestEvent", tenantID)

	require.NoError(t, forwarder.Handle(context.Background(), event))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, event.AggregateID().String(), string(msg.Key))
	assert.Equal(t, "TestEvent", header(msg, "event-type"))
	assert.Equal(t, tenantID.String(), header(msg, "tenant-id"))
	assert.Equal(t, "application/json", header(msg, "content-type"))
	assert.Contains(t, string(msg.Value), `"order_name":"S00042"`)

	require.NoError(t, forwarder.Close())
	assert.True(t, writer.closed)
}

func TestKafkaForwarder_ReceivesEveryEvent(t *testing.T) {
	writer := &recordingWriter{}
	forwarder := NewKafkaForwarder(writer, NewEventSerializer(), zap.NewNop())
	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(forwarder)

	require.NoError(t, bus.Publish(context.Background(),
		newOrderEvent("SalesOrderConfirmed", uuid.New()),
		newOrderEvent("InvoiceOpened", uuid.New()),
	))
	assert.Len(t, writer.messages, 2)
}

func TestKafkaForwarder_WriteError(t *testing.T) {
	writer := &recordingWriter{err: errors.New("leader not available")}
	forwarder := NewKafkaForwarder(writer, NewEventSerializer(), zap.NewNop())

	err := forwarder.Handle(context.Background(), newOrderEvent("TestEvent", uuid.New()))
	assert.ErrorContains(t, err, "leader not available")
}

func TestNewKafkaWriter(t *testing.T) {
	writer := NewKafkaWriter(config.KafkaConfig{Enabled: true, Brokers: []string{"localhost:9092"}, Topic: "saleflow.events"})

	assert.Equal(t, "saleflow.events", writer.Topic)
	assert.Equal(t, kafka.RequireAll, writer.RequiredAcks)
	assert.False(t, writer.Async)
}
