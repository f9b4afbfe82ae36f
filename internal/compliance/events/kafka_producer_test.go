package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// MockKafkaWriter implements KafkaWriter for testing
type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestProducer_Produce(t *testing.T) {
	t.Run("queues event with record", func(t *testing.T) {
		producer := newProducer(new(MockKafkaWriter), zaptest.NewLogger(t), 10)

		producer.Produce(DirectorAdded, "d1", record{ID: "d1", Name: "A"})

		require.Equal(t, 1, len(producer.events))
		event := <-producer.events
		assert.Equal(t, DirectorAdded, event.Type)
		assert.Equal(t, "d1", event.EntityID)
		assert.JSONEq(t, `{"id":"d1","name":"A"}`, string(event.Record))
		assert.False(t, event.OccurredAt.IsZero())
	})

	t.Run("nil record", func(t *testing.T) {
		producer := newProducer(new(MockKafkaWriter), zaptest.NewLogger(t), 10)

		producer.Produce(MemberRemoved, "m1", nil)

		event := <-producer.events
		assert.Nil(t, event.Record)
	})

	t.Run("dropped event when queue full", func(t *testing.T) {
		core, recorded := observer.New(zap.WarnLevel)
		producer := newProducer(new(MockKafkaWriter), zap.New(core), 1)

		producer.Produce(FilingAdded, "f1", nil)
		producer.Produce(FilingAdded, "f2", nil)

		assert.Equal(t, 1, recorded.FilterMessage("Kafka producer queue full, dropping event").Len())
		assert.Equal(t, 1, recorded.FilterField(zap.String("entity_id", "f2")).Len())
	})

	t.Run("record serialization error", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		producer := newProducer(new(MockKafkaWriter), zap.New(core), 1)

		producer.Produce(ProfileSet, "p1", func() {})

		assert.Equal(t, 0, len(producer.events))
		assert.Equal(t, 1, recorded.FilterMessage("Failed to serialize record").Len())
	})
}

func TestProducer_SendEvent(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	producer := newProducer(mockWriter, zaptest.NewLogger(t), 1)
	event := Event{Type: MeetingAdded, EntityID: "m1", OccurredAt: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}

	t.Run("successful send", func(t *testing.T) {
		mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)

		producer.sendEvent(context.Background(), event)

		value, _ := json.Marshal(event)
		mockWriter.AssertCalled(t, "WriteMessages", mock.Anything, []kafka.Message{
			{
				Key:   []byte("m1"),
				Value: value,
			},
		})
	})

	t.Run("serialization error", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		producer.logger = zap.New(core)

		oldMarshal := jsonMarshal
		jsonMarshal = func(_ interface{}) ([]byte, error) {
			return nil, errors.New("mock marshal error")
		}
		defer func() { jsonMarshal = oldMarshal }()

		producer.sendEvent(context.Background(), event)

		assert.Equal(t, 1, recorded.FilterMessage("Failed to serialize event").Len())
		assert.Equal(t, 1, recorded.FilterField(zap.String("entity_id", "m1")).Len())
	})

	t.Run("write error", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		producer.logger = zap.New(core)
		mockWriter.ExpectedCalls = nil
		mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("kafka error"))

		producer.sendEvent(context.Background(), event)

		assert.Equal(t, 1, recorded.FilterMessage("Failed to produce event").Len())
	})
}

func TestProducer_EventLoopAndClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	mockWriter := new(MockKafkaWriter)
	delivered := make(chan struct{})
	mockWriter.On("WriteMessages", mock.Anything, mock.Anything).
		Return(nil).
		Run(func(_ mock.Arguments) { close(delivered) }).
		Once()
	mockWriter.On("Close").Return(nil)

	producer := newProducer(mockWriter, zaptest.NewLogger(t), 1)
	go producer.eventLoop()

	producer.Produce(DirectorRemoved, "d1", nil)

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}

	producer.Close()

	select {
	case <-producer.closeChan:
	default:
		t.Error("closeChan not closed")
	}
	mockWriter.AssertCalled(t, "Close")
}

func TestProducer_CloseLogsWriterError(t *testing.T) {
	core, recorded := observer.New(zap.ErrorLevel)
	mockWriter := new(MockKafkaWriter)
	mockWriter.On("Close").Return(errors.New("close failed"))

	producer := newProducer(mockWriter, zap.New(core), 1)
	go producer.eventLoop()
	producer.Close()

	assert.Equal(t, 1, recorded.FilterMessage("Failed to close Kafka writer").Len())
}
