// Package events publishes store change notifications to Kafka and reads
// them back for the watch command. Publishing is best effort: a full queue
// or an unreachable broker is logged and never fails a store mutation.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

type EventType string

const (
	ProfileSet      EventType = "profile_set"
	DirectorAdded   EventType = "director_added"
	DirectorUpdated EventType = "director_updated"
	DirectorRemoved EventType = "director_removed"
	MemberAdded     EventType = "member_added"
	MemberUpdated   EventType = "member_updated"
	MemberRemoved   EventType = "member_removed"
	MeetingAdded    EventType = "meeting_added"
	MeetingUpdated  EventType = "meeting_updated"
	MeetingRemoved  EventType = "meeting_removed"
	FilingAdded     EventType = "filing_added"
	FilingUpdated   EventType = "filing_updated"
	FilingRemoved   EventType = "filing_removed"
)

// Event describes one committed store mutation. Record holds the record as
// it was after the change, or as it was before a removal.
type Event struct {
	Type       EventType       `json:"type"`
	EntityID   string          `json:"entityId"`
	Record     json.RawMessage `json:"record,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer    KafkaWriter
	events    chan Event
	logger    *zap.Logger
	closeChan chan struct{}
	done      chan struct{}
}

// NewProducer creates the topic if needed and starts the delivery loop.
func NewProducer(brokers []string, logger *zap.Logger, topic string) (*Producer, error) {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		},
	}

	err = conn.CreateTopics(topicConfigs...)
	if err != nil {
		logger.Warn("failed to create topic (may already exist)", zap.Error(err))
	}
	p := newProducer(&kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.Hash{},
		Topic:    topic,
	}, logger, 1000)

	go p.eventLoop()
	return p, nil
}

func newProducer(writer KafkaWriter, logger *zap.Logger, buffer int) *Producer {
	return &Producer{
		writer:    writer,
		events:    make(chan Event, buffer),
		logger:    logger.Named("kafka_producer"),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Produce queues a change event without blocking.
func (p *Producer) Produce(eventType EventType, entityID string, record any) {
	event := Event{Type: eventType, EntityID: entityID, OccurredAt: time.Now().UTC()}
	if record != nil {
		raw, err := jsonMarshal(record)
		if err != nil {
			p.logger.Error("Failed to serialize record",
				zap.Error(err),
				zap.String("entity_id", entityID),
			)
			return
		}
		event.Record = raw
	}

	select {
	case p.events <- event:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.String("entity_id", entityID),
		)
	}
}

func (p *Producer) eventLoop() {
	defer close(p.done)
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("entity_id", event.EntityID),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EntityID),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.EntityID),
		)
		return
	}
}

// Close stops the delivery loop and closes the writer. Events still queued
// are dropped.
func (p *Producer) Close() {
	close(p.closeChan)
	<-p.done
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}
