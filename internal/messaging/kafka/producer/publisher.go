package producer

import (
	"context"
	"errors"

	"go-attendance/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const defaultQueueSize = 256

var ErrQueueFull = errors.New("kafka producer: queue full")

// MessageWriter is the part of *kafkago.Writer the producer uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Producer queues events in memory and writes them from Run, so request
// handlers never wait on the broker. Events still queued at shutdown are
// flushed once; events dropped on a full queue are logged.
type Producer struct {
	writer MessageWriter
	queue  chan kafka.Event
	logger *zap.Logger
}

func New(writer MessageWriter, queueSize int, logger *zap.Logger) *Producer {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = zap.L()
	}
	return &Producer{
		writer: writer,
		queue:  make(chan kafka.Event, queueSize),
		logger: logger.Named("kafka.producer"),
	}
}

func (p *Producer) Publish(ctx context.Context, event kafka.Event) error {
	select {
	case p.queue <- event:
		return nil
	default:
		p.logger.Warn("event dropped, queue full",
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
		return ErrQueueFull
	}
}

func toMessage(event kafka.Event) kafkago.Message {
	return kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.Key),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	}
}
