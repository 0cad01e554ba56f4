package producer

import (
	"context"
	"time"

	"go-attendance/internal/messaging/kafka"

	"go.uber.org/zap"
)

const flushTimeout = 5 * time.Second

// Run writes queued events until ctx is cancelled, then flushes what is left.
func (p *Producer) Run(ctx context.Context) {
	p.logger.Info("producer worker started")
	for {
		select {
		case <-ctx.Done():
			p.flush()
			p.logger.Info("producer worker stopped")
			return
		case event := <-p.queue:
			p.send(ctx, event)
		}
	}
}

func (p *Producer) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	for {
		select {
		case event := <-p.queue:
			p.send(ctx, event)
		default:
			return
		}
	}
}

func (p *Producer) send(ctx context.Context, event kafka.Event) {
	if err := p.writer.WriteMessages(ctx, toMessage(event)); err != nil {
		p.logger.Error("publish event failed",
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
			zap.String("request_id", event.RequestID),
			zap.Error(err),
		)
		return
	}
	p.logger.Debug("event sent",
		zap.String("event_type", event.EventType),
		zap.String("topic", event.Topic),
	)
}
