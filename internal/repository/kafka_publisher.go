package repository

import (
	"context"

	"StockPulse/internal/domain/models"
	pkgkafka "StockPulse/pkg/kafka"
	applogger "StockPulse/pkg/logger"
)

// KafkaTransitionPublisher implements Publisher on a Kafka topic. Events are
// keyed by symbol so consumers see per-symbol ordering.
type KafkaTransitionPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	l        *applogger.Logger
}

// NewKafkaTransitionPublisher creates a transition publisher.
func NewKafkaTransitionPublisher(producer *pkgkafka.Producer, topic string, l *applogger.Logger) *KafkaTransitionPublisher {
	return &KafkaTransitionPublisher{producer: producer, topic: topic, l: l}
}

func (p *KafkaTransitionPublisher) PublishTransition(ctx context.Context, ev models.TransitionEvent) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(ev.Symbol), ev); err != nil {
		if p.l != nil {
			p.l.Error("kafka publish transition failed",
				applogger.String("symbol", ev.Symbol),
				applogger.Error(err),
			)
		}
		return err
	}
	if p.l != nil {
		p.l.Debug("kafka publish transition ok",
			applogger.String("symbol", ev.Symbol),
			applogger.String("old", string(ev.OldRec)),
			applogger.String("new", string(ev.NewRec)),
		)
	}
	return nil
}

// Close closes the underlying producer.
func (p *KafkaTransitionPublisher) Close() error {
	return p.producer.Close()
}
