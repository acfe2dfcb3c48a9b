package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/GlyphSwap/swap-svc/internal/data"
	"github.com/segmentio/kafka-go"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// Publisher pushes completed trades to kafka for downstream consumers.
// A nil Publisher is valid and publishes nothing.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}

	return &Publisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}}
}

// PublishTrade keys messages by the to-side token so trades for one
// token keep their order on a partition.
func (p *Publisher) PublishTrade(ctx context.Context, trade data.Trade) error {
	if p == nil {
		return nil
	}

	raw, err := json.Marshal(trade)
	if err != nil {
		return errors.Wrap(err, "failed to marshal trade")
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(trade.ToToken),
		Value: raw,
		Time:  time.Now(),
	})
	return errors.Wrap(err, "failed to write trade message")
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
