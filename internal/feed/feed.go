// Package feed publishes canonical records to a Kafka topic for downstream
// consumers. Messages are keyed by entity identity (external id, or
// player|date for game stats), so a log-compacted topic converges to the
// same entity set the persisted store holds. Publishing is optional: a nil
// *Publisher is a no-op.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
)

// Record kinds carried in message headers.
const (
	KindRoster   = "roster_entry"
	KindGame     = "game_result"
	KindGameStat = "player_game_stat"
)

// Publisher produces canonical records to the feed topic.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the feed topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishRosterEntry publishes one canonical roster entry keyed by player id.
func (p *Publisher) PublishRosterEntry(ctx context.Context, e domain.RosterEntry) error {
	if p == nil {
		return nil
	}
	return p.publish(ctx, KindRoster, e.ExternalID, e, e.LastUpdated)
}

// PublishGameResult publishes one canonical game result keyed by game id.
func (p *Publisher) PublishGameResult(ctx context.Context, g domain.GameResult) error {
	if p == nil {
		return nil
	}
	return p.publish(ctx, KindGame, g.ExternalID, g, g.Start)
}

// PublishGameStat publishes one canonical game stat keyed by player and date.
func (p *Publisher) PublishGameStat(ctx context.Context, s domain.PlayerGameStat) error {
	if p == nil {
		return nil
	}
	key := fmt.Sprintf("%s|%s", s.PlayerID, s.Date.UTC().Format("2006-01-02"))
	return p.publish(ctx, KindGameStat, key, s, s.ProcessedAt)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *Publisher) publish(ctx context.Context, kind, key string, record any, at time.Time) error {
	msg, err := serializeToMessage(kind, key, record, at)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s %s: %w", kind, key, err)
	}
	return nil
}

// serializeToMessage marshals a canonical record into a keyed Kafka message.
func serializeToMessage(kind, key string, record any, at time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s: %w", kind, err)
	}
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "record_kind", Value: []byte(kind)},
			{Key: "record_time", Value: []byte(at.UTC().Format(time.RFC3339))},
		},
	}, nil
}
