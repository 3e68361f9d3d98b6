package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink forwards audit events to a Kafka topic in addition to the local
// store. Events are keyed by identity so one candidate's history stays in
// partition order. Production is fire-and-forget; audit delivery must never
// block a profile save.
type KafkaSink struct {
	client *kgo.Client
	store  Store
	topic  string
	logger *slog.Logger
}

// NewKafkaSink connects a producer and wraps the given store.
func NewKafkaSink(brokers []string, topic string, store Store, logger *slog.Logger) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaSink{client: client, store: store, topic: topic, logger: logger}, nil
}

// Append persists the event locally, then produces it asynchronously.
func (k *KafkaSink) Append(ctx context.Context, event Event) error {
	if err := k.store.Append(ctx, event); err != nil {
		return err
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(event.IdentityID),
		Value: raw,
	}
	k.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil && k.logger != nil {
			k.logger.Error("audit event produce failed",
				"action", event.Action,
				"error", err,
			)
		}
	})
	return nil
}

func (k *KafkaSink) ListByIdentity(ctx context.Context, identityID string) ([]Event, error) {
	return k.store.ListByIdentity(ctx, identityID)
}

// Close flushes pending records and releases the client.
func (k *KafkaSink) Close(ctx context.Context) error {
	if err := k.client.Flush(ctx); err != nil {
		return fmt.Errorf("flush kafka producer: %w", err)
	}
	k.client.Close()
	return nil
}
