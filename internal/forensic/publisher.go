package forensic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Sink receives a copy of every stored record. The Kafka publisher is the
// production sink; tests swap in fakes.
type Sink interface {
	Publish(ctx context.Context, record *AuditRecord) error
}

// Publisher is the single append path callers use. It writes to the
// append-only storage with fail-closed semantics - if the record cannot be
// persisted the calling operation must fail - and then fans out to optional
// sinks best-effort.
type Publisher struct {
	storage *AppendOnlyStorage
	sinks   []Sink
	logger  *slog.Logger
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithSink adds a fan-out sink (e.g. Kafka).
func WithSink(sink Sink) PublisherOption {
	return func(p *Publisher) {
		p.sinks = append(p.sinks, sink)
	}
}

// WithPublisherLogger sets a logger for sink failures.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher builds a publisher over the given storage.
func NewPublisher(storage *AppendOnlyStorage, opts ...PublisherOption) *Publisher {
	p := &Publisher{storage: storage, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit persists the record and fans it out. Storage failure is returned to
// the caller; sink failures are logged, since the on-disk chain is the
// source of truth.
func (p *Publisher) Emit(ctx context.Context, record *AuditRecord) error {
	if err := p.storage.Store(ctx, record); err != nil {
		return err
	}
	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, record); err != nil {
			p.logger.ErrorContext(ctx, "audit sink publish failed",
				"record_id", record.ID,
				"error", err,
			)
		}
	}
	return nil
}

// KafkaSink publishes stored records to a Kafka topic, keyed by record ID so
// per-record ordering is stable across partitions.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects a producer to the given brokers.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

// Publish produces one record synchronously.
func (k *KafkaSink) Publish(ctx context.Context, record *AuditRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}
	msg := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(record.ID.String()),
		Value: payload,
	}
	if err := k.client.ProduceSync(ctx, msg).FirstErr(); err != nil {
		return fmt.Errorf("produce audit record: %w", err)
	}
	return nil
}

// Close flushes and releases the producer.
func (k *KafkaSink) Close() {
	k.client.Close()
}
