package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/asteroid-impact-api/internal/config"
	"github.com/couchcryptid/asteroid-impact-api/internal/domain"
	"github.com/couchcryptid/asteroid-impact-api/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

const (
	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Keeps retry storms short while avoiding tight loops during broker outages.
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
	maxAttempts    = 5
	writeTimeout   = 10 * time.Second
)

// schemaHeader tags every published message so downstream consumers can
// dispatch on payload shape.
const schemaHeader = "impact.assessment.v1"

// messageWriter is the subset of kafka-go's Writer used by the Publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher delivers computed assessments to a Kafka topic from a background
// worker, so HTTP handlers never wait on the broker. Publish is non-blocking:
// when the queue is full the assessment is dropped and counted.
type Publisher struct {
	writer         messageWriter
	queue          chan domain.Assessment
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
	metrics        *observability.Metrics

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewPublisher creates a Kafka producer for the configured assessment topic
// and starts its delivery worker.
func NewPublisher(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return newPublisher(w, cfg.KafkaPublishBuffer, initialBackoff, maxBackoff, logger, metrics)
}

func newPublisher(w messageWriter, buffer int, backoff, capBackoff time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	p := &Publisher{
		writer:         w,
		queue:          make(chan domain.Assessment, buffer),
		initialBackoff: backoff,
		maxBackoff:     capBackoff,
		logger:         logger,
		metrics:        metrics,
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Publish enqueues an assessment for delivery. It never blocks the caller.
func (p *Publisher) Publish(a domain.Assessment) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.metrics.PublishDropped.Inc()
		return
	}

	select {
	case p.queue <- a:
		p.metrics.PublishQueueDepth.Set(float64(len(p.queue)))
	default:
		p.metrics.PublishDropped.Inc()
		p.logger.Warn("publish queue full, dropping assessment", "id", a.ID)
	}
}

// Close stops accepting assessments, drains the queue, and closes the writer.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	p.wg.Wait()
	return p.writer.Close()
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for a := range p.queue {
		p.metrics.PublishQueueDepth.Set(float64(len(p.queue)))
		p.deliver(a)
	}
}

// deliver writes one assessment, retrying transient failures with backoff.
func (p *Publisher) deliver(a domain.Assessment) {
	msg, err := serializeToMessage(a)
	if err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Error("serialize assessment failed", "error", err, "id", a.ID)
		return
	}

	backoff := p.initialBackoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err = p.writer.WriteMessages(ctx, msg)
		cancel()
		if err == nil {
			p.metrics.AssessmentsPublished.Inc()
			return
		}

		p.logger.Warn("publish failed", "error", err, "id", a.ID, "attempt", attempt)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff = nextBackoff(backoff, p.maxBackoff)
		}
	}

	p.metrics.PublishErrors.Inc()
	p.logger.Error("publish abandoned after retries", "id", a.ID, "attempts", maxAttempts)
}

// serializeToMessage marshals an assessment into a Kafka message keyed by
// assessment ID, so replays of the same parameters land on one partition.
func serializeToMessage(a domain.Assessment) (kafkago.Message, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(a.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "schema", Value: []byte(schemaHeader)},
			{Key: "computed_at", Value: []byte(a.ComputedAt.Format(time.RFC3339))},
		},
	}, nil
}

func nextBackoff(current, capBackoff time.Duration) time.Duration {
	next := current * 2
	if next > capBackoff {
		return capBackoff
	}
	return next
}
