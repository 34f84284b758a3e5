package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/couchcryptid/asteroid-impact-api/internal/domain"
	"github.com/couchcryptid/asteroid-impact-api/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes for publisher tests ---

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafkago.Message
	failures int // fail this many calls before succeeding
	calls    int
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return errors.New("broker unavailable")
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeWriter) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.messages))
	for i, m := range f.messages {
		out[i] = string(m.Key)
	}
	return out
}

// blockingWriter parks every WriteMessages call until release is closed.
type blockingWriter struct {
	fakeWriter
	entered chan struct{}
	release chan struct{}
}

func (b *blockingWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	b.entered <- struct{}{}
	<-b.release
	return b.fakeWriter.WriteMessages(ctx, msgs...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPublisher(w messageWriter, buffer int) *Publisher {
	return newPublisher(w, buffer, time.Millisecond, 5*time.Millisecond, discardLogger(), observability.NewMetricsForTesting())
}

func testAssessment(id string) domain.Assessment {
	return domain.Assessment{
		ID:         id,
		ComputedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Results:    domain.ImpactResults{EnergyJoules: 1e18, BlastRadiusKm: 1000},
	}
}

// --- Publisher tests ---

func TestPublisher_DeliversAssessments(t *testing.T) {
	w := &fakeWriter{}
	p := testPublisher(w, 8)

	p.Publish(testAssessment("impact-aaa"))
	p.Publish(testAssessment("impact-bbb"))
	p.Publish(testAssessment("impact-ccc"))

	require.NoError(t, p.Close())

	assert.Equal(t, []string{"impact-aaa", "impact-bbb", "impact-ccc"}, w.keys())
	assert.True(t, w.closed)
}

func TestPublisher_RetriesOnFailure(t *testing.T) {
	w := &fakeWriter{failures: 2}
	p := testPublisher(w, 8)

	p.Publish(testAssessment("impact-retry"))
	require.NoError(t, p.Close())

	assert.Equal(t, 3, w.calls, "two failures then one success")
	assert.Equal(t, []string{"impact-retry"}, w.keys())
}

func TestPublisher_GivesUpAfterMaxAttempts(t *testing.T) {
	w := &fakeWriter{failures: 1000}
	p := testPublisher(w, 8)

	p.Publish(testAssessment("impact-doomed"))
	require.NoError(t, p.Close())

	assert.Equal(t, maxAttempts, w.calls)
	assert.Empty(t, w.keys())
}

func TestPublisher_DropsWhenQueueFull(t *testing.T) {
	w := &blockingWriter{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	p := testPublisher(w, 1)

	// The worker picks this up and parks inside WriteMessages.
	p.Publish(testAssessment("impact-1"))
	<-w.entered

	// Fills the one-slot queue, then overflows it.
	p.Publish(testAssessment("impact-2"))
	p.Publish(testAssessment("impact-3"))

	close(w.release)
	require.NoError(t, p.Close())

	assert.Equal(t, []string{"impact-1", "impact-2"}, w.keys(), "the overflow assessment is dropped")
}

func TestPublisher_CloseDrainsQueue(t *testing.T) {
	w := &fakeWriter{}
	p := testPublisher(w, 16)

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		p.Publish(testAssessment("impact-" + id))
	}
	require.NoError(t, p.Close())

	assert.Len(t, w.keys(), 5)
}

func TestPublisher_PublishAfterClose(t *testing.T) {
	w := &fakeWriter{}
	p := testPublisher(w, 8)
	require.NoError(t, p.Close())

	assert.NotPanics(t, func() {
		p.Publish(testAssessment("impact-late"))
	})
	assert.Empty(t, w.keys())
}

func TestPublisher_CloseIsIdempotent(t *testing.T) {
	w := &fakeWriter{}
	p := testPublisher(w, 8)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}

// --- serialization tests ---

func TestSerializeToMessage(t *testing.T) {
	computedAt := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	a := domain.Assessment{
		ID:         "impact-deadbeef",
		ComputedAt: computedAt,
		Input:      domain.ImpactInput{DiameterM: 100, VelocityKms: 20, Lat: 35.0, Lon: -97.0},
		Results:    domain.ImpactResults{EnergyJoules: 2.5e17, BlastRadiusKm: 629.96},
	}

	msg, err := serializeToMessage(a)
	require.NoError(t, err)

	assert.Equal(t, []byte("impact-deadbeef"), msg.Key)
	assert.Contains(t, string(msg.Value), `"id":"impact-deadbeef"`)
	assert.Contains(t, string(msg.Value), `"blast_radius_km":629.96`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "schema", msg.Headers[0].Key)
	assert.Equal(t, []byte("impact.assessment.v1"), msg.Headers[0].Value)
	assert.Equal(t, "computed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(computedAt.Format(time.RFC3339)), msg.Headers[1].Value)
}
