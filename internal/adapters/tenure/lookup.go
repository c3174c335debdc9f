// Package tenure defines the external coach-tenure lookup contract and an
// in-memory implementation that stands in for the real data source.
package tenure

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/courtside/fieldrank/internal/domain/namematch"
	"github.com/courtside/fieldrank/internal/domain/sport"
)

// Default lookup configuration constants.
const (
	defaultMinLatency = 20 * time.Millisecond
	defaultMaxLatency = 60 * time.Millisecond
	defaultRandomSeed = 42
)

// Lookup resolves a coach's tenure history. Implementations return the
// "not found" sentinel (namematch.NotFoundSentinel) rather than an error
// when they simply have no record; errors are reserved for real failures.
type Lookup interface {
	// Search returns the tenure blob for a coach, honoring ctx for
	// cancellation.
	Search(ctx context.Context, coachName, schoolName string, sp sport.Sport) (string, error)
}

// Option applies a configuration option to the StaticLookup.
type Option func(*StaticLookup)

// WithRecords seeds the lookup with tenure blobs keyed by coach name.
func WithRecords(records map[string]string) Option {
	return func(l *StaticLookup) {
		for name, blob := range records {
			l.records[recordKey(name)] = blob
		}
	}
}

// WithLatencyRange sets the simulated latency range. Equal bounds mean a
// fixed latency.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(l *StaticLookup) {
		if minLatency > 0 && maxLatency >= minLatency {
			l.minLatency = minLatency
			l.maxLatency = maxLatency
		}
	}
}

// StaticLookup implements Lookup from an in-memory record table, simulating
// the latency of the external source it stands in for.
type StaticLookup struct {
	records map[string]string

	minLatency time.Duration
	maxLatency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewStaticLookup creates a lookup with configuration options.
func NewStaticLookup(opts ...Option) *StaticLookup {
	l := &StaticLookup{
		records:    make(map[string]string),
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
		rng:        rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible latency
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Search returns the recorded tenure blob for the coach, or the "not found"
// sentinel when no record exists. The school and sport parameters are part
// of the collaborator contract but this implementation keys by coach alone.
func (l *StaticLookup) Search(ctx context.Context, coachName, _ string, _ sport.Sport) (string, error) {
	if strings.TrimSpace(coachName) == "" {
		return namematch.NotFoundSentinel, nil
	}

	l.mu.Lock()
	latency := l.minLatency
	if l.maxLatency > l.minLatency {
		latency += time.Duration(l.rng.Int63n(int64(l.maxLatency - l.minLatency)))
	}
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("tenure search cancelled: %w", ctx.Err())
	case <-time.After(latency):
	}

	blob, ok := l.records[recordKey(coachName)]
	if !ok || strings.TrimSpace(blob) == "" {
		return namematch.NotFoundSentinel, nil
	}
	return blob, nil
}

func recordKey(coachName string) string {
	return strings.ToLower(strings.TrimSpace(coachName))
}
