// Package progress aggregates the number of candidates checked by the
// workers of a run and forwards snapshots to a Notifier.
//
// Workers never block on progress: they publish batched deltas into a sharded
// lock-free ring, one shard per producer, and a single consumer drains it.
package progress

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/gx0r/jwt-secret-finder/internal/services/cracker"
)

const (
	ringCapacity = 4096
	ringShards   = 16
)

type Tracker struct {
	ring     *ring.ShardedRing
	notifier Notifier
	period   time.Duration

	// deltas that did not fit into the ring on a final flush
	spill atomic.Uint64

	// consumer side, protected by mu
	mu         sync.Mutex
	runID      uuid.UUID
	length     int
	lengthSize uint64
	checked    uint64
	attempts   uint64
}

func NewTracker(runID uuid.UUID, notifier Notifier, period time.Duration) (*Tracker, error) {
	r, err := ring.NewShardedRing(ringCapacity, ringShards)
	if err != nil {
		return nil, errors.Wrap(err, "create progress ring")
	}

	if period <= 0 {
		period = cracker.DefaultProgressPeriod
	}

	return &Tracker{
		ring:     r,
		notifier: notifier,
		period:   period,
		runID:    runID,
	}, nil
}

// Add publishes n checked candidates from the given worker. It never blocks,
// false means the ring is full and the caller should keep its delta.
func (t *Tracker) Add(workerID int, n uint64) bool {
	if n == 0 {
		return true
	}
	return t.ring.Write(uint64(workerID), n)
}

// Flush publishes a worker's final delta. It always succeeds.
func (t *Tracker) Flush(workerID int, n uint64) {
	if !t.Add(workerID, n) {
		t.spill.Add(n)
	}
}

// StartLength switches the tracker to a new candidate length.
// Must not be called while workers of the previous length are running.
func (t *Tracker) StartLength(length int, size uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.drain()
	t.length = length
	t.lengthSize = size
	t.checked = 0
	t.notify(cracker.StatusInProgress)
}

// Run publishes a snapshot every period until ctx is done.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mu.Lock()
			t.drain()
			t.notify(cracker.StatusInProgress)
			t.mu.Unlock()
		}
	}
}

// Finish collects every outstanding delta and publishes the final snapshot.
func (t *Tracker) Finish(status cracker.Status) cracker.Progress {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.drain()
	t.notify(status)
	return t.snapshot(status)
}

func (t *Tracker) Attempts() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.drain()
	return t.attempts
}

func (t *Tracker) drain() {
	for {
		v, ok := t.ring.TryRead()
		if !ok {
			break
		}
		if n, ok := v.(uint64); ok {
			t.checked += n
			t.attempts += n
		}
	}

	if n := t.spill.Swap(0); n != 0 {
		t.checked += n
		t.attempts += n
	}
}

func (t *Tracker) snapshot(status cracker.Status) cracker.Progress {
	return cracker.Progress{
		RunID:      t.runID,
		Length:     t.length,
		LengthSize: t.lengthSize,
		Checked:    t.checked,
		Attempts:   t.attempts,
		Status:     status,
	}
}

func (t *Tracker) notify(status cracker.Status) {
	if t.notifier == nil {
		return
	}

	p := t.snapshot(status)
	_ = t.notifier.Notify(&p)
}
