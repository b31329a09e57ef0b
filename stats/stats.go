// Package stats counts completed critical sections and derives throughput.
package stats

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// Snapshot is a consistent-enough view of the counters at one instant.
type Snapshot struct {
	Reads             int64
	Writes            int64
	Ratio             float64
	AccessesPerSecond float64
	Elapsed           time.Duration
}

// Aggregator is safe for concurrent use. Record calls are plain atomic
// increments so they never queue behind the resource lock.
type Aggregator struct {
	clock clockwork.Clock
	start time.Time

	reads  atomic.Int64
	writes atomic.Int64

	mu  sync.Mutex
	end time.Time
}

// New starts the measurement window now, as told by clock.
func New(clock clockwork.Clock) *Aggregator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Aggregator{clock: clock, start: clock.Now()}
}

func (a *Aggregator) RecordRead() {
	a.reads.Add(1)
}

func (a *Aggregator) RecordWrite() {
	a.writes.Add(1)
}

// Freeze closes the measurement window. Later calls keep the first end time.
func (a *Aggregator) Freeze() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.end.IsZero() {
		a.end = a.clock.Now()
	}
}

// Elapsed is the length of the measurement window so far.
func (a *Aggregator) Elapsed() time.Duration {
	a.mu.Lock()
	end := a.end
	a.mu.Unlock()
	if end.IsZero() {
		end = a.clock.Now()
	}
	return end.Sub(a.start)
}

func (a *Aggregator) Snapshot() Snapshot {
	s := Snapshot{
		Reads:   a.reads.Load(),
		Writes:  a.writes.Load(),
		Elapsed: a.Elapsed(),
	}
	s.Ratio = Ratio(s.Reads, s.Writes)
	if secs := s.Elapsed.Seconds(); secs > 0 {
		s.AccessesPerSecond = float64(s.Reads+s.Writes) / secs
	}
	return s
}

// Ratio is reads per write, or 0 when there were no writes.
func Ratio(reads, writes int64) float64 {
	if writes == 0 {
		return 0
	}
	return float64(reads) / float64(writes)
}

// ExpectedRatio estimates the read/write ratio a balanced gate should reach:
// each writer's access time buys that many reader accesses across the reader
// population.
func ExpectedRatio(readers, writers int, readAccess, writeAccess time.Duration) float64 {
	if writers == 0 || readAccess <= 0 {
		return 0
	}
	return float64(writeAccess) * float64(readers) / (float64(readAccess) * float64(writers))
}
