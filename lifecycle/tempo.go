package lifecycle

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
)

// maxTempoLevel bounds speed changes to a factor of 16 either way.
const maxTempoLevel = 4

// Tempo is the global speed and pause control shared by every actor of a
// simulation. It scales the drawn durations; it never touches the gate.
type Tempo struct {
	// level is the base-2 logarithm of the duration multiplier.
	level atomic.Int32

	mu     sync.Mutex
	resume chan struct{}
}

func NewTempo() *Tempo {
	return &Tempo{}
}

// Multiplier scales every drawn duration. 1 is normal speed.
func (t *Tempo) Multiplier() float64 {
	return math.Ldexp(1, int(t.level.Load()))
}

// SpeedUp halves durations.
func (t *Tempo) SpeedUp() {
	t.shift(-1)
}

// SlowDown doubles durations.
func (t *Tempo) SlowDown() {
	t.shift(1)
}

func (t *Tempo) ResetSpeed() {
	t.level.Store(0)
}

func (t *Tempo) shift(delta int32) {
	for {
		cur := t.level.Load()
		next := min(max(cur+delta, -maxTempoLevel), maxTempoLevel)
		if next == cur || t.level.CompareAndSwap(cur, next) {
			return
		}
	}
}

// Pause holds actors at their next thinking boundary. Actors already waiting
// or inside the critical section finish that iteration first.
func (t *Tempo) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.resume == nil {
		t.resume = make(chan struct{})
	}
}

func (t *Tempo) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.resume != nil {
		close(t.resume)
		t.resume = nil
	}
}

func (t *Tempo) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resume != nil
}

// Wait blocks while the tempo is paused or until ctx is done.
func (t *Tempo) Wait(ctx context.Context) error {
	t.mu.Lock()
	ch := t.resume
	t.mu.Unlock()
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
