// Package lifecycle runs reader and writer actors through their endless
// think, wait, access cycle against a shared gate.
package lifecycle

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type Options struct {
	ID   string
	Kind Kind
	// Index and Count place the actor on its ring: it is the Index-th of
	// Count actors of the same kind.
	Index, Count int

	Timing   Timing
	Gate     Gate
	Recorder Recorder
	Resource Resource
	Tempo    *Tempo

	Clock  clockwork.Clock
	Logger *zap.Logger
	// Seed feeds the actor's private random source. Zero picks a random seed.
	Seed uint64
}

// Actor is one reader or writer. Its status and position may be read from any
// goroutine; only Run mutates them.
type Actor struct {
	id     string
	kind   Kind
	home   Position
	timing Timing

	gate  Gate
	rec   Recorder
	res   Resource
	tempo *Tempo
	clock clockwork.Clock
	log   *zap.Logger
	rng   *rand.Rand

	status    atomic.Int32
	completed atomic.Int64
}

func New(opts Options) *Actor {
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Tempo == nil {
		opts.Tempo = NewTempo()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &Actor{
		id:     opts.ID,
		kind:   opts.Kind,
		home:   homeSlot(opts.Kind, opts.Index, opts.Count),
		timing: opts.Timing,
		gate:   opts.Gate,
		rec:    opts.Recorder,
		res:    opts.Resource,
		tempo:  opts.Tempo,
		clock:  opts.Clock,
		log:    opts.Logger.With(zap.String("actor", opts.ID), zap.Stringer("kind", opts.Kind)),
		rng:    rand.New(rand.NewPCG(seed, uint64(opts.Index))),
	}
}

func (a *Actor) ID() string {
	return a.id
}

func (a *Actor) Kind() Kind {
	return a.kind
}

func (a *Actor) Status() Status {
	return Status(a.status.Load())
}

// Completed is the number of critical sections this actor has finished.
func (a *Actor) Completed() int64 {
	return a.completed.Load()
}

// Position is the actor's home slot, or the database at the origin while it
// is inside the critical section.
func (a *Actor) Position() Position {
	if a.Status() == Active {
		return Position{}
	}
	return a.home
}

func (a *Actor) View() View {
	status := a.Status()
	pos := a.home
	if status == Active {
		pos = Position{}
	}
	return View{ID: a.id, Kind: a.kind, Status: status, Position: pos}
}

// Run cycles the actor until running is cleared or ctx is done. Both are
// checked only before thinking, so a started iteration always releases the
// gate before Run returns. Sleeps are never interrupted.
func (a *Actor) Run(ctx context.Context, running *atomic.Bool) {
	for iter := 1; a.proceed(ctx, running); iter++ {
		a.enter(Thinking, iter)
		a.clock.Sleep(a.draw(a.timing.Think))

		a.enter(Waiting, iter)
		a.access(iter)

		if !a.timing.Use.IsZero() {
			a.log.Debug("Using read data...", zap.Int("iteration", iter))
			a.clock.Sleep(a.draw(a.timing.Use))
		}
	}
	a.log.Debug("stopped", zap.Int64("completed", a.Completed()))
}

func (a *Actor) proceed(ctx context.Context, running *atomic.Bool) bool {
	if !running.Load() || ctx.Err() != nil {
		return false
	}
	if err := a.tempo.Wait(ctx); err != nil {
		return false
	}
	return running.Load()
}

func (a *Actor) access(iter int) {
	hold := a.draw(a.timing.Access)
	sleep := func() { a.clock.Sleep(hold) }

	switch a.kind {
	case Reader:
		a.gate.BeginRead()
		func() {
			defer a.gate.EndRead()
			defer a.status.Store(int32(Thinking))
			a.enter(Active, iter)
			if a.res == nil {
				sleep()
				return
			}
			rec := a.res.Read(a.id, sleep)
			a.log.Debug("read", zap.Int64("version", rec.Version), zap.String("line", rec.Line))
		}()
		a.rec.RecordRead()

	case Writer:
		a.gate.BeginWrite()
		func() {
			defer a.gate.EndWrite()
			defer a.status.Store(int32(Thinking))
			a.enter(Active, iter)
			if a.res == nil {
				sleep()
				return
			}
			rec := a.res.Write(a.id, sleep)
			a.log.Debug("wrote", zap.Int64("version", rec.Version))
		}()
		a.rec.RecordWrite()
	}
	a.completed.Add(1)
}

func (a *Actor) enter(s Status, iter int) {
	a.status.Store(int32(s))
	a.log.Debug(verb(a.kind, s), zap.Int("iteration", iter))
}

func (a *Actor) draw(r Range) time.Duration {
	return r.Draw(a.rng, a.tempo.Multiplier())
}
