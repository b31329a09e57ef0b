// Package simulation spawns reader and writer actors against one shared gate,
// lets them contend for a bounded window and reports what they achieved.
package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.com/slon/rwsim/accessgate"
	"gitlab.com/slon/rwsim/database"
	"gitlab.com/slon/rwsim/lifecycle"
	"gitlab.com/slon/rwsim/stats"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "rwsim"

type Option func(*Driver)

func WithLogger(log *zap.Logger) Option {
	return func(d *Driver) { d.log = log }
}

func WithClock(clock clockwork.Clock) Option {
	return func(d *Driver) { d.clock = clock }
}

// WithRegisterer exports the counters of each run while it is in flight.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(d *Driver) { d.reg = reg }
}

func WithSeed(seed uint64) Option {
	return func(d *Driver) { d.seed = seed }
}

// Driver runs simulations one at a time. Its control methods are safe to call
// from any goroutine, before, during or after a run.
type Driver struct {
	log   *zap.Logger
	clock clockwork.Clock
	reg   prometheus.Registerer
	tempo *lifecycle.Tempo

	mu           sync.Mutex
	readerTiming lifecycle.Timing
	writerTiming lifecycle.Timing
	policy       accessgate.Policy
	seed         uint64
	cur          *run
	inFlight     bool
}

func New(opts ...Option) *Driver {
	def := DefaultConfig()
	d := &Driver{
		log:          zap.NewNop(),
		clock:        clockwork.NewRealClock(),
		tempo:        lifecycle.NewTempo(),
		readerTiming: def.ReaderTiming,
		writerTiming: def.WriterTiming,
		policy:       def.Policy,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Configure sets the timings and policy used by subsequent runs.
func (d *Driver) Configure(reader, writer lifecycle.Timing, policy accessgate.Policy) error {
	if err := validateTimings(reader, writer); err != nil {
		return err
	}
	if policy != accessgate.WriterPriority && policy != accessgate.Naive {
		return fmt.Errorf("%w: %w: %v", ErrInvalidConfig, accessgate.ErrUnknownPolicy, policy)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.readerTiming, d.writerTiming, d.policy = reader, writer, policy
	return nil
}

// RunConfig configures the driver from cfg and runs it.
func (d *Driver) RunConfig(ctx context.Context, cfg Config) (stats.Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return stats.Snapshot{}, err
	}
	if err := d.Configure(cfg.ReaderTiming, cfg.WriterTiming, cfg.Policy); err != nil {
		return stats.Snapshot{}, err
	}
	d.mu.Lock()
	d.seed = cfg.Seed
	d.mu.Unlock()
	return d.Run(ctx, cfg.Readers, cfg.Writers, cfg.Duration, cfg.Stagger)
}

// Run starts readers then writers, lets them contend for duration and joins
// them all before returning the final statistics.
//
// Nothing is started when the arguments are invalid. Stop or cancelling ctx
// ends the run early; either way the snapshot covers every completed access.
func (d *Driver) Run(ctx context.Context, readers, writers int, duration, stagger time.Duration) (stats.Snapshot, error) {
	d.mu.Lock()
	cfg := Config{
		Readers:      readers,
		Writers:      writers,
		ReaderTiming: d.readerTiming,
		WriterTiming: d.writerTiming,
		Policy:       d.policy,
		Duration:     duration,
		Stagger:      stagger,
		Seed:         d.seed,
	}
	if err := cfg.Validate(); err != nil {
		d.mu.Unlock()
		return stats.Snapshot{}, err
	}
	if d.inFlight {
		d.mu.Unlock()
		return stats.Snapshot{}, ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	r := newRun(cfg, d.clock, cancel)
	d.cur = r
	d.inFlight = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.inFlight = false
		d.mu.Unlock()
	}()

	log := d.log.With(zap.String("run_id", r.id))
	if d.reg != nil {
		c := r.stats.Collector(MetricsNamespace)
		if err := d.reg.Register(c); err != nil {
			log.Warn("metrics not exported", zap.Error(err))
		} else {
			defer d.reg.Unregister(c)
		}
	}

	log.Info("run started",
		zap.Int("readers", readers),
		zap.Int("writers", writers),
		zap.Stringer("policy", cfg.Policy),
		zap.Duration("duration", duration),
		zap.Duration("stagger", stagger),
	)

	var g errgroup.Group
	r.spawn(runCtx, &g, d, log)

	if runCtx.Err() == nil {
		if duration > 0 {
			select {
			case <-d.clock.After(duration):
			case <-runCtx.Done():
			}
		} else {
			<-runCtx.Done()
		}
	}

	r.stop()
	_ = g.Wait()
	r.stats.Freeze()

	rep := r.finish()
	log.Info("run finished",
		zap.Int64("reads", rep.Stats.Reads),
		zap.Int64("writes", rep.Stats.Writes),
		zap.Float64("ratio", rep.Stats.Ratio),
		zap.Float64("expected_ratio", rep.ExpectedRatio),
		zap.Float64("accesses_per_second", rep.Stats.AccessesPerSecond),
		zap.Int64("peak_readers", rep.PeakReaders),
	)
	if rep.Violations != 0 {
		log.Error("mutual exclusion violated", zap.Int64("violations", rep.Violations))
	}
	if !rep.Gate.Idle() {
		log.Error("gate not idle after join", zap.Any("state", rep.Gate))
	}
	return rep.Stats, nil
}

// Stop asks the current run to wind down. Actors finish the iteration they
// are in, so Run returns within one think-plus-access period. Stop is
// idempotent and does nothing when no run is in flight.
func (d *Driver) Stop() {
	d.mu.Lock()
	r, inFlight := d.cur, d.inFlight
	d.mu.Unlock()
	if inFlight {
		r.stop()
	}
}

// Pause holds every actor at its next thinking boundary.
func (d *Driver) Pause()      { d.tempo.Pause() }
func (d *Driver) Resume()     { d.tempo.Resume() }
func (d *Driver) SpeedUp()    { d.tempo.SpeedUp() }
func (d *Driver) SlowDown()   { d.tempo.SlowDown() }
func (d *Driver) ResetSpeed() { d.tempo.ResetSpeed() }

// Tempo exposes the shared speed control, e.g. for displaying the multiplier.
func (d *Driver) Tempo() *lifecycle.Tempo {
	return d.tempo
}

func (d *Driver) current() *run {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cur
}

// Actors returns a view of every actor of the current or last run.
func (d *Driver) Actors() []lifecycle.View {
	r := d.current()
	if r == nil {
		return nil
	}
	return r.views()
}

// Gate reports the gate state of the current or last run.
func (d *Driver) Gate() accessgate.State {
	r := d.current()
	if r == nil {
		return accessgate.State{}
	}
	return r.gate.State()
}

// Live returns the running statistics of the current or last run.
func (d *Driver) Live() stats.Snapshot {
	r := d.current()
	if r == nil {
		return stats.Snapshot{}
	}
	return r.stats.Snapshot()
}

// Report describes the last finished run. It is the zero Report until a run
// has completed.
func (d *Driver) Report() Report {
	r := d.current()
	if r == nil {
		return Report{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.report
}

type run struct {
	id    string
	cfg   Config
	clock clockwork.Clock

	gate  *accessgate.Gate
	db    *database.DB
	stats *stats.Aggregator

	running atomic.Bool
	cancel  context.CancelFunc

	mu     sync.Mutex
	actors []*lifecycle.Actor
	report Report
}

func newRun(cfg Config, clock clockwork.Clock, cancel context.CancelFunc) *run {
	r := &run{
		id:     uuid.Must(uuid.NewV4()).String(),
		cfg:    cfg,
		clock:  clock,
		gate:   accessgate.New(cfg.Policy),
		db:     database.New(),
		stats:  stats.New(clock),
		cancel: cancel,
	}
	r.running.Store(true)
	return r
}

func (r *run) stop() {
	r.running.Store(false)
	r.cancel()
}

// spawn starts every actor, readers first. With a stagger window the starts
// are spread out; spawning ends early if the run is stopped meanwhile.
func (r *run) spawn(ctx context.Context, g *errgroup.Group, d *Driver, log *zap.Logger) {
	total := r.cfg.Readers + r.cfg.Writers
	seed := r.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, uint64(total)))

	for i := 0; i < total; i++ {
		if i > 0 && r.cfg.Stagger > 0 {
			select {
			case <-r.clock.After(staggerDelay(rng, r.cfg.Stagger, total)):
			case <-ctx.Done():
				log.Info("spawning cut short", zap.Int("started", i))
				return
			}
		}

		kind, index, count, timing := lifecycle.Reader, i, r.cfg.Readers, r.cfg.ReaderTiming
		if i >= r.cfg.Readers {
			kind, index, count, timing = lifecycle.Writer, i-r.cfg.Readers, r.cfg.Writers, r.cfg.WriterTiming
		}

		a := lifecycle.New(lifecycle.Options{
			ID:       fmt.Sprintf("%s-%d", kind, index),
			Kind:     kind,
			Index:    index,
			Count:    count,
			Timing:   timing,
			Gate:     r.gate,
			Recorder: r.stats,
			Resource: r.db,
			Tempo:    d.tempo,
			Clock:    r.clock,
			Logger:   log,
			Seed:     seed + uint64(i) + 1,
		})

		r.mu.Lock()
		r.actors = append(r.actors, a)
		r.mu.Unlock()

		g.Go(func() error {
			a.Run(ctx, &r.running)
			return nil
		})
	}
}

// staggerDelay spreads total starts over about window: each gap is drawn
// from [window/(3*total), window/total].
func staggerDelay(rng *rand.Rand, window time.Duration, total int) time.Duration {
	hi := window / time.Duration(total)
	lo := hi / 3
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rng.Int64N(int64(hi-lo)+1))
}

func (r *run) views() []lifecycle.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	views := make([]lifecycle.View, 0, len(r.actors))
	for _, a := range r.actors {
		views = append(views, a.View())
	}
	return views
}

func (r *run) finish() Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	completed := make(map[string]int64, len(r.actors))
	for _, a := range r.actors {
		completed[a.ID()] = a.Completed()
	}
	r.report = Report{
		RunID:    r.id,
		Policy:   r.cfg.Policy,
		Readers:  r.cfg.Readers,
		Writers:  r.cfg.Writers,
		Started:  len(r.actors),
		Stats:    r.stats.Snapshot(),
		Gate:     r.gate.State(),
		Database: r.db.Current(),
		ExpectedRatio: stats.ExpectedRatio(r.cfg.Readers, r.cfg.Writers,
			r.cfg.ReaderTiming.Access.Base, r.cfg.WriterTiming.Access.Base),
		Violations:  r.db.Violations(),
		PeakReaders: r.db.PeakReaders(),
		Completed:   completed,
	}
	return r.report
}
