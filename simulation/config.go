package simulation

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"gitlab.com/slon/rwsim/accessgate"
	"gitlab.com/slon/rwsim/lifecycle"
)

var (
	ErrInvalidConfig  = errors.New("invalid simulation config")
	ErrAlreadyRunning = errors.New("simulation already running")
)

// Config is everything one run needs.
type Config struct {
	Readers int
	Writers int

	ReaderTiming lifecycle.Timing
	WriterTiming lifecycle.Timing
	Policy       accessgate.Policy

	// Duration is the run window after the last actor has started. Zero runs
	// until Stop is called or the context is cancelled.
	Duration time.Duration
	// Stagger spreads actor starts over roughly this window.
	Stagger time.Duration
	// Seed makes actor timing reproducible. Zero picks a random seed.
	Seed uint64
}

// DefaultConfig is a small population with human-scale timings, slow enough
// to follow in a visualisation.
func DefaultConfig() Config {
	return Config{
		Readers: 3,
		Writers: 2,
		ReaderTiming: lifecycle.Timing{
			Think:  lifecycle.Between(500*time.Millisecond, 1000*time.Millisecond),
			Access: lifecycle.Between(800*time.Millisecond, 1400*time.Millisecond),
		},
		WriterTiming: lifecycle.Timing{
			Think:  lifecycle.Between(600*time.Millisecond, 1500*time.Millisecond),
			Access: lifecycle.Between(400*time.Millisecond, 800*time.Millisecond),
		},
		Policy:   accessgate.WriterPriority,
		Duration: 5 * time.Second,
	}
}

func (c Config) Validate() error {
	if c.Readers <= 0 {
		return fmt.Errorf("%w: readers must be positive, got %d", ErrInvalidConfig, c.Readers)
	}
	if c.Writers <= 0 {
		return fmt.Errorf("%w: writers must be positive, got %d", ErrInvalidConfig, c.Writers)
	}
	if err := validateTimings(c.ReaderTiming, c.WriterTiming); err != nil {
		return err
	}
	if c.Duration < 0 {
		return fmt.Errorf("%w: negative duration %v", ErrInvalidConfig, c.Duration)
	}
	if c.Stagger < 0 {
		return fmt.Errorf("%w: negative stagger %v", ErrInvalidConfig, c.Stagger)
	}
	return nil
}

func validateTimings(reader, writer lifecycle.Timing) error {
	if err := reader.Validate(); err != nil {
		return fmt.Errorf("%w: reader %w", ErrInvalidConfig, err)
	}
	if err := writer.Validate(); err != nil {
		return fmt.Errorf("%w: writer %w", ErrInvalidConfig, err)
	}
	return nil
}

type fileRange struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

type fileTiming struct {
	Think  *fileRange `yaml:"think"`
	Access *fileRange `yaml:"access"`
	Use    *fileRange `yaml:"use"`
}

type fileConfig struct {
	Readers  int           `yaml:"readers"`
	Writers  int           `yaml:"writers"`
	Policy   string        `yaml:"policy"`
	Duration time.Duration `yaml:"duration"`
	Stagger  time.Duration `yaml:"stagger"`
	Seed     uint64        `yaml:"seed"`
	Reader   fileTiming    `yaml:"reader"`
	Writer   fileTiming    `yaml:"writer"`
}

func (r *fileRange) apply(dst *lifecycle.Range) {
	if r != nil {
		*dst = lifecycle.Between(r.Min, r.Max)
	}
}

// over returns def with every range present in the file replaced.
func (ft fileTiming) over(def lifecycle.Timing) lifecycle.Timing {
	ft.Think.apply(&def.Think)
	ft.Access.apply(&def.Access)
	ft.Use.apply(&def.Use)
	return def
}

// ParseConfig reads a YAML config. Keys that are absent keep their
// DefaultConfig values.
func ParseConfig(data []byte) (Config, error) {
	def := DefaultConfig()
	fc := fileConfig{
		Readers:  def.Readers,
		Writers:  def.Writers,
		Policy:   def.Policy.String(),
		Duration: def.Duration,
		Stagger:  def.Stagger,
		Seed:     def.Seed,
	}
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	policy, err := accessgate.ParsePolicy(fc.Policy)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := Config{
		Readers:      fc.Readers,
		Writers:      fc.Writers,
		ReaderTiming: fc.Reader.over(def.ReaderTiming),
		WriterTiming: fc.Writer.over(def.WriterTiming),
		Policy:       policy,
		Duration:     fc.Duration,
		Stagger:      fc.Stagger,
		Seed:         fc.Seed,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}
