package lifecycle

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// DefaultSpread is the jitter applied around a base duration when none is
// given explicitly.
const DefaultSpread = 0.2

var ErrInvalidRange = errors.New("invalid timing range")

// Range describes durations drawn uniformly from
// [Base*(1-Spread), Base*(1+Spread)].
type Range struct {
	Base   time.Duration
	Spread float64
}

// Around is a range with the default spread.
func Around(base time.Duration) Range {
	return Range{Base: base, Spread: DefaultSpread}
}

// Between is the range covering [lo, hi].
func Between(lo, hi time.Duration) Range {
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo+hi == 0 {
		return Range{}
	}
	return Range{
		Base:   (lo + hi) / 2,
		Spread: float64(hi-lo) / float64(hi+lo),
	}
}

func (r Range) Min() time.Duration {
	return time.Duration(float64(r.Base) * (1 - r.Spread))
}

func (r Range) Max() time.Duration {
	return time.Duration(float64(r.Base) * (1 + r.Spread))
}

func (r Range) IsZero() bool {
	return r.Base == 0
}

func (r Range) Validate() error {
	if r.Base <= 0 {
		return fmt.Errorf("%w: base %v must be positive", ErrInvalidRange, r.Base)
	}
	if r.Spread < 0 || r.Spread >= 1 {
		return fmt.Errorf("%w: spread %v must be in [0, 1)", ErrInvalidRange, r.Spread)
	}
	return nil
}

// Draw picks a fresh duration from the range, scaled by multiplier.
func (r Range) Draw(rng *rand.Rand, multiplier float64) time.Duration {
	lo, hi := float64(r.Min()), float64(r.Max())
	d := lo
	if hi > lo {
		d += rng.Float64() * (hi - lo)
	}
	return time.Duration(d * multiplier)
}

// Timing holds the ranges one actor draws its phase durations from.
type Timing struct {
	// Think is the pause before asking for access.
	Think Range
	// Access is the time spent inside the critical section.
	Access Range
	// Use is an optional pause right after releasing, spent working on what
	// was read. Zero skips it.
	Use Range
}

func (t Timing) Validate() error {
	if err := t.Think.Validate(); err != nil {
		return fmt.Errorf("think: %w", err)
	}
	if err := t.Access.Validate(); err != nil {
		return fmt.Errorf("access: %w", err)
	}
	if !t.Use.IsZero() {
		if err := t.Use.Validate(); err != nil {
			return fmt.Errorf("use: %w", err)
		}
	}
	return nil
}
