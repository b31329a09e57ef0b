package accessgate

import (
	"errors"
	"fmt"
)

// Policy selects how the gate arbitrates between readers and writers.
type Policy int

const (
	// WriterPriority lets a waiting writer block the entry of new readers.
	WriterPriority Policy = iota
	// Naive is the classic first readers-writers solution: no priority gate,
	// writers may starve under sustained read load.
	Naive
)

var ErrUnknownPolicy = errors.New("unknown policy")

func (p Policy) String() string {
	switch p {
	case WriterPriority:
		return "writer-priority"
	case Naive:
		return "naive"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy is the inverse of Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "writer-priority", "":
		return WriterPriority, nil
	case "naive":
		return Naive, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// MarshalText lets policies appear as strings in config files and flags.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
