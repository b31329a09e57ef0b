package lifecycle

import "fmt"

// Kind tells readers from writers.
type Kind int

const (
	Reader Kind = iota
	Writer
)

func (k Kind) String() string {
	switch k {
	case Reader:
		return "reader"
	case Writer:
		return "writer"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Status is the phase of the think -> wait -> access cycle an actor is in.
type Status int32

const (
	Thinking Status = iota
	Waiting
	Active
)

func (s Status) String() string {
	switch s {
	case Thinking:
		return "Thinking"
	case Waiting:
		return "Waiting"
	case Active:
		return "Active"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// verb is the log line describing an actor entering status s.
func verb(k Kind, s Status) string {
	switch {
	case s == Active && k == Writer:
		return "Writing..."
	case s == Active:
		return "Reading..."
	default:
		return s.String() + "..."
	}
}
