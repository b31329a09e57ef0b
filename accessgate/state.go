package accessgate

// State is a lock-free, best-effort view of a Gate. It is exact only when no
// reader or writer is in flight, e.g. after every actor has been joined.
type State struct {
	// Readers counts registered readers, including a first reader that is
	// still waiting for the resource.
	Readers      int
	Writing      bool
	ResourceHeld bool
	GuardHeld    bool
	PriorityHeld bool
}

// Idle reports whether nobody holds or waits inside the gate.
func (s State) Idle() bool {
	return s.Readers == 0 && !s.Writing && !s.ResourceHeld && !s.GuardHeld && !s.PriorityHeld
}

// State reports the current gate state. It never blocks.
func (g *Gate) State() State {
	return State{
		Readers:      int(g.readers.Load()),
		Writing:      g.writing.Load(),
		ResourceHeld: len(g.resource) == 0,
		GuardHeld:    len(g.countGuard) == 0,
		PriorityHeld: len(g.priority) == 0,
	}
}
