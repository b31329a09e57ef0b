// Package accessgate implements the readers-writers access protocol over a
// single shared resource.
//
// Any number of readers may hold the resource together; a writer holds it
// alone. Under the WriterPriority policy a waiting writer blocks the entry of
// new readers, so it waits only for the readers already inside to drain.
package accessgate

import (
	"fmt"
	"sync/atomic"
)

// A Gate coordinates readers and writers over one shared resource.
//
// Locks are binary semaphores built from channels of capacity 1: a token in
// the channel means the lock is free. Readers nest priority -> countGuard ->
// resource, writers nest priority -> resource. No other order is used.
type Gate struct {
	policy Policy

	countGuard chan struct{}
	resource   chan struct{}
	priority   chan struct{}

	// readers is mutated only while countGuard is held. It is atomic so that
	// State can observe it without taking locks.
	readers atomic.Int64
	writing atomic.Bool
}

// New creates a Gate with all locks free.
func New(policy Policy) *Gate {
	g := &Gate{
		policy:     policy,
		countGuard: make(chan struct{}, 1),
		resource:   make(chan struct{}, 1),
		priority:   make(chan struct{}, 1),
	}
	g.countGuard <- struct{}{}
	g.resource <- struct{}{}
	g.priority <- struct{}{}
	return g
}

// Policy reports the scheduling policy the gate was created with.
func (g *Gate) Policy() Policy {
	return g.policy
}

// BeginRead registers the caller as an active reader.
//
// The first reader in takes the resource lock on behalf of the whole group and
// may block while a writer holds it. Under WriterPriority the priority gate is
// held only for the registration, so readers stay concurrent.
func (g *Gate) BeginRead() {
	if g.policy == WriterPriority {
		<-g.priority
	}
	<-g.countGuard
	if g.readers.Add(1) == 1 {
		<-g.resource
	}
	g.countGuard <- struct{}{}
	if g.policy == WriterPriority {
		g.priority <- struct{}{}
	}
}

// EndRead undoes a single BeginRead; the last reader out frees the resource.
// It panics if no reader is registered.
func (g *Gate) EndRead() {
	<-g.countGuard
	n := g.readers.Add(-1)
	if n < 0 {
		g.readers.Add(1)
		g.countGuard <- struct{}{}
		panic("accessgate: EndRead without matching BeginRead")
	}
	if n == 0 {
		release(g.resource, "resource")
	}
	g.countGuard <- struct{}{}
}

// BeginWrite blocks until the caller holds the resource exclusively.
//
// Under WriterPriority the priority gate is taken first and kept until
// EndWrite: from that moment no new reader can register.
func (g *Gate) BeginWrite() {
	if g.policy == WriterPriority {
		<-g.priority
	}
	<-g.resource
	g.writing.Store(true)
}

// EndWrite releases the resource and, under WriterPriority, the priority gate.
// It panics if the resource is not held.
func (g *Gate) EndWrite() {
	if !g.writing.CompareAndSwap(true, false) {
		panic("accessgate: EndWrite without matching BeginWrite")
	}
	release(g.resource, "resource")
	if g.policy == WriterPriority {
		release(g.priority, "priority gate")
	}
}

// Read runs fn as a reader. The read is always ended, even if fn panics.
func (g *Gate) Read(fn func()) {
	g.BeginRead()
	defer g.EndRead()
	fn()
}

// Write runs fn as the exclusive writer. The write is always ended, even if fn
// panics.
func (g *Gate) Write(fn func()) {
	g.BeginWrite()
	defer g.EndWrite()
	fn()
}

// release puts the token back into a binary semaphore. A full channel means
// the lock was not held: that is a broken caller, not a runtime condition.
func release(sem chan struct{}, name string) {
	select {
	case sem <- struct{}{}:
	default:
		panic(fmt.Sprintf("accessgate: release of unheld %s", name))
	}
}
