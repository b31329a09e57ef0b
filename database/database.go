// Package database is the shared resource the simulated actors contend for.
//
// The content is opaque: a version number and the last line written. DB does
// no locking of its own. Instead it checks, on every access, that the caller's
// synchronization kept writers exclusive and counts any breach.
package database

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Record is what a reader observes.
type Record struct {
	Version int64
	Line    string
}

type DB struct {
	readersIn atomic.Int64
	writersIn atomic.Int64

	violations  atomic.Int64
	peakReaders atomic.Int64
	reads       atomic.Int64
	writes      atomic.Int64

	// mu guards cur only; it is never held across access.
	mu  sync.Mutex
	cur Record
}

func New() *DB {
	return &DB{}
}

// Read runs access as a reader of the database and returns the record seen.
func (db *DB) Read(actor string, access func()) Record {
	n := db.readersIn.Add(1)
	defer db.readersIn.Add(-1)
	db.notePeak(n)
	if db.writersIn.Load() != 0 {
		db.violations.Add(1)
	}

	if access != nil {
		access()
	}

	if db.writersIn.Load() != 0 {
		db.violations.Add(1)
	}
	db.reads.Add(1)
	return db.Current()
}

// Write runs access as the writer of a new version.
func (db *DB) Write(actor string, access func()) Record {
	w := db.writersIn.Add(1)
	defer db.writersIn.Add(-1)
	if w != 1 || db.readersIn.Load() != 0 {
		db.violations.Add(1)
	}

	if access != nil {
		access()
	}

	if db.writersIn.Load() != 1 || db.readersIn.Load() != 0 {
		db.violations.Add(1)
	}

	db.mu.Lock()
	db.cur.Version++
	db.cur.Line = fmt.Sprintf("%s wrote v%d", actor, db.cur.Version)
	rec := db.cur
	db.mu.Unlock()

	db.writes.Add(1)
	return rec
}

func (db *DB) notePeak(n int64) {
	for {
		p := db.peakReaders.Load()
		if n <= p || db.peakReaders.CompareAndSwap(p, n) {
			return
		}
	}
}

// Current returns the last committed record.
func (db *DB) Current() Record {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.cur
}

// Violations counts accesses that overlapped in a way readers-writers
// exclusion forbids. A correct gate keeps it at zero.
func (db *DB) Violations() int64 {
	return db.violations.Load()
}

// PeakReaders is the highest number of readers seen inside at once.
func (db *DB) PeakReaders() int64 {
	return db.peakReaders.Load()
}

// Accesses returns the number of completed reads and writes.
func (db *DB) Accesses() (reads, writes int64) {
	return db.reads.Load(), db.writes.Load()
}
