package simulation

import (
	"fmt"
	"io"
	"sort"

	"gitlab.com/slon/rwsim/accessgate"
	"gitlab.com/slon/rwsim/database"
	"gitlab.com/slon/rwsim/stats"
)

// Report is the outcome of one finished run.
type Report struct {
	RunID   string
	Policy  accessgate.Policy
	Readers int
	Writers int
	// Started is the number of actors actually spawned; lower than
	// Readers+Writers when a staggered run was stopped early.
	Started int

	Stats         stats.Snapshot
	ExpectedRatio float64

	// Gate is the gate state once every actor has been joined. It is idle
	// after any clean run.
	Gate        accessgate.State
	Database    database.Record
	Violations  int64
	PeakReaders int64
	// Completed maps actor IDs to the critical sections they finished.
	Completed map[string]int64
}

// Starved lists actors that never completed a critical section, sorted.
func (r Report) Starved() []string {
	var ids []string
	for id, n := range r.Completed {
		if n == 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// WriteTo prints the human-readable summary.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"Readers executed: %d\n"+
			"Writers executed: %d\n"+
			"Ratio: %.2f\n"+
			"Balanced Ratio: %.2f\n"+
			"Accesses per second: %.2f\n"+
			"Database version: %d\n"+
			"Peak concurrent readers: %d\n"+
			"Violations: %d\n",
		r.Stats.Reads,
		r.Stats.Writes,
		r.Stats.Ratio,
		r.ExpectedRatio,
		r.Stats.AccessesPerSecond,
		r.Database.Version,
		r.PeakReaders,
		r.Violations,
	)
	return int64(n), err
}
