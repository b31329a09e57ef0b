package lifecycle

import "gitlab.com/slon/rwsim/database"

//go:generate mockgen -source=deps.go -destination=mock_deps_test.go -package=lifecycle

// Gate is the access protocol an actor brackets its critical section with.
type Gate interface {
	BeginRead()
	EndRead()
	BeginWrite()
	EndWrite()
}

// Recorder is told about every finished critical section.
type Recorder interface {
	RecordRead()
	RecordWrite()
}

// Resource is what the critical section actually touches. access is run while
// the actor is inside.
type Resource interface {
	Read(actor string, access func()) database.Record
	Write(actor string, access func()) database.Record
}

type nopRecorder struct{}

func (nopRecorder) RecordRead()  {}
func (nopRecorder) RecordWrite() {}
