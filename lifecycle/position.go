package lifecycle

import "math"

// Ring radii around the database, which sits at the origin.
const (
	ReaderRadius = 200
	WriterRadius = 100
)

// Position is a point on the ground plane. It carries no camera or screen
// information.
type Position struct {
	X, Z float64
}

// homeSlot spreads count actors of one kind evenly around their ring.
func homeSlot(kind Kind, index, count int) Position {
	radius := float64(ReaderRadius)
	if kind == Writer {
		radius = WriterRadius
	}
	if count <= 0 {
		count = 1
	}
	angle := 2 * math.Pi * float64(index) / float64(count)
	return Position{X: math.Cos(angle) * radius, Z: math.Sin(angle) * radius}
}

// View is the read-only picture of an actor handed to renderers.
type View struct {
	ID       string
	Kind     Kind
	Status   Status
	Position Position
}
