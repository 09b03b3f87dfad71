package snap

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/plumbline/pkg/scene"
)

// Candidate is a provisional snap point produced by one generator for
// one entity and mode. Its Point lies on the generating geometry within
// the solver epsilon; intersection candidates satisfy both source
// equations. Tracking candidates carry no source entities.
type Candidate struct {
	Kind     Kind
	Point    v3.Vec
	Entities []scene.EntityID // generating entities, at most two
	Distance float64          // world-space distance to the cursor
}

// Result is the outcome of a resolve query. Valid=false is the normal
// "nothing to snap to" answer, not an error.
type Result struct {
	Valid     bool
	Candidate Candidate
}

// TrackingSource tells which tracking mechanism produced a vector.
type TrackingSource int

const (
	TrackPolar TrackingSource = iota
	TrackObject
)

func (t TrackingSource) String() string {
	if t == TrackObject {
		return "object"
	}
	return "polar"
}

// TrackingVector is a directional alignment ray for UI preview, distinct
// from a snap candidate. It lives from the moment a base point is set
// until the tracking points are cleared.
type TrackingVector struct {
	Origin    v3.Vec
	Direction v3.Vec // unit vector in the drafting plane
	AngleDeg  float64
	Source    TrackingSource
}

// primaryEntity returns the id used for deterministic tie-breaking:
// the smallest source entity id, or a sentinel for tracking candidates.
func (c Candidate) primaryEntity() scene.EntityID {
	if len(c.Entities) == 0 {
		return scene.EntityID(int(^uint(0) >> 1)) // tracking sorts after entities
	}
	min := c.Entities[0]
	for _, id := range c.Entities[1:] {
		if id < min {
			min = id
		}
	}
	return min
}
