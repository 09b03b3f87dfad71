// Package scene defines the drawing entities the snap engine works on and
// a store that owns them. The engine itself never mutates entities; it
// reads them through the store and reacts to change notifications.
package scene

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// EntityID identifies an entity within a Store. IDs are assigned
// sequentially and never reused.
type EntityID int

// InvalidEntity is the zero-value id returned when creation fails.
const InvalidEntity EntityID = -1

// EntityKind enumerates the drawing primitives.
type EntityKind int

const (
	KindPoint EntityKind = iota
	KindLine
	KindPolyline
	KindCircle
	KindArc
	KindEllipse
)

func (k EntityKind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindPolyline:
		return "polyline"
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	case KindEllipse:
		return "ellipse"
	default:
		return "unknown"
	}
}

// Entity is one drawing object. Layer is display metadata carried along
// for callers; the snap engine ignores it.
type Entity struct {
	ID    EntityID
	Kind  EntityKind
	Layer string
	Data  EntityData
}

// EntityData is the interface for kind-specific entity payloads.
type EntityData interface {
	entityData() // marker method restricting implementations to this package
}

// PointData is a node entity: a bare point.
type PointData struct {
	Position v3.Vec
}

func (PointData) entityData() {}

// LineData is a straight segment between two points. Construction lines
// extend beyond their defining points on both sides.
type LineData struct {
	Start, End   v3.Vec
	Construction bool
}

func (LineData) entityData() {}

// PolylineData is a chain of straight segments. A closed polyline has an
// implicit segment from the last vertex back to the first.
type PolylineData struct {
	Vertices []v3.Vec
	Closed   bool
}

func (PolylineData) entityData() {}

// Segments returns the polyline's segments as (start, end) pairs.
func (p PolylineData) Segments() [][2]v3.Vec {
	if len(p.Vertices) < 2 {
		return nil
	}
	n := len(p.Vertices) - 1
	if p.Closed {
		n = len(p.Vertices)
	}
	segs := make([][2]v3.Vec, 0, n)
	for i := 0; i < n; i++ {
		segs = append(segs, [2]v3.Vec{
			p.Vertices[i],
			p.Vertices[(i+1)%len(p.Vertices)],
		})
	}
	return segs
}

// CircleData is a full circle.
type CircleData struct {
	Center v3.Vec
	Radius float64
}

func (CircleData) entityData() {}

// ArcData is a circular arc swept counter-clockwise from StartDeg to
// EndDeg.
type ArcData struct {
	Center   v3.Vec
	Radius   float64
	StartDeg float64
	EndDeg   float64
}

func (ArcData) entityData() {}

// EllipseData is an axis-aligned ellipse in its local frame, rotated by
// RotationDeg about its center.
type EllipseData struct {
	Center      v3.Vec
	MajorRadius float64
	MinorRadius float64
	RotationDeg float64
}

func (EllipseData) entityData() {}

// KindOf returns the EntityKind for a payload.
func KindOf(d EntityData) EntityKind {
	switch d.(type) {
	case PointData:
		return KindPoint
	case LineData:
		return KindLine
	case PolylineData:
		return KindPolyline
	case CircleData:
		return KindCircle
	case ArcData:
		return KindArc
	default:
		return KindEllipse
	}
}
