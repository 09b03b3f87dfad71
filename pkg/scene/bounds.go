package scene

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Bounds returns the axis-aligned bounding box of an entity payload in
// the drafting plane. Arcs and rotated ellipses use the conservative box
// of their full circle/major radius, which is all the spatial cache
// needs. Degenerate entities produce a valid zero-area box.
func Bounds(d EntityData) (min, max v3.Vec) {
	switch g := d.(type) {
	case PointData:
		return g.Position, g.Position
	case LineData:
		return boxOf(g.Start, g.End)
	case PolylineData:
		if len(g.Vertices) == 0 {
			return v3.Vec{}, v3.Vec{}
		}
		min, max = g.Vertices[0], g.Vertices[0]
		for _, p := range g.Vertices[1:] {
			min = vmin(min, p)
			max = vmax(max, p)
		}
		return min, max
	case CircleData:
		return radiusBox(g.Center, g.Radius)
	case ArcData:
		return radiusBox(g.Center, g.Radius)
	case EllipseData:
		r := math.Max(g.MajorRadius, g.MinorRadius)
		return radiusBox(g.Center, r)
	default:
		return v3.Vec{}, v3.Vec{}
	}
}

func boxOf(a, b v3.Vec) (min, max v3.Vec) {
	return vmin(a, b), vmax(a, b)
}

func radiusBox(c v3.Vec, r float64) (min, max v3.Vec) {
	if r < 0 {
		r = 0
	}
	return v3.Vec{X: c.X - r, Y: c.Y - r}, v3.Vec{X: c.X + r, Y: c.Y + r}
}

func vmin(a, b v3.Vec) v3.Vec {
	return v3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

func vmax(a, b v3.Vec) v3.Vec {
	return v3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}
