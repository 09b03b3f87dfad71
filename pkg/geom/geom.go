// Package geom provides the planar geometry used by the snap engine:
// vector helpers over the sdfx v3.Vec type, angle normalization, and the
// intersection solver. All drafting happens in the z=0 plane; points keep
// their three components so they flow unchanged through the rest of the
// application, but every computation here uses X and Y only.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Pt builds a drafting-plane point.
func Pt(x, y float64) v3.Vec {
	return v3.Vec{X: x, Y: y, Z: 0}
}

// Dist returns the planar distance between two points.
func Dist(a, b v3.Vec) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Hypot(dx, dy)
}

// Dist2 returns the squared planar distance between two points.
func Dist2(a, b v3.Vec) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Cross2 returns the scalar (z) component of the planar cross product a×b.
func Cross2(a, b v3.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Dot2 returns the planar dot product of a and b.
func Dot2(a, b v3.Vec) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Lerp returns the point a + t*(b-a).
func Lerp(a, b v3.Vec, t float64) v3.Vec {
	return v3.Vec{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
	}
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b v3.Vec) v3.Vec {
	return Lerp(a, b, 0.5)
}

// PolarPoint returns the point at the given distance from origin along
// the direction angleDeg (counter-clockwise from +X).
func PolarPoint(origin v3.Vec, angleDeg, dist float64) v3.Vec {
	rad := angleDeg * math.Pi / 180
	return v3.Vec{
		X: origin.X + dist*math.Cos(rad),
		Y: origin.Y + dist*math.Sin(rad),
	}
}

// NormalizeAngleDeg maps an angle in degrees into [0, 360).
func NormalizeAngleDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngleDeg returns the direction from a to b in degrees, normalized to
// [0, 360). A zero-length direction yields 0.
func AngleDeg(a, b v3.Vec) float64 {
	return NormalizeAngleDeg(math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi)
}

// AngleDiffDeg returns the smallest absolute difference between two
// angles in degrees, in [0, 180].
func AngleDiffDeg(a, b float64) float64 {
	d := math.Abs(NormalizeAngleDeg(a) - NormalizeAngleDeg(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// AngleInArcDeg reports whether angleDeg lies within the counter-clockwise
// sweep from startDeg to endDeg. A sweep where start equals end covers the
// full circle.
func AngleInArcDeg(angleDeg, startDeg, endDeg float64) bool {
	a := NormalizeAngleDeg(angleDeg)
	s := NormalizeAngleDeg(startDeg)
	e := NormalizeAngleDeg(endDeg)
	if s == e {
		return true
	}
	if s < e {
		return a >= s && a <= e
	}
	// Sweep wraps through 0.
	return a >= s || a <= e
}
