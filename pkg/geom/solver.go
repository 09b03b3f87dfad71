package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Domain restricts where on its carrying line a linear entity exists.
type Domain int

const (
	DomainSegment  Domain = iota // between the two defining points
	DomainRay                    // from the first point through the second, unbounded
	DomainInfinite               // the whole carrying line
)

// DefaultEps is the solver epsilon used when none is configured.
const DefaultEps = 1e-9

// Solver hosts the pure intersection functions. Eps is the single
// degeneracy knob shared by every solver: parallelism tests, zero-length
// and zero-radius rejection, and tangency classification all use it.
type Solver struct {
	Eps float64
}

// NewSolver returns a Solver with the default epsilon.
func NewSolver() Solver {
	return Solver{Eps: DefaultEps}
}

func (s Solver) eps() float64 {
	if s.Eps > 0 {
		return s.Eps
	}
	return DefaultEps
}

// inDomain validates a line parameter against a domain. A small slack
// keeps intersections exactly at endpoints from flickering in and out.
func (s Solver) inDomain(t float64, d Domain) bool {
	switch d {
	case DomainInfinite:
		return true
	case DomainRay:
		return t >= -s.eps()
	default:
		return t >= -s.eps() && t <= 1+s.eps()
	}
}

// InSegment reports whether a line parameter lies in the segment domain.
func (s Solver) InSegment(t float64) bool {
	return s.inDomain(t, DomainSegment)
}

// LineLine intersects the lines through (p1,p2) and (q1,q2). It solves
// the 2x2 system p1 + t*(p2-p1) = q1 + u*(q2-q1). Parallel or coincident
// lines (determinant below a relative epsilon) produce no point, as do
// zero-length inputs. Both parameters must lie in their domains.
func (s Solver) LineLine(p1, p2, q1, q2 v3.Vec, dp, dq Domain) (v3.Vec, bool) {
	d1 := p2.Sub(p1)
	d2 := q2.Sub(q1)
	l1 := math.Hypot(d1.X, d1.Y)
	l2 := math.Hypot(d2.X, d2.Y)
	if l1 < s.eps() || l2 < s.eps() {
		return v3.Vec{}, false
	}
	det := Cross2(d1, d2)
	if math.Abs(det) < s.eps()*l1*l2 {
		return v3.Vec{}, false
	}
	w := q1.Sub(p1)
	t := Cross2(w, d2) / det
	u := Cross2(w, d1) / det
	if !s.inDomain(t, dp) || !s.inDomain(u, dq) {
		return v3.Vec{}, false
	}
	return Lerp(p1, p2, t), true
}

// LineCircle intersects the line through (p1,p2) with the circle at
// center/radius. Substituting the parametric line into the circle
// equation yields a quadratic in the line parameter. The boolean tangent
// result is true when the discriminant is zero within epsilon and the
// single returned point is a tangency.
func (s Solver) LineCircle(p1, p2 v3.Vec, d Domain, center v3.Vec, radius float64) (pts []v3.Vec, tangent bool) {
	dir := p2.Sub(p1)
	a := Dot2(dir, dir)
	if a < s.eps()*s.eps() || radius < s.eps() {
		return nil, false
	}
	f := p1.Sub(center)
	b := 2 * Dot2(f, dir)
	c := Dot2(f, f) - radius*radius

	disc := b*b - 4*a*c
	// Scale the tangency window by the quadratic's leading coefficient so
	// the classification is independent of segment length.
	tangentBand := s.eps() * a * radius
	switch {
	case disc < -tangentBand:
		return nil, false
	case disc <= tangentBand:
		t := -b / (2 * a)
		if !s.inDomain(t, d) {
			return nil, false
		}
		return []v3.Vec{Lerp(p1, p2, t)}, true
	}
	sq := math.Sqrt(disc)
	for _, t := range []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
		if s.inDomain(t, d) {
			pts = append(pts, Lerp(p1, p2, t))
		}
	}
	return pts, false
}

// CircleCircle intersects two circles using the radical-line
// construction. Depending on the distance between centers relative to
// the sum and difference of radii the circles are separate, externally
// or internally tangent, intersecting, or concentric, producing 0, 1,
// or 2 points.
func (s Solver) CircleCircle(c1 v3.Vec, r1 float64, c2 v3.Vec, r2 float64) []v3.Vec {
	if r1 < s.eps() || r2 < s.eps() {
		return nil
	}
	d := Dist(c1, c2)
	if d < s.eps() {
		return nil // concentric (or identical): no discrete intersection
	}
	sum := r1 + r2
	diff := math.Abs(r1 - r2)
	ux := (c2.X - c1.X) / d
	uy := (c2.Y - c1.Y) / d

	switch {
	case d > sum+s.eps() || d < diff-s.eps():
		return nil
	case math.Abs(d-sum) <= s.eps():
		// Externally tangent: single point between the centers.
		return []v3.Vec{{X: c1.X + ux*r1, Y: c1.Y + uy*r1}}
	case math.Abs(d-diff) <= s.eps():
		// Internally tangent: single point on the far side of the
		// smaller circle.
		if r1 >= r2 {
			return []v3.Vec{{X: c1.X + ux*r1, Y: c1.Y + uy*r1}}
		}
		return []v3.Vec{{X: c1.X - ux*r1, Y: c1.Y - uy*r1}}
	}

	// Radical line: a is the distance from c1 to the chord midpoint,
	// h the half-chord length.
	a := (d*d + r1*r1 - r2*r2) / (2 * d)
	h2 := r1*r1 - a*a
	if h2 < 0 {
		h2 = 0
	}
	h := math.Sqrt(h2)
	mx := c1.X + ux*a
	my := c1.Y + uy*a
	return []v3.Vec{
		{X: mx + uy*h, Y: my - ux*h},
		{X: mx - uy*h, Y: my + ux*h},
	}
}

// ProjectOnLine returns the foot of the perpendicular from pt onto the
// line through a and b, together with the line parameter. The parameter
// is clamped to the given domain. A zero-length line reports ok=false.
func (s Solver) ProjectOnLine(pt, a, b v3.Vec, d Domain) (foot v3.Vec, t float64, ok bool) {
	dir := b.Sub(a)
	len2 := Dot2(dir, dir)
	if len2 < s.eps()*s.eps() {
		return v3.Vec{}, 0, false
	}
	t = Dot2(pt.Sub(a), dir) / len2
	switch d {
	case DomainSegment:
		t = math.Max(0, math.Min(1, t))
	case DomainRay:
		t = math.Max(0, t)
	}
	return Lerp(a, b, t), t, true
}

// TangentPoints returns the point(s) where lines through the external
// point touch the circle, using the right-triangle construction from the
// center distance and the radius. A point inside the circle has no
// tangents; a point on the circle is its own single tangency.
func (s Solver) TangentPoints(external, center v3.Vec, radius float64) []v3.Vec {
	if radius < s.eps() {
		return nil
	}
	d := Dist(external, center)
	if d < radius-s.eps() {
		return nil
	}
	if math.Abs(d-radius) <= s.eps() {
		return []v3.Vec{external}
	}
	alpha := math.Atan2(external.Y-center.Y, external.X-center.X)
	beta := math.Acos(radius / d)
	return []v3.Vec{
		{X: center.X + radius*math.Cos(alpha+beta), Y: center.Y + radius*math.Sin(alpha+beta)},
		{X: center.X + radius*math.Cos(alpha-beta), Y: center.Y + radius*math.Sin(alpha-beta)},
	}
}
