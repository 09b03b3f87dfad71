package snap

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/plumbline/pkg/geom"
	"github.com/chazu/plumbline/pkg/scene"
)

// generator produces snap candidates for single entities. Pairwise
// intersection candidates live in intersect.go.
type generator struct {
	solver geom.Solver
}

func (g generator) candidate(k Kind, p, cursor v3.Vec, ids ...scene.EntityID) Candidate {
	return Candidate{
		Kind:     k,
		Point:    p,
		Entities: ids,
		Distance: geom.Dist(p, cursor),
	}
}

// entityCandidates generates all single-entity candidates for the
// enabled modes. base is the active base/reference point, nil when no
// command is in progress; the directional kinds (tangent, perpendicular,
// parallel) need it. Degenerate geometry is skipped, never an error.
func (g generator) entityCandidates(e scene.Entity, cursor v3.Vec, st Settings, base *v3.Vec) []Candidate {
	var out []Candidate
	add := func(k Kind, pts ...v3.Vec) {
		for _, p := range pts {
			out = append(out, g.candidate(k, p, cursor, e.ID))
		}
	}

	switch d := e.Data.(type) {
	case scene.PointData:
		if st.ModeEnabled(KindNode) {
			add(KindNode, d.Position)
		}

	case scene.LineData:
		if g.degenerateLine(d) {
			return nil
		}
		if !d.Construction {
			if st.ModeEnabled(KindEndpoint) {
				add(KindEndpoint, d.Start, d.End)
			}
			if st.ModeEnabled(KindMidpoint) {
				add(KindMidpoint, geom.Midpoint(d.Start, d.End))
			}
			if st.ModeEnabled(KindExtension) {
				if p, ok := g.extensionPoint(cursor, d.Start, d.End); ok {
					add(KindExtension, p)
				}
			}
		}
		if st.ModeEnabled(KindNearest) {
			if p, _, ok := g.solver.ProjectOnLine(cursor, d.Start, d.End, g.lineDomain(d)); ok {
				add(KindNearest, p)
			}
		}
		if base != nil {
			if st.ModeEnabled(KindPerpendicular) {
				if p, t, ok := g.solver.ProjectOnLine(*base, d.Start, d.End, geom.DomainInfinite); ok {
					if d.Construction || g.solver.InSegment(t) {
						add(KindPerpendicular, p)
					}
				}
			}
			if st.ModeEnabled(KindParallel) {
				dir := d.End.Sub(d.Start)
				through := base.Add(dir)
				if p, _, ok := g.solver.ProjectOnLine(cursor, *base, through, geom.DomainInfinite); ok {
					add(KindParallel, p)
				}
			}
		}

	case scene.PolylineData:
		segs := d.Segments()
		if len(segs) == 0 {
			return nil
		}
		if st.ModeEnabled(KindEndpoint) {
			add(KindEndpoint, d.Vertices...)
		}
		if st.ModeEnabled(KindMidpoint) {
			for _, s := range segs {
				if geom.Dist(s[0], s[1]) > g.solver.Eps {
					add(KindMidpoint, geom.Midpoint(s[0], s[1]))
				}
			}
		}
		if st.ModeEnabled(KindNearest) {
			if p, ok := g.nearestOnPolyline(cursor, segs); ok {
				add(KindNearest, p)
			}
		}

	case scene.CircleData:
		if d.Radius <= g.solver.Eps {
			return nil
		}
		if st.ModeEnabled(KindCenter) {
			add(KindCenter, d.Center)
		}
		if st.ModeEnabled(KindQuadrant) {
			add(KindQuadrant, circleQuadrants(d.Center, d.Radius)...)
		}
		if st.ModeEnabled(KindNearest) {
			if p, ok := nearestOnCircle(cursor, d.Center, d.Radius); ok {
				add(KindNearest, p)
			}
		}
		if base != nil {
			if st.ModeEnabled(KindTangent) {
				add(KindTangent, g.solver.TangentPoints(*base, d.Center, d.Radius)...)
			}
			if st.ModeEnabled(KindPerpendicular) {
				if p, ok := nearestOnCircle(*base, d.Center, d.Radius); ok {
					add(KindPerpendicular, p)
				}
			}
		}

	case scene.ArcData:
		if d.Radius <= g.solver.Eps {
			return nil
		}
		if st.ModeEnabled(KindEndpoint) {
			add(KindEndpoint,
				geom.PolarPoint(d.Center, d.StartDeg, d.Radius),
				geom.PolarPoint(d.Center, d.EndDeg, d.Radius))
		}
		if st.ModeEnabled(KindMidpoint) {
			add(KindMidpoint, geom.PolarPoint(d.Center, arcMidAngle(d), d.Radius))
		}
		if st.ModeEnabled(KindCenter) {
			add(KindCenter, d.Center)
		}
		if st.ModeEnabled(KindQuadrant) {
			for i, p := range circleQuadrants(d.Center, d.Radius) {
				if geom.AngleInArcDeg(float64(i*90), d.StartDeg, d.EndDeg) {
					add(KindQuadrant, p)
				}
			}
		}
		if st.ModeEnabled(KindNearest) {
			add(KindNearest, nearestOnArc(cursor, d))
		}
		if base != nil && st.ModeEnabled(KindTangent) {
			for _, p := range g.solver.TangentPoints(*base, d.Center, d.Radius) {
				if geom.AngleInArcDeg(geom.AngleDeg(d.Center, p), d.StartDeg, d.EndDeg) {
					add(KindTangent, p)
				}
			}
		}

	case scene.EllipseData:
		if d.MajorRadius <= g.solver.Eps || d.MinorRadius <= g.solver.Eps {
			return nil
		}
		if st.ModeEnabled(KindCenter) {
			add(KindCenter, d.Center)
		}
		if st.ModeEnabled(KindQuadrant) {
			add(KindQuadrant, ellipseQuadrants(d)...)
		}
		if st.ModeEnabled(KindNearest) {
			add(KindNearest, nearestOnEllipse(cursor, d))
		}
	}

	return out
}

func (g generator) degenerateLine(d scene.LineData) bool {
	return geom.Dist(d.Start, d.End) <= g.solver.Eps
}

func (g generator) lineDomain(d scene.LineData) geom.Domain {
	if d.Construction {
		return geom.DomainInfinite
	}
	return geom.DomainSegment
}

// extensionPoint projects the cursor onto the carrying line and keeps
// the foot only when it lies beyond the segment's endpoints.
func (g generator) extensionPoint(cursor, a, b v3.Vec) (v3.Vec, bool) {
	p, t, ok := g.solver.ProjectOnLine(cursor, a, b, geom.DomainInfinite)
	if !ok {
		return v3.Vec{}, false
	}
	if g.solver.InSegment(t) {
		return v3.Vec{}, false
	}
	return p, true
}

func (g generator) nearestOnPolyline(cursor v3.Vec, segs [][2]v3.Vec) (v3.Vec, bool) {
	best := v3.Vec{}
	bestD := math.Inf(1)
	found := false
	for _, s := range segs {
		p, _, ok := g.solver.ProjectOnLine(cursor, s[0], s[1], geom.DomainSegment)
		if !ok {
			continue
		}
		if d := geom.Dist2(p, cursor); d < bestD {
			best, bestD, found = p, d, true
		}
	}
	return best, found
}

func circleQuadrants(center v3.Vec, r float64) []v3.Vec {
	return []v3.Vec{
		{X: center.X + r, Y: center.Y},
		{X: center.X, Y: center.Y + r},
		{X: center.X - r, Y: center.Y},
		{X: center.X, Y: center.Y - r},
	}
}

// ellipseQuadrants returns the four axis points of the ellipse in its
// local (possibly rotated) frame.
func ellipseQuadrants(d scene.EllipseData) []v3.Vec {
	rot := d.RotationDeg * math.Pi / 180
	cos, sin := math.Cos(rot), math.Sin(rot)
	local := [][2]float64{
		{d.MajorRadius, 0},
		{0, d.MinorRadius},
		{-d.MajorRadius, 0},
		{0, -d.MinorRadius},
	}
	out := make([]v3.Vec, 0, 4)
	for _, l := range local {
		out = append(out, v3.Vec{
			X: d.Center.X + l[0]*cos - l[1]*sin,
			Y: d.Center.Y + l[0]*sin + l[1]*cos,
		})
	}
	return out
}

func nearestOnCircle(from, center v3.Vec, r float64) (v3.Vec, bool) {
	d := geom.Dist(from, center)
	if d == 0 {
		return v3.Vec{}, false // every direction is equally near
	}
	return geom.PolarPoint(center, geom.AngleDeg(center, from), r), true
}

func nearestOnArc(cursor v3.Vec, d scene.ArcData) v3.Vec {
	a := geom.AngleDeg(d.Center, cursor)
	if geom.AngleInArcDeg(a, d.StartDeg, d.EndDeg) {
		return geom.PolarPoint(d.Center, a, d.Radius)
	}
	// Outside the sweep: the nearer arc endpoint wins.
	p1 := geom.PolarPoint(d.Center, d.StartDeg, d.Radius)
	p2 := geom.PolarPoint(d.Center, d.EndDeg, d.Radius)
	if geom.Dist2(cursor, p1) <= geom.Dist2(cursor, p2) {
		return p1
	}
	return p2
}

// nearestOnEllipse uses the scaled-angle parameter estimate: exact for
// circles, and within a small fraction of the tolerance for the
// eccentricities drafting work uses.
func nearestOnEllipse(cursor v3.Vec, d scene.EllipseData) v3.Vec {
	rot := d.RotationDeg * math.Pi / 180
	cos, sin := math.Cos(rot), math.Sin(rot)
	// Cursor in the ellipse's local frame.
	dx := cursor.X - d.Center.X
	dy := cursor.Y - d.Center.Y
	lx := dx*cos + dy*sin
	ly := -dx*sin + dy*cos
	t := math.Atan2(ly*d.MajorRadius, lx*d.MinorRadius)
	ex := d.MajorRadius * math.Cos(t)
	ey := d.MinorRadius * math.Sin(t)
	return v3.Vec{
		X: d.Center.X + ex*cos - ey*sin,
		Y: d.Center.Y + ex*sin + ey*cos,
	}
}

func arcMidAngle(d scene.ArcData) float64 {
	s := geom.NormalizeAngleDeg(d.StartDeg)
	e := geom.NormalizeAngleDeg(d.EndDeg)
	if e < s {
		e += 360
	}
	return geom.NormalizeAngleDeg((s + e) / 2)
}
