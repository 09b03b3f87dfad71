package snap

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/plumbline/pkg/geom"
	"github.com/chazu/plumbline/pkg/scene"
)

// linePrim and circPrim are the primitive forms entities decompose into
// for pairwise intersection. Arcs become circles with a sweep check.
type linePrim struct {
	a, b v3.Vec
	dom  geom.Domain
}

type circPrim struct {
	center     v3.Vec
	r          float64
	hasSweep   bool
	start, end float64
}

func (c circPrim) contains(p v3.Vec) bool {
	if !c.hasSweep {
		return true
	}
	return geom.AngleInArcDeg(geom.AngleDeg(c.center, p), c.start, c.end)
}

func decompose(e scene.Entity) (lines []linePrim, circles []circPrim) {
	switch d := e.Data.(type) {
	case scene.LineData:
		dom := geom.DomainSegment
		if d.Construction {
			dom = geom.DomainInfinite
		}
		lines = append(lines, linePrim{a: d.Start, b: d.End, dom: dom})
	case scene.PolylineData:
		for _, s := range d.Segments() {
			lines = append(lines, linePrim{a: s[0], b: s[1], dom: geom.DomainSegment})
		}
	case scene.CircleData:
		circles = append(circles, circPrim{center: d.Center, r: d.Radius})
	case scene.ArcData:
		circles = append(circles, circPrim{
			center: d.Center, r: d.Radius,
			hasSweep: true, start: d.StartDeg, end: d.EndDeg,
		})
	}
	return lines, circles
}

// pairCandidates produces intersection (and tangency) candidates for one
// entity pair. Tangencies from the quadratic and radical-line solvers
// surface as Tangent when tangent mode is on, Intersection otherwise.
func (g generator) pairCandidates(ea, eb scene.Entity, cursor v3.Vec, st Settings) []Candidate {
	wantIx := st.ModeEnabled(KindIntersection)
	wantTan := st.ModeEnabled(KindTangent)
	if !wantIx && !wantTan {
		return nil
	}

	la, ca := decompose(ea)
	lb, cb := decompose(eb)
	var out []Candidate

	emit := func(k Kind, p v3.Vec) {
		out = append(out, g.candidate(k, p, cursor, ea.ID, eb.ID))
	}
	tangencyKind := func() (Kind, bool) {
		if wantTan {
			return KindTangent, true
		}
		return KindIntersection, wantIx
	}

	for _, l1 := range la {
		for _, l2 := range lb {
			if !wantIx {
				continue
			}
			if p, ok := g.solver.LineLine(l1.a, l1.b, l2.a, l2.b, l1.dom, l2.dom); ok {
				emit(KindIntersection, p)
			}
		}
		for _, c := range cb {
			out = append(out, g.lineCircleCandidates(l1, c, ea.ID, eb.ID, cursor, wantIx, tangencyKind)...)
		}
	}
	for _, c := range ca {
		for _, l2 := range lb {
			out = append(out, g.lineCircleCandidates(l2, c, ea.ID, eb.ID, cursor, wantIx, tangencyKind)...)
		}
		for _, c2 := range cb {
			pts := g.solver.CircleCircle(c.center, c.r, c2.center, c2.r)
			if len(pts) == 0 {
				continue
			}
			if len(pts) == 1 {
				if k, ok := tangencyKind(); ok && c.contains(pts[0]) && c2.contains(pts[0]) {
					emit(k, pts[0])
				}
				continue
			}
			if !wantIx {
				continue
			}
			for _, p := range pts {
				if c.contains(p) && c2.contains(p) {
					emit(KindIntersection, p)
				}
			}
		}
	}
	return out
}

func (g generator) lineCircleCandidates(l linePrim, c circPrim, idA, idB scene.EntityID, cursor v3.Vec, wantIx bool, tangencyKind func() (Kind, bool)) []Candidate {
	pts, tangent := g.solver.LineCircle(l.a, l.b, l.dom, c.center, c.r)
	var out []Candidate
	for _, p := range pts {
		if !c.contains(p) {
			continue
		}
		if tangent {
			if k, ok := tangencyKind(); ok {
				out = append(out, g.candidate(k, p, cursor, idA, idB))
			}
			continue
		}
		if wantIx {
			out = append(out, g.candidate(KindIntersection, p, cursor, idA, idB))
		}
	}
	return out
}
