package geom

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const testEps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-7
}

func nearPt(p v3.Vec, x, y float64) bool {
	return near(p.X, x) && near(p.Y, y)
}

// ---------------------------------------------------------------------------
// Line-line
// ---------------------------------------------------------------------------

func TestLineLine_CrossingSegments(t *testing.T) {
	s := NewSolver()
	p, ok := s.LineLine(Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(10, 0), DomainSegment, DomainSegment)
	if !ok {
		t.Fatal("expected an intersection, got none")
	}
	if !nearPt(p, 5, 5) {
		t.Errorf("expected (5,5), got (%v,%v)", p.X, p.Y)
	}
}

func TestLineLine_Symmetric(t *testing.T) {
	s := NewSolver()
	a1, a2 := Pt(0, 0), Pt(10, 10)
	b1, b2 := Pt(0, 10), Pt(10, 0)

	p1, ok1 := s.LineLine(a1, a2, b1, b2, DomainSegment, DomainSegment)
	p2, ok2 := s.LineLine(b1, b2, a1, a2, DomainSegment, DomainSegment)
	if ok1 != ok2 {
		t.Fatalf("asymmetric result: %v vs %v", ok1, ok2)
	}
	if !near(p1.X, p2.X) || !near(p1.Y, p2.Y) {
		t.Errorf("intersect(A,B)=(%v,%v) but intersect(B,A)=(%v,%v)", p1.X, p1.Y, p2.X, p2.Y)
	}
}

func TestLineLine_ParallelNoIntersection(t *testing.T) {
	s := NewSolver()
	if _, ok := s.LineLine(Pt(0, 0), Pt(10, 0), Pt(0, 1), Pt(10, 1), DomainSegment, DomainSegment); ok {
		t.Error("parallel lines produced an intersection")
	}
}

func TestLineLine_CoincidentNoIntersection(t *testing.T) {
	s := NewSolver()
	if _, ok := s.LineLine(Pt(0, 0), Pt(10, 0), Pt(2, 0), Pt(8, 0), DomainSegment, DomainSegment); ok {
		t.Error("coincident lines produced an intersection")
	}
}

func TestLineLine_ZeroLengthSkipped(t *testing.T) {
	s := NewSolver()
	if _, ok := s.LineLine(Pt(5, 5), Pt(5, 5), Pt(0, 0), Pt(10, 10), DomainSegment, DomainSegment); ok {
		t.Error("zero-length line produced an intersection")
	}
}

func TestLineLine_OutsideSegmentDomain(t *testing.T) {
	s := NewSolver()
	// Carrying lines cross at (5,5) but the second segment stops short.
	if _, ok := s.LineLine(Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(3, 7), DomainSegment, DomainSegment); ok {
		t.Error("intersection outside the segment domain was accepted")
	}
	// The same pair intersects when the short segment is unbounded.
	p, ok := s.LineLine(Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(3, 7), DomainSegment, DomainInfinite)
	if !ok || !nearPt(p, 5, 5) {
		t.Errorf("construction line domain: expected (5,5), got ok=%v (%v,%v)", ok, p.X, p.Y)
	}
}

func TestLineLine_RayDomain(t *testing.T) {
	s := NewSolver()
	// Ray from (0,0) toward (1,1) reaches (5,5); the reverse ray does not.
	if _, ok := s.LineLine(Pt(0, 0), Pt(1, 1), Pt(0, 10), Pt(10, 0), DomainRay, DomainSegment); !ok {
		t.Error("forward ray missed the intersection")
	}
	if _, ok := s.LineLine(Pt(0, 0), Pt(-1, -1), Pt(0, 10), Pt(10, 0), DomainRay, DomainSegment); ok {
		t.Error("backward ray hit an intersection behind its origin")
	}
}

// ---------------------------------------------------------------------------
// Line-circle
// ---------------------------------------------------------------------------

func TestLineCircle_TwoRoots(t *testing.T) {
	s := NewSolver()
	pts, tangent := s.LineCircle(Pt(-10, 0), Pt(10, 0), DomainSegment, Pt(0, 0), 5)
	if tangent {
		t.Error("secant classified as tangent")
	}
	if len(pts) != 2 {
		t.Fatalf("expected 2 intersections, got %d", len(pts))
	}
	if !nearPt(pts[0], -5, 0) || !nearPt(pts[1], 5, 0) {
		t.Errorf("expected (-5,0) and (5,0), got %v", pts)
	}
}

func TestLineCircle_Tangent(t *testing.T) {
	s := NewSolver()
	pts, tangent := s.LineCircle(Pt(-10, 5), Pt(10, 5), DomainSegment, Pt(0, 0), 5)
	if !tangent {
		t.Fatal("tangent line not classified as tangent")
	}
	if len(pts) != 1 || !nearPt(pts[0], 0, 5) {
		t.Errorf("expected single tangency at (0,5), got %v", pts)
	}
}

func TestLineCircle_Miss(t *testing.T) {
	s := NewSolver()
	pts, _ := s.LineCircle(Pt(-10, 6), Pt(10, 6), DomainSegment, Pt(0, 0), 5)
	if len(pts) != 0 {
		t.Errorf("expected no intersection, got %v", pts)
	}
}

func TestLineCircle_ZeroRadiusSkipped(t *testing.T) {
	s := NewSolver()
	pts, _ := s.LineCircle(Pt(-10, 0), Pt(10, 0), DomainSegment, Pt(0, 0), 0)
	if len(pts) != 0 {
		t.Errorf("zero-radius circle produced intersections: %v", pts)
	}
}

func TestLineCircle_DomainClipsRoots(t *testing.T) {
	s := NewSolver()
	// Segment ends inside the circle: only the entry point is on it.
	pts, _ := s.LineCircle(Pt(-10, 0), Pt(0, 0), DomainSegment, Pt(0, 0), 5)
	if len(pts) != 1 || !nearPt(pts[0], -5, 0) {
		t.Errorf("expected only (-5,0), got %v", pts)
	}
}

// ---------------------------------------------------------------------------
// Circle-circle
// ---------------------------------------------------------------------------

func TestCircleCircle_ExternalTangency(t *testing.T) {
	s := NewSolver()
	pts := s.CircleCircle(Pt(0, 0), 5, Pt(10, 0), 5)
	if len(pts) != 1 {
		t.Fatalf("expected exactly one tangent point, got %d", len(pts))
	}
	if !nearPt(pts[0], 5, 0) {
		t.Errorf("expected (5,0), got (%v,%v)", pts[0].X, pts[0].Y)
	}
}

func TestCircleCircle_InternalTangency(t *testing.T) {
	s := NewSolver()
	pts := s.CircleCircle(Pt(0, 0), 5, Pt(2, 0), 3)
	if len(pts) != 1 {
		t.Fatalf("expected exactly one tangent point, got %d", len(pts))
	}
	if !nearPt(pts[0], 5, 0) {
		t.Errorf("expected (5,0), got (%v,%v)", pts[0].X, pts[0].Y)
	}
}

func TestCircleCircle_TwoIntersections(t *testing.T) {
	s := NewSolver()
	pts := s.CircleCircle(Pt(0, 0), 5, Pt(6, 0), 5)
	if len(pts) != 2 {
		t.Fatalf("expected two intersections, got %d", len(pts))
	}
	for _, p := range pts {
		if !near(p.X, 3) {
			t.Errorf("intersection x should be 3, got %v", p.X)
		}
		if !near(math.Abs(p.Y), 4) {
			t.Errorf("intersection |y| should be 4, got %v", p.Y)
		}
		// Both circle equations hold within epsilon.
		if !near(Dist(p, Pt(0, 0)), 5) || !near(Dist(p, Pt(6, 0)), 5) {
			t.Errorf("point (%v,%v) not on both circles", p.X, p.Y)
		}
	}
}

func TestCircleCircle_SeparateAndContained(t *testing.T) {
	s := NewSolver()
	if pts := s.CircleCircle(Pt(0, 0), 2, Pt(10, 0), 2); len(pts) != 0 {
		t.Errorf("separate circles intersected: %v", pts)
	}
	if pts := s.CircleCircle(Pt(0, 0), 10, Pt(1, 0), 2); len(pts) != 0 {
		t.Errorf("contained circle intersected: %v", pts)
	}
}

func TestCircleCircle_Concentric(t *testing.T) {
	s := NewSolver()
	if pts := s.CircleCircle(Pt(0, 0), 5, Pt(0, 0), 3); len(pts) != 0 {
		t.Errorf("concentric circles intersected: %v", pts)
	}
}

// ---------------------------------------------------------------------------
// Projection and tangents
// ---------------------------------------------------------------------------

func TestProjectOnLine_ClampsToSegment(t *testing.T) {
	s := NewSolver()
	foot, tt, ok := s.ProjectOnLine(Pt(20, 3), Pt(0, 0), Pt(10, 0), DomainSegment)
	if !ok {
		t.Fatal("projection failed")
	}
	if !near(tt, 1) || !nearPt(foot, 10, 0) {
		t.Errorf("expected clamp to endpoint (10,0) t=1, got (%v,%v) t=%v", foot.X, foot.Y, tt)
	}
}

func TestProjectOnLine_Infinite(t *testing.T) {
	s := NewSolver()
	foot, _, ok := s.ProjectOnLine(Pt(20, 3), Pt(0, 0), Pt(10, 0), DomainInfinite)
	if !ok || !nearPt(foot, 20, 0) {
		t.Errorf("expected (20,0), got ok=%v (%v,%v)", ok, foot.X, foot.Y)
	}
}

func TestProjectOnLine_ZeroLength(t *testing.T) {
	s := NewSolver()
	if _, _, ok := s.ProjectOnLine(Pt(1, 1), Pt(5, 5), Pt(5, 5), DomainSegment); ok {
		t.Error("zero-length line accepted a projection")
	}
}

func TestTangentPoints_External(t *testing.T) {
	s := NewSolver()
	pts := s.TangentPoints(Pt(10, 0), Pt(0, 0), 5)
	if len(pts) != 2 {
		t.Fatalf("expected 2 tangent points, got %d", len(pts))
	}
	for _, p := range pts {
		if !near(Dist(p, Pt(0, 0)), 5) {
			t.Errorf("tangent point (%v,%v) not on circle", p.X, p.Y)
		}
		// The radius is perpendicular to the tangent line.
		radial := p.Sub(Pt(0, 0))
		toExt := Pt(10, 0).Sub(p)
		if !near(Dot2(radial, toExt), 0) {
			t.Errorf("tangent at (%v,%v) is not perpendicular to radius", p.X, p.Y)
		}
	}
}

func TestTangentPoints_InsideAndOn(t *testing.T) {
	s := NewSolver()
	if pts := s.TangentPoints(Pt(1, 0), Pt(0, 0), 5); len(pts) != 0 {
		t.Errorf("interior point produced tangents: %v", pts)
	}
	pts := s.TangentPoints(Pt(5, 0), Pt(0, 0), 5)
	if len(pts) != 1 || !nearPt(pts[0], 5, 0) {
		t.Errorf("on-circle point should be its own tangency, got %v", pts)
	}
}

// ---------------------------------------------------------------------------
// Angles
// ---------------------------------------------------------------------------

func TestNormalizeAngleDeg(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0}, {360, 0}, {-90, 270}, {450, 90}, {720, 0}, {-450, 270},
	}
	for _, c := range cases {
		if got := NormalizeAngleDeg(c.in); !near(got, c.want) {
			t.Errorf("NormalizeAngleDeg(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAngleDiffDeg(t *testing.T) {
	if d := AngleDiffDeg(350, 10); !near(d, 20) {
		t.Errorf("wrap-around diff: got %v, want 20", d)
	}
	if d := AngleDiffDeg(90, 90); !near(d, 0) {
		t.Errorf("identical angles: got %v, want 0", d)
	}
}

func TestAngleInArcDeg_Wrapping(t *testing.T) {
	// Sweep from 270 through 0 to 90.
	if !AngleInArcDeg(0, 270, 90) {
		t.Error("0 deg should be inside the wrapped sweep 270..90")
	}
	if AngleInArcDeg(180, 270, 90) {
		t.Error("180 deg should be outside the wrapped sweep 270..90")
	}
}
