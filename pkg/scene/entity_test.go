package scene

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/plumbline/pkg/geom"
)

func TestPolylineSegments(t *testing.T) {
	verts := []v3.Vec{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10)}

	open := PolylineData{Vertices: verts}
	if got := len(open.Segments()); got != 2 {
		t.Errorf("open polyline: %d segments, want 2", got)
	}

	closed := PolylineData{Vertices: verts, Closed: true}
	segs := closed.Segments()
	if len(segs) != 3 {
		t.Fatalf("closed polyline: %d segments, want 3", len(segs))
	}
	last := segs[2]
	if last[0] != verts[2] || last[1] != verts[0] {
		t.Errorf("closing segment = %v, want %v -> %v", last, verts[2], verts[0])
	}

	if (PolylineData{Vertices: verts[:1]}).Segments() != nil {
		t.Error("degenerate polyline produced segments")
	}
}

func TestBounds_PerKind(t *testing.T) {
	check := func(name string, d EntityData, minX, minY, maxX, maxY float64) {
		t.Helper()
		min, max := Bounds(d)
		if min.X != minX || min.Y != minY || max.X != maxX || max.Y != maxY {
			t.Errorf("%s: bounds (%v,%v)-(%v,%v), want (%v,%v)-(%v,%v)",
				name, min.X, min.Y, max.X, max.Y, minX, minY, maxX, maxY)
		}
	}

	check("point", PointData{Position: geom.Pt(3, 4)}, 3, 4, 3, 4)
	check("line", LineData{Start: geom.Pt(10, 0), End: geom.Pt(0, 10)}, 0, 0, 10, 10)
	check("circle", CircleData{Center: geom.Pt(1, 1), Radius: 2}, -1, -1, 3, 3)
	check("arc", ArcData{Center: geom.Pt(0, 0), Radius: 5, StartDeg: 0, EndDeg: 90}, -5, -5, 5, 5)
	check("ellipse", EllipseData{Center: geom.Pt(0, 0), MajorRadius: 4, MinorRadius: 2}, -4, -4, 4, 4)
	check("polyline", PolylineData{Vertices: []v3.Vec{geom.Pt(-1, 2), geom.Pt(5, -3)}}, -1, -3, 5, 2)
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		d    EntityData
		want EntityKind
	}{
		{PointData{}, KindPoint},
		{LineData{}, KindLine},
		{PolylineData{}, KindPolyline},
		{CircleData{}, KindCircle},
		{ArcData{}, KindArc},
		{EllipseData{}, KindEllipse},
	}
	for _, c := range cases {
		if got := KindOf(c.d); got != c.want {
			t.Errorf("KindOf(%T) = %v, want %v", c.d, got, c.want)
		}
	}
}
