package snap

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/plumbline/pkg/geom"
)

// TrackingState is the tracking lifecycle: Idle until a base point is
// set or a tracking point acquired, back to Idle when cleared.
type TrackingState int

const (
	TrackingIdle TrackingState = iota
	TrackingActive
)

func (s TrackingState) String() string {
	if s == TrackingActive {
		return "tracking"
	}
	return "idle"
}

func dirOfAngle(deg float64) v3.Vec {
	rad := deg * math.Pi / 180
	return v3.Vec{X: math.Cos(rad), Y: math.Sin(rad)}
}

// resolvePolar projects the cursor direction from the base point onto
// the nearest configured polar angle. Inside the angular tolerance it
// yields a candidate at the cursor's distance along that angle plus the
// alignment vector for preview.
func (g generator) resolvePolar(base, cursor v3.Vec, st Settings) (Candidate, TrackingVector, bool) {
	dist := geom.Dist(base, cursor)
	if dist <= g.solver.Eps {
		return Candidate{}, TrackingVector{}, false
	}
	cursorAng := geom.AngleDeg(base, cursor)

	best := 0.0
	bestDiff := math.Inf(1)
	for _, a := range st.polarAngleSet() {
		if d := geom.AngleDiffDeg(cursorAng, a); d < bestDiff {
			best, bestDiff = a, d
		}
	}
	if bestDiff > st.PolarToleranceDeg {
		return Candidate{}, TrackingVector{}, false
	}
	p := geom.PolarPoint(base, best, dist)
	cand := g.candidate(KindPolarTracking, p, cursor)
	vec := TrackingVector{
		Origin:    base,
		Direction: dirOfAngle(best),
		AngleDeg:  best,
		Source:    TrackPolar,
	}
	return cand, vec, true
}

// trackLine is one object-tracking alignment line.
type trackLine struct {
	origin   v3.Vec
	angleDeg float64
	foot     v3.Vec // cursor projected onto the line
	dist     float64
}

// resolveObject evaluates alignment lines at the configured angles
// through every acquired tracking point. When two or more lines pass
// within tol of the cursor their mutual intersection is preferred over a
// single-line projection.
func (g generator) resolveObject(points []v3.Vec, cursor v3.Vec, st Settings, tol float64) (Candidate, []TrackingVector, bool) {
	// Opposite angles describe the same line; fold to [0,180) and dedupe.
	seen := make(map[float64]bool)
	var angles []float64
	for _, a := range st.polarAngleSet() {
		a = math.Mod(a, 180)
		if !seen[a] {
			seen[a] = true
			angles = append(angles, a)
		}
	}

	var active []trackLine
	for _, origin := range points {
		for _, a := range angles {
			through := origin.Add(dirOfAngle(a))
			foot, _, ok := g.solver.ProjectOnLine(cursor, origin, through, geom.DomainInfinite)
			if !ok {
				continue
			}
			d := geom.Dist(foot, cursor)
			if d <= tol {
				active = append(active, trackLine{origin: origin, angleDeg: a, foot: foot, dist: d})
			}
		}
	}
	if len(active) == 0 {
		return Candidate{}, nil, false
	}

	vectors := make([]TrackingVector, 0, len(active))
	for _, l := range active {
		vectors = append(vectors, TrackingVector{
			Origin:    l.origin,
			Direction: dirOfAngle(l.angleDeg),
			AngleDeg:  l.angleDeg,
			Source:    TrackObject,
		})
	}

	// Mutual intersection of two simultaneous tracking lines wins.
	bestP := v3.Vec{}
	bestD := math.Inf(1)
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			li, lj := active[i], active[j]
			p, ok := g.solver.LineLine(
				li.origin, li.origin.Add(dirOfAngle(li.angleDeg)),
				lj.origin, lj.origin.Add(dirOfAngle(lj.angleDeg)),
				geom.DomainInfinite, geom.DomainInfinite)
			if !ok {
				continue
			}
			if d := geom.Dist(p, cursor); d <= tol && d < bestD {
				bestP, bestD = p, d
			}
		}
	}
	if !math.IsInf(bestD, 1) {
		return g.candidate(KindObjectTracking, bestP, cursor), vectors, true
	}

	// Single-line projection: nearest active line.
	nearest := active[0]
	for _, l := range active[1:] {
		if l.dist < nearest.dist {
			nearest = l
		}
	}
	return g.candidate(KindObjectTracking, nearest.foot, cursor), vectors, true
}
