package snap

import "sort"

// eligible applies the arbiter's first two steps: the aperture test in
// screen space, the tolerance test in world space, and the restriction
// to an active override or filter.
func eligible(cands []Candidate, st Settings, aperturePx float64, override Kind, filter map[Kind]bool) []Candidate {
	apertureWorld := aperturePx * st.PixelSize
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Distance > apertureWorld || c.Distance > st.Tolerance {
			continue
		}
		if override != KindNone && c.Kind != override {
			continue
		}
		if filter != nil && !filter[c.Kind] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// less orders candidates by priority rank, then distance, then source
// entity id, then kind. The id/kind keys make exact ties deterministic
// so identical queries return identical results.
func less(st Settings, a, b Candidate) bool {
	ra, rb := st.Priority(a.Kind), st.Priority(b.Kind)
	if ra != rb {
		return ra < rb
	}
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	ia, ib := a.primaryEntity(), b.primaryEntity()
	if ia != ib {
		return ia < ib
	}
	return a.Kind < b.Kind
}

// arbitrate reduces eligible candidates to the single authoritative
// result. Within the best occupied priority rank the closest candidate
// wins. No survivors means a valid "no snap" result.
func arbitrate(cands []Candidate, st Settings) Result {
	if len(cands) == 0 {
		return Result{}
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if less(st, c, best) {
			best = c
		}
	}
	return Result{Valid: true, Candidate: best}
}

// rankSort orders a candidate list the way the UI previews it: best
// rank first, then nearest.
func rankSort(cands []Candidate, st Settings) {
	sort.Slice(cands, func(i, j int) bool { return less(st, cands[i], cands[j]) })
}
