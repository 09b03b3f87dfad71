package snap

import (
	"log/slog"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/plumbline/pkg/geom"
	"github.com/chazu/plumbline/pkg/scene"
)

// Events are optional observer callbacks. Callers that prefer polling
// the Resolve return value leave them nil. Callbacks fire synchronously
// on the querying goroutine.
type Events struct {
	OnSnapFound          func(Result)
	OnSnapLost           func()
	OnTrackingPointAdded func(v3.Vec)
	OnSettingsChanged    func()
}

// Snapper is the object-snap engine. It consumes geometry through an
// EntityProvider and never mutates it.
//
// A Snapper is not internally locked: queries and entity-change
// notifications are expected on a single goroutine, the interactive
// input path. Ports that split mutation and querying across goroutines
// must wrap the Snapper in a read-write lock.
type Snapper struct {
	provider EntityProvider
	logger   *slog.Logger
	events   Events

	settings Settings
	gen      generator
	cache    *Cache

	override Kind
	filter   map[Kind]bool

	base        *v3.Vec
	trackPoints []v3.Vec

	lastValid   bool
	lastVectors []TrackingVector
}

// New creates a Snapper over the provider with default settings. A nil
// logger falls back to slog.Default().
func New(provider EntityProvider, logger *slog.Logger) *Snapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Snapper{
		provider: provider,
		logger:   logger,
		settings: DefaultSettings(),
		gen:      generator{solver: geom.NewSolver()},
		cache:    NewCache(provider, logger),
	}
}

// SetEvents installs the observer callbacks.
func (s *Snapper) SetEvents(ev Events) {
	s.events = ev
}

// Configure installs new settings. Invalid fields are clamped to the
// previous configuration and logged; the engine never ends up in an
// unusable state.
func (s *Snapper) Configure(st Settings) {
	s.settings = st.clamp(s.settings, s.logger)
	if s.events.OnSettingsChanged != nil {
		s.events.OnSettingsChanged()
	}
}

// Settings returns a copy of the active settings.
func (s *Snapper) Settings() Settings {
	return s.settings.clone()
}

// SetEpsilon adjusts the shared solver epsilon used for parallelism,
// degeneracy, and tangency classification.
func (s *Snapper) SetEpsilon(eps float64) {
	if eps > 0 {
		s.gen.solver.Eps = eps
	}
}

// SetOverride restricts the next queries to a single snap kind, as a
// temporary keyboard override does.
func (s *Snapper) SetOverride(k Kind) {
	s.override = k
}

// ClearOverride removes the temporary override.
func (s *Snapper) ClearOverride() {
	s.override = KindNone
}

// Override returns the active temporary override, KindNone when unset.
func (s *Snapper) Override() Kind {
	return s.override
}

// SetFilter restricts queries to the given kinds until cleared.
func (s *Snapper) SetFilter(kinds ...Kind) {
	s.filter = make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		s.filter[k] = true
	}
}

// ClearFilter removes the snap filter.
func (s *Snapper) ClearFilter() {
	s.filter = nil
}

// SetBasePoint sets the reference point of the active command. It is
// the origin for polar tracking and for the tangent, perpendicular, and
// parallel snaps.
func (s *Snapper) SetBasePoint(p v3.Vec) {
	s.base = &p
}

// ClearBasePoint ends the active command's reference.
func (s *Snapper) ClearBasePoint() {
	s.base = nil
}

// AddTrackingPoint acquires a point for object tracking.
func (s *Snapper) AddTrackingPoint(p v3.Vec) {
	s.trackPoints = append(s.trackPoints, p)
	if s.events.OnTrackingPointAdded != nil {
		s.events.OnTrackingPointAdded(p)
	}
}

// ClearTrackingPoints drops all acquired tracking points.
func (s *Snapper) ClearTrackingPoints() {
	s.trackPoints = nil
}

// TrackingPoints returns a copy of the acquired tracking points.
func (s *Snapper) TrackingPoints() []v3.Vec {
	return append([]v3.Vec(nil), s.trackPoints...)
}

// TrackingState reports whether tracking input is being evaluated.
func (s *Snapper) TrackingState() TrackingState {
	if s.base != nil || len(s.trackPoints) > 0 {
		return TrackingActive
	}
	return TrackingIdle
}

// TrackingVectors returns the alignment lines evaluated by the last
// query, for UI preview.
func (s *Snapper) TrackingVectors() []TrackingVector {
	return append([]TrackingVector(nil), s.lastVectors...)
}

// NotifyEntityAdded indexes a newly created entity.
func (s *Snapper) NotifyEntityAdded(id scene.EntityID) {
	s.cache.Add(id)
}

// NotifyEntityRemoved drops a deleted entity from the index.
func (s *Snapper) NotifyEntityRemoved(id scene.EntityID) {
	s.cache.Remove(id)
}

// NotifyEntityModified reindexes an entity after a geometry change.
func (s *Snapper) NotifyEntityModified(id scene.EntityID) {
	s.cache.Modify(id)
}

// EntityChanged lets a Snapper subscribe directly to a scene.Store.
func (s *Snapper) EntityChanged(id scene.EntityID, change scene.ChangeKind) {
	switch change {
	case scene.ChangeAdded:
		s.NotifyEntityAdded(id)
	case scene.ChangeRemoved:
		s.NotifyEntityRemoved(id)
	case scene.ChangeModified:
		s.NotifyEntityModified(id)
	}
}

// collect generates the full unfiltered candidate set for a query and
// refreshes the preview tracking vectors.
func (s *Snapper) collect(cursor v3.Vec, aperturePx float64) []Candidate {
	st := s.settings
	apertureWorld := aperturePx * st.PixelSize
	s.lastVectors = nil

	ids := s.cache.Near(cursor, apertureWorld)
	entities := make([]scene.Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.provider.Entity(id); ok {
			entities = append(entities, e)
		}
	}

	var cands []Candidate
	for _, e := range entities {
		cands = append(cands, s.gen.entityCandidates(e, cursor, st, s.base)...)
	}
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			cands = append(cands, s.gen.pairCandidates(entities[i], entities[j], cursor, st)...)
		}
	}

	if st.PolarTracking && s.base != nil {
		if c, vec, ok := s.gen.resolvePolar(*s.base, cursor, st); ok {
			cands = append(cands, c)
			s.lastVectors = append(s.lastVectors, vec)
		}
	}
	if st.ObjectTracking && len(s.trackPoints) > 0 {
		if c, vecs, ok := s.gen.resolveObject(s.trackPoints, cursor, st, apertureWorld); ok {
			cands = append(cands, c)
			s.lastVectors = append(s.lastVectors, vecs...)
		}
	}
	return cands
}

// Resolve answers a cursor-move query with the single best snap. A
// non-positive aperture falls back to the configured default. An
// invalid result is the normal "nothing nearby" outcome.
func (s *Snapper) Resolve(cursor v3.Vec, aperturePx float64) Result {
	if aperturePx <= 0 {
		aperturePx = s.settings.Aperture
	}
	if !s.settings.Enabled {
		s.lastVectors = nil
		s.transition(Result{})
		return Result{}
	}
	cands := eligible(s.collect(cursor, aperturePx), s.settings, aperturePx, s.override, s.filter)
	res := arbitrate(cands, s.settings)
	s.transition(res)
	return res
}

// ResolveAll returns every eligible candidate ordered best-first, for
// UI markers and preview. It fires no snap events.
func (s *Snapper) ResolveAll(cursor v3.Vec, aperturePx float64) []Candidate {
	if aperturePx <= 0 {
		aperturePx = s.settings.Aperture
	}
	if !s.settings.Enabled {
		s.lastVectors = nil
		return nil
	}
	cands := eligible(s.collect(cursor, aperturePx), s.settings, aperturePx, s.override, s.filter)
	rankSort(cands, s.settings)
	return cands
}

// transition fires the snapFound/snapLost pair on state changes: found
// on every valid result, lost once when a previously valid snap goes
// away.
func (s *Snapper) transition(res Result) {
	if res.Valid {
		s.lastValid = true
		if s.events.OnSnapFound != nil {
			s.events.OnSnapFound(res)
		}
		return
	}
	if s.lastValid && s.events.OnSnapLost != nil {
		s.events.OnSnapLost()
	}
	s.lastValid = false
}
