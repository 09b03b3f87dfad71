package scene

import (
	"sort"
	"sync"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/plumbline/pkg/geom"
)

// ChangeKind describes what happened to an entity.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeRemoved
	ChangeModified
)

func (c ChangeKind) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	default:
		return "unknown"
	}
}

// ChangeListener receives entity change notifications. Listeners are
// called synchronously on the mutating goroutine, after the store has
// been updated.
type ChangeListener interface {
	EntityChanged(id EntityID, change ChangeKind)
}

// Store owns the drawing entities. It is safe for concurrent use; in the
// common single-threaded interactive setup the lock is uncontended.
type Store struct {
	mu        sync.RWMutex
	entities  map[EntityID]*Entity
	nextID    EntityID
	listeners []ChangeListener
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{entities: make(map[EntityID]*Entity)}
}

// Subscribe registers a change listener.
func (s *Store) Subscribe(l ChangeListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

func (s *Store) add(layer string, d EntityData) EntityID {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.entities[id] = &Entity{ID: id, Kind: KindOf(d), Layer: layer, Data: d}
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l.EntityChanged(id, ChangeAdded)
	}
	return id
}

// AddPoint adds a node entity.
func (s *Store) AddPoint(p v3.Vec) EntityID {
	return s.add("", PointData{Position: p})
}

// AddLine adds a line segment.
func (s *Store) AddLine(start, end v3.Vec) EntityID {
	return s.add("", LineData{Start: start, End: end})
}

// AddConstructionLine adds an unbounded construction line through two
// points.
func (s *Store) AddConstructionLine(a, b v3.Vec) EntityID {
	return s.add("", LineData{Start: a, End: b, Construction: true})
}

// AddPolyline adds a polyline; it needs at least two vertices.
func (s *Store) AddPolyline(vertices []v3.Vec, closed bool) EntityID {
	if len(vertices) < 2 {
		return InvalidEntity
	}
	vs := make([]v3.Vec, len(vertices))
	copy(vs, vertices)
	return s.add("", PolylineData{Vertices: vs, Closed: closed})
}

// AddCircle adds a circle.
func (s *Store) AddCircle(center v3.Vec, radius float64) EntityID {
	return s.add("", CircleData{Center: center, Radius: radius})
}

// AddArc adds a counter-clockwise arc. Angles are normalized to [0,360).
func (s *Store) AddArc(center v3.Vec, radius, startDeg, endDeg float64) EntityID {
	return s.add("", ArcData{
		Center:   center,
		Radius:   radius,
		StartDeg: geom.NormalizeAngleDeg(startDeg),
		EndDeg:   geom.NormalizeAngleDeg(endDeg),
	})
}

// AddEllipse adds an ellipse; major and minor are the semi-axis lengths.
func (s *Store) AddEllipse(center v3.Vec, major, minor, rotationDeg float64) EntityID {
	return s.add("", EllipseData{
		Center:      center,
		MajorRadius: major,
		MinorRadius: minor,
		RotationDeg: rotationDeg,
	})
}

// Remove deletes an entity. It reports whether the id existed.
func (s *Store) Remove(id EntityID) bool {
	s.mu.Lock()
	_, ok := s.entities[id]
	if ok {
		delete(s.entities, id)
	}
	listeners := s.listeners
	s.mu.Unlock()

	if ok {
		for _, l := range listeners {
			l.EntityChanged(id, ChangeRemoved)
		}
	}
	return ok
}

// Update replaces an entity's geometry. The kind may change with the
// payload. It reports whether the id existed.
func (s *Store) Update(id EntityID, d EntityData) bool {
	s.mu.Lock()
	e, ok := s.entities[id]
	if ok {
		e.Data = d
		e.Kind = KindOf(d)
	}
	listeners := s.listeners
	s.mu.Unlock()

	if ok {
		for _, l := range listeners {
			l.EntityChanged(id, ChangeModified)
		}
	}
	return ok
}

// SetLayer assigns an entity to a layer.
func (s *Store) SetLayer(id EntityID, layer string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entities[id]
	if ok {
		e.Layer = layer
	}
	return ok
}

// Entity returns a copy of the entity with the given id.
func (s *Store) Entity(id EntityID) (Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[id]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Len returns the number of entities in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// IDs returns all entity ids in ascending order.
func (s *Store) IDs() []EntityID {
	s.mu.RLock()
	ids := make([]EntityID, 0, len(s.entities))
	for id := range s.entities {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
