package snap

import (
	"log/slog"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/dhconnelly/rtreego"

	"github.com/chazu/plumbline/pkg/scene"
)

// EntityProvider supplies the engine with read-only geometry. A
// *scene.Store satisfies it; so does any adapter over an external
// document model.
type EntityProvider interface {
	Entity(id scene.EntityID) (scene.Entity, bool)
	IDs() []scene.EntityID
}

// minExtent keeps degenerate bounding boxes (points, axis-aligned
// lines) insertable into the R-tree, which rejects zero-length sides.
const minExtent = 1e-6

// Cache is the spatial index that bounds candidate generation to
// entities near the cursor. It is maintained incrementally from entity
// change notifications; Rebuild is a fallback, never required for
// correctness.
type Cache struct {
	provider EntityProvider
	logger   *slog.Logger
	tree     *rtreego.Rtree
	entries  map[scene.EntityID]*cacheEntry
}

type cacheEntry struct {
	id   scene.EntityID
	rect rtreego.Rect
}

func (e *cacheEntry) Bounds() rtreego.Rect { return e.rect }

// NewCache builds a cache over the provider's current entities.
func NewCache(provider EntityProvider, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cache{provider: provider, logger: logger}
	c.Rebuild()
	return c
}

func entityRect(e scene.Entity) (rtreego.Rect, error) {
	min, max := scene.Bounds(e.Data)
	lengths := []float64{max.X - min.X, max.Y - min.Y}
	for i := range lengths {
		if lengths[i] < minExtent {
			lengths[i] = minExtent
		}
	}
	return rtreego.NewRect(rtreego.Point{min.X, min.Y}, lengths)
}

// Add indexes an entity. Adding an already-indexed id reindexes it.
func (c *Cache) Add(id scene.EntityID) {
	if _, ok := c.entries[id]; ok {
		c.Remove(id)
	}
	e, ok := c.provider.Entity(id)
	if !ok {
		return
	}
	rect, err := entityRect(e)
	if err != nil {
		c.logger.Warn("cache: unindexable entity bounds", "id", int(id), "err", err)
		return
	}
	entry := &cacheEntry{id: id, rect: rect}
	c.tree.Insert(entry)
	c.entries[id] = entry
}

// Remove drops an entity from the index.
func (c *Cache) Remove(id scene.EntityID) {
	entry, ok := c.entries[id]
	if !ok {
		return
	}
	c.tree.Delete(entry)
	delete(c.entries, id)
}

// Modify reindexes an entity after a geometry change.
func (c *Cache) Modify(id scene.EntityID) {
	c.Add(id)
}

// Rebuild reconstructs the index from scratch.
func (c *Cache) Rebuild() {
	c.tree = rtreego.NewTree(2, 25, 50)
	c.entries = make(map[scene.EntityID]*cacheEntry)
	for _, id := range c.provider.IDs() {
		c.Add(id)
	}
}

// Len returns the number of indexed entities.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Near returns ids of entities whose bounding box intersects the square
// of the given radius around p, ascending. Ids the provider can no
// longer resolve are dropped from the index on the spot: a stale entry
// means "no candidates from this entity", never a failure.
func (c *Cache) Near(p v3.Vec, radius float64) []scene.EntityID {
	if radius < minExtent {
		radius = minExtent
	}
	rect, err := rtreego.NewRect(
		rtreego.Point{p.X - radius, p.Y - radius},
		[]float64{2 * radius, 2 * radius})
	if err != nil {
		return nil
	}
	var ids []scene.EntityID
	var stale []scene.EntityID
	for _, sp := range c.tree.SearchIntersect(rect) {
		entry := sp.(*cacheEntry)
		if _, ok := c.provider.Entity(entry.id); !ok {
			stale = append(stale, entry.id)
			continue
		}
		ids = append(ids, entry.id)
	}
	for _, id := range stale {
		c.logger.Debug("cache: dropping stale entity", "id", int(id))
		c.Remove(id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
