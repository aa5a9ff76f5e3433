package anim

import (
	"math"
	"sync"

	"starflow/internal/flowpath"
)

// bucketScale quantizes the phase to 0.1 rad buckets. Coarser buckets mean
// fewer regenerations but visibly steppier waves; 0.1 rad at the default
// step recomputes roughly every fifth frame.
const bucketScale = 10

type pathKey struct {
	id     string
	bucket int
}

// PathCache memoizes generated paths by (flow id, phase bucket) so a frame
// tick only recomputes a wave path when its phase crosses into a new bucket.
// Safe for concurrent use.
type PathCache struct {
	mu    sync.Mutex
	paths map[pathKey][]flowpath.PathPoint
}

func NewPathCache() *PathCache {
	return &PathCache{paths: make(map[pathKey][]flowpath.PathPoint)}
}

// PhaseBucket returns the cache bucket for a phase offset.
func PhaseBucket(offset float64) int {
	return int(math.Round(offset * bucketScale))
}

// GetOrCompute returns the cached path for the flow at this phase bucket,
// computing and storing it on a miss. compute must be deterministic for the
// given id and bucket; Generate guarantees that for a fixed phase.
func (c *PathCache) GetOrCompute(id string, offset float64, compute func() []flowpath.PathPoint) []flowpath.PathPoint {
	key := pathKey{id: id, bucket: PhaseBucket(offset)}

	c.mu.Lock()
	if path, ok := c.paths[key]; ok {
		c.mu.Unlock()
		return path
	}
	c.mu.Unlock()

	path := compute()

	c.mu.Lock()
	c.paths[key] = path
	c.mu.Unlock()
	return path
}

// Invalidate drops every cached bucket for a flow. Call it when the flow's
// endpoints or style change.
func (c *PathCache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.paths {
		if key.id == id {
			delete(c.paths, key)
		}
	}
}

// Clear empties the cache.
func (c *PathCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = make(map[pathKey][]flowpath.PathPoint)
}

// Len returns the number of cached paths.
func (c *PathCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.paths)
}
