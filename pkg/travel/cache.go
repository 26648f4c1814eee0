package travel

import (
	"fmt"
	"sync"

	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

// Cache memoizes route results keyed by (current, destination, map
// version). On expected map sizes (tens to low hundreds of nodes) the
// search is cheap enough to run inline per event tick; the cache exists
// for hosts with much larger graphs, where it must be tried before any
// concurrency is considered. Safe for concurrent use: the route handler
// shares one cache across requests.
type Cache struct {
	mu      sync.Mutex
	version uint64
	routes  map[string][]Step
}

// NewCache returns an empty route cache.
func NewCache() *Cache {
	return &Cache{routes: make(map[string][]Step)}
}

// FindPath returns the cached route for the pair, computing and storing
// it on a miss. A version change invalidates everything cached.
func (c *Cache) FindPath(data *worldmap.MapData, currentID, destinationID string) []Step {
	v := data.Version()

	c.mu.Lock()
	defer c.mu.Unlock()
	if v != c.version {
		c.version = v
		c.routes = make(map[string][]Step)
	}
	key := fmt.Sprintf("%s|%s", currentID, destinationID)
	if steps, ok := c.routes[key]; ok {
		return steps
	}
	steps := FindPath(data, currentID, destinationID)
	c.routes[key] = steps
	return steps
}
