package tableregistry

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// OccupancyCache keeps the last known state of every table.
type OccupancyCache struct {
	mu     sync.RWMutex
	tables map[uuid.UUID]restaurant.Table
}

func NewOccupancyCache() *OccupancyCache {
	return &OccupancyCache{tables: make(map[uuid.UUID]restaurant.Table)}
}

// Replace swaps the cache contents for a fresh listing.
func (c *OccupancyCache) Replace(tables []restaurant.Table) {
	fresh := make(map[uuid.UUID]restaurant.Table, len(tables))
	for _, t := range tables {
		fresh[t.ID] = t
	}

	c.mu.Lock()
	c.tables = fresh
	c.mu.Unlock()
}

func (c *OccupancyCache) Set(table restaurant.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[table.ID] = table
}

func (c *OccupancyCache) Get(id uuid.UUID) (restaurant.Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[id]
	return t, ok
}

// ApplyOccupancy updates one table. Unknown tables are added with what the
// event carried; the next listing fills in the rest.
func (c *OccupancyCache) ApplyOccupancy(id uuid.UUID, number int, state string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.tables[id]
	if !ok {
		t = restaurant.Table{ID: id, Number: number}
	}
	t.Occupancy = state
	c.tables[id] = t
}

// All returns the tables sorted by number.
func (c *OccupancyCache) All() []restaurant.Table {
	c.mu.RLock()
	result := make([]restaurant.Table, 0, len(c.tables))
	for _, t := range c.tables {
		result = append(result, t)
	}
	c.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})
	return result
}
