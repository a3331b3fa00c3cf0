package scan

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// BlobCache memoizes blob scan results by content identity for the duration
// of one scan run. A blob that is byte-identical across branches or commits
// is read and scanned exactly once; concurrent requests for the same
// not-yet-cached identifier block behind a single computation. Errors are not
// cached, so a transient read failure does not poison an identifier.
type BlobCache struct {
	mu      sync.Mutex
	entries map[string]BlobFinding
	group   singleflight.Group
}

// NewBlobCache returns an empty cache scoped to one scan run.
func NewBlobCache() *BlobCache {
	return &BlobCache{entries: make(map[string]BlobFinding)}
}

// GetOrCompute returns the cached finding for id, invoking compute at most
// once per identifier across all callers.
func (c *BlobCache) GetOrCompute(id string, compute func() (BlobFinding, error)) (BlobFinding, error) {
	c.mu.Lock()
	if f, ok := c.entries[id]; ok {
		c.mu.Unlock()
		return f, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(id, func() (interface{}, error) {
		// Re-check under the flight: a previous flight for this id may
		// have completed between the fast-path check and Do.
		c.mu.Lock()
		if f, ok := c.entries[id]; ok {
			c.mu.Unlock()
			return f, nil
		}
		c.mu.Unlock()

		f, err := compute()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[id] = f
		c.mu.Unlock()
		return f, nil
	})
	if err != nil {
		return BlobFinding{}, err
	}
	return v.(BlobFinding), nil
}

// Len returns the number of cached identifiers.
func (c *BlobCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear evicts every entry. Called when a scan run completes; nothing
// persists across runs.
func (c *BlobCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]BlobFinding)
}
