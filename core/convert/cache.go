package convert

import (
	"sync"
	"time"

	"github.com/hashgraph-online/conversational-agent-sub001/core/entity"
)

// DefaultDetectionTTL bounds how long a positive format detection stays valid.
const DefaultDetectionTTL = 5 * time.Minute

// detectionCache stores positive format detections keyed by the raw entity
// string. Entries expire after their TTL and are evicted lazily on the next
// lookup; there is no background sweep. Unresolved detections are never
// stored, so a miss always re-probes.
//
// The clock is injectable for deterministic TTL tests.
type detectionCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	format   entity.Format
	storedAt time.Time
	ttl      time.Duration
}

func newDetectionCache(ttl time.Duration, now func() time.Time) *detectionCache {
	if ttl <= 0 {
		ttl = DefaultDetectionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &detectionCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// get returns the cached format for key. An expired entry is removed and
// reported as absent.
func (c *detectionCache) get(key string) (entity.Format, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.storedAt) >= e.ttl {
		delete(c.entries, key)
		return "", false
	}
	return e.format, true
}

// put stores a positive detection with the default TTL. FormatAny is never a
// positive detection and is silently ignored.
func (c *detectionCache) put(key string, format entity.Format) {
	if format == entity.FormatAny || !format.IsValid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{format: format, storedAt: c.now(), ttl: c.ttl}
}

func (c *detectionCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

func (c *detectionCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
