package layout

import (
	"container/list"
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// DefaultCacheSize is the number of widths kept by Memoize when maxSize is 0.
const DefaultCacheSize = 4096

// MeasureCache is a Measurer that remembers the widths returned by another
// Measurer with LRU eviction.
type MeasureCache struct {
	mu        sync.Mutex
	measurer  Measurer
	entries   map[cacheKey]*list.Element
	order     *list.List // front = most recently used
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheKey struct {
	hash uint64
	size uint32
}

type cacheEntry struct {
	key   cacheKey
	text  string // Full text to reject hash collisions
	width float64
}

// Memoize wraps m with a width cache holding up to maxSize entries.
func Memoize(m Measurer, maxSize int) *MeasureCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &MeasureCache{
		measurer: m,
		entries:  make(map[cacheKey]*list.Element),
		order:    list.New(),
		maxSize:  maxSize,
	}
}

// Measure returns the cached width for text at nominalSize, measuring it with
// the underlying measurer on a miss. Failed measurements are not cached.
func (c *MeasureCache) Measure(text string, nominalSize uint32) (float64, error) {
	key := cacheKey{hash: hashText(text), size: nominalSize}

	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*cacheEntry)
		if entry.text == text {
			c.order.MoveToFront(el)
			width := entry.width
			c.mu.Unlock()
			c.hits.Add(1)
			return width, nil
		}
	}
	c.mu.Unlock()

	c.misses.Add(1)

	width, err := c.measurer.Measure(text, nominalSize)
	if err != nil {
		return width, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.order.Remove(el)
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, text: text, width: width})
	c.evict()

	return width, nil
}

// evict drops least recently used entries until the cache fits maxSize.
// Must be called with the lock held.
func (c *MeasureCache) evict() {
	for len(c.entries) > c.maxSize {
		el := c.order.Back()
		if el == nil {
			return
		}
		c.order.Remove(el)
		delete(c.entries, el.Value.(*cacheEntry).key)
		c.evictions.Add(1)
	}
}

// Invalidate clears all cached widths.
func (c *MeasureCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*list.Element)
	c.order.Init()
}

// Size returns the number of cached widths.
func (c *MeasureCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *MeasureCache) Stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Size:      c.Size(),
		MaxSize:   c.maxSize,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   hitRate,
	}
}

// ResetStats resets the cache statistics counters.
func (c *MeasureCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Size      int     // Current number of entries
	MaxSize   int     // Maximum entries allowed
	Hits      uint64  // Number of cache hits
	Misses    uint64  // Number of cache misses
	Evictions uint64  // Number of evicted entries
	HitRate   float64 // Hit rate (0.0 - 1.0)
}

func hashText(text string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return h.Sum64()
}
