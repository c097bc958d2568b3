// Package cache provides a generic sharded LRU cache used for shaped-run
// caching. Shaping a run is orders of magnitude more expensive than a
// cache probe, and the same runs (prompts, status lines, whitespace)
// recur every frame, so a small LRU in front of the shaper removes most
// shaping work from the steady state.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// Default configuration constants.
const (
	// DefaultShardCount is the number of shards for reduced lock contention.
	// Must be a power of 2 for fast modulo via bitwise AND.
	DefaultShardCount = 16

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 256

	// shardMask is used for fast shard selection (DefaultShardCount - 1).
	shardMask = DefaultShardCount - 1
)

// Hasher is a function that computes a hash for a key.
// Used by ShardedCache for shard selection.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of a string key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Uint64Hasher returns the key itself as the hash (identity hash).
func Uint64Hasher(u uint64) uint64 {
	return u
}

// Mix folds an extra word into a hash, FNV-1a style. Callers with
// composite keys (e.g. a font face pointer plus a text hash) use it to
// combine the parts without allocating.
func Mix(h, word uint64) uint64 {
	const prime = 1099511628211
	for i := 0; i < 8; i++ {
		h ^= word & 0xff
		h *= prime
		word >>= 8
	}
	return h
}

// ShardedCache is a thread-safe, sharded LRU cache.
//
// Sixteen shards keep lock contention low when shaping is parallelized;
// eviction is LRU per shard; statistics are atomic so reading them never
// blocks a shaping goroutine.
type ShardedCache[K comparable, V any] struct {
	shards   [DefaultShardCount]*cacheShard[K, V]
	hasher   Hasher[K]
	capacity int // Per-shard capacity

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// cacheShard is a single shard of the cache.
// Each shard has its own mutex for reduced contention.
type cacheShard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*cacheEntry[K, V]
	lru     *lruList[K]
}

// cacheEntry holds a cached value with its LRU node.
type cacheEntry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// NewSharded creates a new sharded cache with the specified capacity per
// shard. Total capacity is approximately capacity * DefaultShardCount.
//
// The hasher function is used to compute hash values for shard
// selection. If capacity <= 0, DefaultCapacity is used.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *ShardedCache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	c := &ShardedCache[K, V]{
		hasher:   hasher,
		capacity: capacity,
	}

	for i := range c.shards {
		c.shards[i] = &cacheShard[K, V]{
			entries: make(map[K]*cacheEntry[K, V]),
			lru:     newLRUList[K](),
		}
	}

	return c
}

// getShard returns the shard for a given key.
// Uses bitwise AND for fast modulo (power-of-2 shard count).
func (c *ShardedCache[K, V]) getShard(key K) *cacheShard[K, V] {
	hash := c.hasher(key)
	return c.shards[hash&shardMask]
}

// Get retrieves a cached value by key.
// Returns (value, true) if found, (zero, false) otherwise.
// On a hit the entry moves to the front of its shard's LRU list.
func (c *ShardedCache[K, V]) Get(key K) (V, bool) {
	shard := c.getShard(key)

	shard.mu.Lock()
	entry, ok := shard.entries[key]
	if !ok {
		shard.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	shard.lru.MoveToFront(entry.node)
	value := entry.value
	shard.mu.Unlock()

	c.hits.Add(1)
	return value, true
}

// Set stores a value in the cache.
// If the shard exceeds capacity after insertion, the oldest entries are
// evicted. The value is stored as-is (not copied); callers should not
// modify it after caching.
func (c *ShardedCache[K, V]) Set(key K, value V) {
	shard := c.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if existing, ok := shard.entries[key]; ok {
		existing.value = value
		shard.lru.MoveToFront(existing.node)
		return
	}

	for shard.lru.Len() >= c.capacity {
		oldest, ok := shard.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(shard.entries, oldest)
		c.evictions.Add(1)
	}

	node := shard.lru.PushFront(key)
	shard.entries[key] = &cacheEntry[K, V]{value: value, node: node}
}

// GetOrCreate returns a cached value or creates it using the provided
// function. The create function is called with the shard lock held to
// prevent duplicate computation; keep it fast.
func (c *ShardedCache[K, V]) GetOrCreate(key K, create func() V) V {
	shard := c.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if entry, ok := shard.entries[key]; ok {
		shard.lru.MoveToFront(entry.node)
		c.hits.Add(1)
		return entry.value
	}

	c.misses.Add(1)
	value := create()

	for shard.lru.Len() >= c.capacity {
		oldest, ok := shard.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(shard.entries, oldest)
		c.evictions.Add(1)
	}

	node := shard.lru.PushFront(key)
	shard.entries[key] = &cacheEntry[K, V]{value: value, node: node}
	return value
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *ShardedCache[K, V]) Delete(key K) bool {
	shard := c.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry, ok := shard.entries[key]
	if !ok {
		return false
	}

	shard.lru.Remove(entry.node)
	delete(shard.entries, key)
	return true
}

// Clear removes all entries from the cache.
func (c *ShardedCache[K, V]) Clear() {
	for _, shard := range c.shards {
		shard.mu.Lock()
		shard.entries = make(map[K]*cacheEntry[K, V])
		shard.lru.Clear()
		shard.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *ShardedCache[K, V]) Len() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.RLock()
		total += len(shard.entries)
		shard.mu.RUnlock()
	}
	return total
}

// Stats holds cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
}

// Stats returns current cache statistics.
// This operation is mostly lock-free (atomic counters).
func (c *ShardedCache[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Evictions: c.evictions.Load(),
	}
}
