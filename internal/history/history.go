// Package history implements a bounded, deduplicating, recency-ordered cache.
package history

// Cache keeps at most capacity entries, most recent first.
// No two entries share a key.
type Cache[T any, K comparable] struct {
	entries  []T
	capacity int
	key      func(T) K
}

// New creates an empty cache. Capacity below 1 is treated as 1.
func New[T any, K comparable](capacity int, key func(T) K) *Cache[T, K] {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache[T, K]{
		entries:  make([]T, 0, capacity),
		capacity: capacity,
		key:      key,
	}
}

// Add moves item to the front, replacing any entry with the same key.
// Returns the entry evicted from the tail, if the cache overflowed.
func (c *Cache[T, K]) Add(item T) (evicted T, ok bool) {
	c.remove(c.key(item))

	c.entries = append(c.entries, item)
	copy(c.entries[1:], c.entries)
	c.entries[0] = item

	if len(c.entries) > c.capacity {
		evicted = c.entries[c.capacity]
		var zero T
		c.entries[c.capacity] = zero
		c.entries = c.entries[:c.capacity]
		return evicted, true
	}
	return evicted, false
}

// Remove deletes the entry with key k. Returns false if none existed.
func (c *Cache[T, K]) Remove(k K) bool {
	return c.remove(k)
}

func (c *Cache[T, K]) remove(k K) bool {
	i := c.indexOf(k)
	if i < 0 {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return true
}

func (c *Cache[T, K]) indexOf(k K) int {
	for i, e := range c.entries {
		if c.key(e) == k {
			return i
		}
	}
	return -1
}

// Contains reports whether an entry with key k exists.
func (c *Cache[T, K]) Contains(k K) bool {
	return c.indexOf(k) >= 0
}

// Clear removes all entries.
func (c *Cache[T, K]) Clear() {
	clear(c.entries)
	c.entries = c.entries[:0]
}

// All returns a copy of the entries, most recent first.
func (c *Cache[T, K]) All() []T {
	result := make([]T, len(c.entries))
	copy(result, c.entries)
	return result
}

// Restore replaces the contents with items, given most recent first.
// Later duplicates of a key are dropped and the result is trimmed to capacity.
func (c *Cache[T, K]) Restore(items []T) {
	c.Clear()
	seen := make(map[K]struct{}, len(items))
	for _, item := range items {
		if len(c.entries) == c.capacity {
			break
		}
		k := c.key(item)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		c.entries = append(c.entries, item)
	}
}

// Len returns the number of entries.
func (c *Cache[T, K]) Len() int {
	return len(c.entries)
}

// Cap returns the capacity.
func (c *Cache[T, K]) Cap() int {
	return c.capacity
}
