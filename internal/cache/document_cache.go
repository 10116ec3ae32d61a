// Package cache holds the console's local copies of remote documents.
package cache

import "sync"

// DocumentCache keeps the last known state of a remote document list.
// Entries changed locally through Update are flagged dirty until the next
// authoritative Replace or Put overwrites them.
type DocumentCache[T any] struct {
	mu    sync.RWMutex
	idOf  func(T) int64
	order []int64
	items map[int64]T
	dirty map[int64]struct{}
}

// NewDocumentCache creates an empty cache keyed by idOf.
func NewDocumentCache[T any](idOf func(T) int64) *DocumentCache[T] {
	return &DocumentCache[T]{
		idOf:  idOf,
		items: make(map[int64]T),
		dirty: make(map[int64]struct{}),
	}
}

// Replace swaps the whole cache for a freshly fetched list, keeping its order.
func (c *DocumentCache[T]) Replace(docs []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order = make([]int64, 0, len(docs))
	c.items = make(map[int64]T, len(docs))
	c.dirty = make(map[int64]struct{})
	for _, d := range docs {
		id := c.idOf(d)
		if _, seen := c.items[id]; !seen {
			c.order = append(c.order, id)
		}
		c.items[id] = d
	}
}

// Put stores an authoritative copy of a single document.
func (c *DocumentCache[T]) Put(doc T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.idOf(doc)
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = doc
	delete(c.dirty, id)
}

// Update applies mutate to the cached copy of id and marks it dirty. It
// returns false when id is not cached.
func (c *DocumentCache[T]) Update(id int64, mutate func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	mutate(&doc)
	c.items[id] = doc
	c.dirty[id] = struct{}{}
	return doc, true
}

// Get returns the cached copy of id.
func (c *DocumentCache[T]) Get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.items[id]
	return doc, ok
}

// List returns the cached documents in list order.
func (c *DocumentCache[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Remove drops id from the cache.
func (c *DocumentCache[T]) Remove(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	delete(c.dirty, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Dirty reports whether the cached copy of id carries a local, unconfirmed change.
func (c *DocumentCache[T]) Dirty(id int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.dirty[id]
	return ok
}
