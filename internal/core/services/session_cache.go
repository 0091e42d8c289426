package services

import "sync"

// ownerSnapshot is one owner's in-memory copy of their store collection.
// fetchGen is the generation of the most recently issued fetch; a completing
// fetch carrying an older generation has been superseded and is discarded.
type ownerSnapshot[T any] struct {
	records  []T
	held     bool
	fetchGen uint64
}

// sessionCache holds the authoritative in-memory collections per owner.
// Mutations are applied only after the record store confirms them; readers
// get copies, never the backing slice.
type sessionCache[T any] struct {
	mu      sync.Mutex
	byOwner map[string]*ownerSnapshot[T]
}

func newSessionCache[T any]() *sessionCache[T] {
	return &sessionCache[T]{byOwner: make(map[string]*ownerSnapshot[T])}
}

func (c *sessionCache[T]) ownerLocked(owner string) *ownerSnapshot[T] {
	snap, ok := c.byOwner[owner]
	if !ok {
		snap = &ownerSnapshot[T]{}
		c.byOwner[owner] = snap
	}
	return snap
}

// beginFetch registers a new fetch and returns its generation.
func (c *sessionCache[T]) beginFetch(owner string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.ownerLocked(owner)
	snap.fetchGen++
	return snap.fetchGen
}

// completeFetch replaces the owner's collection with the fetched records.
// It reports false, leaving the collection untouched, when a newer fetch has
// been issued since gen was handed out.
func (c *sessionCache[T]) completeFetch(owner string, gen uint64, records []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.ownerLocked(owner)
	if gen != snap.fetchGen {
		return false
	}
	snap.records = append([]T(nil), records...)
	snap.held = true
	return true
}

// prepend inserts a newly created record at the head of the collection.
func (c *sessionCache[T]) prepend(owner string, record T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.ownerLocked(owner)
	snap.records = append([]T{record}, snap.records...)
	snap.held = true
}

// replaceWhere swaps the first record matching the predicate in place.
func (c *sessionCache[T]) replaceWhere(owner string, match func(T) bool, record T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.ownerLocked(owner)
	for i := range snap.records {
		if match(snap.records[i]) {
			snap.records[i] = record
			return
		}
	}
}

// removeWhere drops every record matching the predicate.
func (c *sessionCache[T]) removeWhere(owner string, match func(T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.ownerLocked(owner)
	kept := snap.records[:0]
	for _, r := range snap.records {
		if !match(r) {
			kept = append(kept, r)
		}
	}
	snap.records = kept
}

// snapshot returns a copy of the owner's collection and whether one is held.
func (c *sessionCache[T]) snapshot(owner string) ([]T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap, ok := c.byOwner[owner]
	if !ok || !snap.held {
		return nil, false
	}
	return append([]T(nil), snap.records...), true
}
