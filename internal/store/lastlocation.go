package store

import "sync"

// LocationTracker holds each card type's most recent non-fraudulent location.
// This is deliberately process-local state: it resets on restart, and a
// fraudulent location never becomes the new baseline because the engine only
// writes after a clean verdict.
type LocationTracker struct {
	mu        sync.RWMutex
	locations map[string]string
}

// NewLocationTracker creates an empty tracker.
func NewLocationTracker() *LocationTracker {
	return &LocationTracker{locations: make(map[string]string)}
}

// Get returns the last accepted location for a card type, if any.
func (t *LocationTracker) Get(cardType string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	loc, ok := t.locations[cardType]
	return loc, ok
}

// Set records the card type's latest accepted location, overwriting any
// previous value.
func (t *LocationTracker) Set(cardType, location string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.locations[cardType] = location
}
