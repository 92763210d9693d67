// Package lock provides per-key mutual exclusion. The booking engine
// serializes availability checks per resource, ledger writes per payment and
// lifecycle transitions per reservation with one Keyed instance each keyspace
// shares.
package lock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Keyed hands out a mutex per key. Entries are reaped once the last holder
// releases, so the map does not grow with the number of distinct keys seen.
type Keyed struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewKeyed() *Keyed {
	return &Keyed{entries: make(map[string]*entry)}
}

// Acquire blocks until the key's mutex is held and returns the release
// function. Callers must release exactly once, typically via defer.
func (k *Keyed) Acquire(key string) func() {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}
