// Package concurrency holds small synchronization helpers shared by the
// environmental cache services.
package concurrency

import (
	"sync"
)

// KeyedMutex hands out one mutex per key so lookups for different days or
// locations never contend with each other. Used to serialize cache fills:
// concurrent misses on the same key wait for the first fill instead of all
// hitting the upstream provider.
//
// Entries are reference counted and removed once the last holder unlocks,
// so the key space stays bounded no matter how many distinct date/location
// pairs pass through.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (km *KeyedMutex) Lock(key string) func() {
	km.mu.Lock()
	kl, ok := km.locks[key]
	if !ok {
		kl = &keyedLock{}
		km.locks[key] = kl
	}
	kl.refs++
	km.mu.Unlock()

	kl.mu.Lock()
	return func() {
		kl.mu.Unlock()

		km.mu.Lock()
		kl.refs--
		if kl.refs == 0 {
			delete(km.locks, key)
		}
		km.mu.Unlock()
	}
}

// size reports the number of live entries, for tests.
func (km *KeyedMutex) size() int {
	km.mu.Lock()
	defer km.mu.Unlock()
	return len(km.locks)
}
