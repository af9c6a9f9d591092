// Package syncmap is a typed map safe for concurrent use.
package syncmap

import "sync"

type SyncMap[K comparable, V any] struct {
	mu *sync.Mutex
	m  map[K]V
}

func New[K comparable, V any]() SyncMap[K, V] {
	return SyncMap[K, V]{
		mu: &sync.Mutex{},
		m:  make(map[K]V),
	}
}

// Swap stores value under key and returns the value it replaced.
func (sm SyncMap[K, V]) Swap(key K, value V) (prev V, loaded bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	prev, loaded = sm.m[key]
	sm.m[key] = value
	return prev, loaded
}

// DeleteFunc deletes key if its current value satisfies fn, atomically.
func (sm SyncMap[K, V]) DeleteFunc(key K, fn func(V) bool) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	v, ok := sm.m[key]
	if !ok || !fn(v) {
		return false
	}
	delete(sm.m, key)
	return true
}
