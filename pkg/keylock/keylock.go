// Package keylock provides named mutexes, used to serialize work that shares
// a logical key (one user's cart) without a single global lock.
package keylock

import "sync"

// KeyLock hands out one mutex per key. Mutexes are created on first use and
// kept for the life of the process; the key space here (usernames) is small
// enough that eviction is not worth the bookkeeping.
type KeyLock struct {
	locks sync.Map // key -> *sync.Mutex
}

// New returns an empty KeyLock.
func New() *KeyLock {
	return &KeyLock{}
}

// Lock acquires the mutex for key, blocking until it is available.
func (l *KeyLock) Lock(key string) {
	mu, _ := l.locks.LoadOrStore(key, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
}

// Unlock releases the mutex for key. It panics if the key was never locked.
func (l *KeyLock) Unlock(key string) {
	mu, ok := l.locks.Load(key)
	if !ok {
		panic("keylock: unlock of unknown key " + key)
	}
	mu.(*sync.Mutex).Unlock()
}
