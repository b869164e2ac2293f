package timedcache

import (
	"sync"
	"sync/atomic"
)

const (
	modeRead  = "read"
	modeWrite = "write"
)

// rwLock is a reader/writer lock that becomes permanently poisoned when
// a holder panics. Access is closure-scoped so the lock is released on
// every exit path and a holder's panic is always observed.
type rwLock struct {
	mu       sync.RWMutex
	poisoned atomic.Bool
}

// read runs fn while holding the lock in shared mode. If fn panics, the
// lock is poisoned and the panic is re-raised to the caller.
func (l *rwLock) read(fn func()) error {
	if l.poisoned.Load() {
		return &PoisonedError{Mode: modeRead}
	}
	l.mu.RLock()
	if l.poisoned.Load() {
		l.mu.RUnlock()
		return &PoisonedError{Mode: modeRead}
	}
	defer func() {
		if r := recover(); r != nil {
			l.poisoned.Store(true)
			l.mu.RUnlock()
			panic(r)
		}
		l.mu.RUnlock()
	}()
	fn()
	return nil
}

// write runs fn while holding the lock exclusively, with the same
// poison-on-panic contract as read.
func (l *rwLock) write(fn func()) error {
	if l.poisoned.Load() {
		return &PoisonedError{Mode: modeWrite}
	}
	l.mu.Lock()
	if l.poisoned.Load() {
		l.mu.Unlock()
		return &PoisonedError{Mode: modeWrite}
	}
	defer func() {
		if r := recover(); r != nil {
			l.poisoned.Store(true)
			l.mu.Unlock()
			panic(r)
		}
		l.mu.Unlock()
	}()
	fn()
	return nil
}
