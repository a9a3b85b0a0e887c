package extraction

import "sync"

// keyedLock is a non-blocking per-key mutex.
type keyedLock struct {
	mu   sync.Mutex
	held map[int64]struct{}
}

func newKeyedLock() *keyedLock {
	return &keyedLock{held: make(map[int64]struct{})}
}

// TryLock acquires key and reports whether it was free.
func (l *keyedLock) TryLock(key int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return false
	}
	l.held[key] = struct{}{}
	return true
}

// Unlock releases key.
func (l *keyedLock) Unlock(key int64) {
	l.mu.Lock()
	delete(l.held, key)
	l.mu.Unlock()
}
