package repository

import "sync"

// StoreLock is shared by every repository on one database so a transaction
// over screens and boxes excludes writers of either table.
type StoreLock struct {
	mu sync.RWMutex
}

func NewStoreLock() *StoreLock {
	return &StoreLock{}
}

// write and read are no-ops for repositories bound to a running Transaction,
// which already holds the write lock.
func (l *StoreLock) write(inTx bool) func() {
	if inTx {
		return func() {}
	}
	l.mu.Lock()
	return l.mu.Unlock
}

func (l *StoreLock) read(inTx bool) func() {
	if inTx {
		return func() {}
	}
	l.mu.RLock()
	return l.mu.RUnlock
}
