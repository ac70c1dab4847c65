package service

import "sync"

// InstanceLocker serializes writers per workflow instance. Manual status
// updates and the sweeper share one locker so their read-modify-write
// cycles on the same instance never interleave.
type InstanceLocker struct {
	mu    sync.Mutex
	locks map[string]*instanceLock
}

type instanceLock struct {
	mu   sync.Mutex
	refs int
}

func NewInstanceLocker() *InstanceLocker {
	return &InstanceLocker{locks: make(map[string]*instanceLock)}
}

// Lock blocks until the caller holds the lock for id and returns the
// function that releases it.
func (l *InstanceLocker) Lock(id string) (unlock func()) {
	l.mu.Lock()
	lk, ok := l.locks[id]
	if !ok {
		lk = &instanceLock{}
		l.locks[id] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.mu.Lock()
	return func() {
		lk.mu.Unlock()
		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

// held returns the number of instances with a holder or waiter.
func (l *InstanceLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
