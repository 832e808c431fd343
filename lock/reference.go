package lock

import "sync"

// mutexLock is sync.Mutex, the runtime's own parking lock.
type mutexLock struct {
	sync.Mutex
}

// semLock is a one-slot channel used as a binary semaphore.
type semLock chan struct{}

func newSemLock() semLock {
	return make(semLock, 1)
}

func (s semLock) Lock() {
	s <- struct{}{}
}

func (s semLock) TryLock() bool {
	select {
	case s <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s semLock) Unlock() {
	<-s
}
