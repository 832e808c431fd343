package lock

import (
	"runtime"
	"sync/atomic"
)

const maxBackOff = 16

// backoffLock is the usual goroutine-pool spinlock: a sequentially
// consistent CAS with exponential runtime.Gosched backoff. It is the
// reference point for what scheduler cooperation costs.
type backoffLock uint32

func NewBackoffLock() Locker {
	return new(backoffLock)
}

func (s *backoffLock) TryLock() bool {
	return atomic.CompareAndSwapUint32((*uint32)(s), 0, 1)
}

func (s *backoffLock) Lock() {
	backoff := 1
	for !s.TryLock() {
		for i := 0; i < backoff; i++ {
			runtime.Gosched()
		}

		if backoff < maxBackOff {
			backoff = backoff << 1
		}
	}
}

func (s *backoffLock) Unlock() {
	atomic.StoreUint32((*uint32)(s), 0)
}
