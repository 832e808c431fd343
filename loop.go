package lockcompare

import "sync"

// RunSingleThreaded performs iterations lock/unlock pairs on l from the
// calling goroutine, running body while the lock is held when non-nil.
func RunSingleThreaded(l sync.Locker, iterations uint64, body func()) {
	if body == nil {
		for i := uint64(0); i < iterations; i++ {
			l.Lock()
			l.Unlock()
		}
		return
	}
	for i := uint64(0); i < iterations; i++ {
		l.Lock()
		body()
		l.Unlock()
	}
}

// DefaultThreads picks one worker per physical core. Without a known
// topology it divides the logical CPU count by smtWidth.
func DefaultThreads(physical, logical, smtWidth int) int {
	if physical > 0 {
		return physical
	}
	if smtWidth < 1 {
		smtWidth = 1
	}
	n := logical / smtWidth
	if n < 1 {
		n = 1
	}
	return n
}
