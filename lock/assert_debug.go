//go:build lockdebug

package lock

import "sync/atomic"

func assertHeld(word *uint32) {
	if atomic.LoadUint32(word) != 1 {
		panic("lock: unlock of unlocked SpinLock")
	}
}
