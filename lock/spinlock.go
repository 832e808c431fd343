package lock

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sys/cpu"
)

var (
	ErrBadBarrier     = errors.New("lock: unknown barrier kind")
	ErrUnsoundRelease = errors.New("lock: release requires a barrier")
)

// SpinLock is a binary lock word, 0 free and 1 held. It has no owner,
// no queue and no recursion. Unlocking a lock the caller does not hold is
// not detected unless built with the lockdebug tag.
type SpinLock struct {
	_       cpu.CacheLinePad
	word    uint32
	acquire BarrierKind
	release BarrierKind
	_       cpu.CacheLinePad
}

// NewSpinLock returns a free lock using the given barriers. A release
// without any barrier is rejected rather than strengthened.
func NewSpinLock(acquire, release BarrierKind) (*SpinLock, error) {
	if !acquire.valid() || !release.valid() {
		return nil, errors.Wrapf(ErrBadBarrier, "acquire=%d release=%d", acquire, release)
	}
	if release == None {
		return nil, ErrUnsoundRelease
	}
	return &SpinLock{acquire: acquire, release: release}, nil
}

// Barriers reports the acquire and release kinds the lock was built with.
func (l *SpinLock) Barriers() (acquire, release BarrierKind) {
	return l.acquire, l.release
}

// TryLock sets the word from 0 to 1 in one atomic step and, only when that
// succeeds, issues the acquire barrier.
func (l *SpinLock) TryLock() bool {
	if !cas(&l.word, 0, 1) {
		return false
	}
	switch l.acquire {
	case None:
		acquireNone()
	case OneWay:
		acquireOneWay()
	case Full:
		fullFence()
	}
	return true
}

// Lock polls TryLock until it succeeds. It never yields.
func (l *SpinLock) Lock() {
	for !l.TryLock() {
	}
}

// Unlock issues the release barrier and stores 0.
func (l *SpinLock) Unlock() {
	assertHeld(&l.word)
	if l.release == Full {
		releaseFull(&l.word)
		return
	}
	releaseOneWay(&l.word)
}

// Word reports the current value of the lock word.
func (l *SpinLock) Word() uint32 {
	return atomic.LoadUint32(&l.word)
}
