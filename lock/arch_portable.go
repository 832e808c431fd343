//go:build !(amd64 || arm64 || ppc64 || ppc64le) || purego || race

package lock

import "sync/atomic"

// With sync/atomic every operation is already sequentially consistent, so
// the barriers below only add the cost of one more atomic on a private
// word. Race-enabled builds use this backend so the detector can see the
// happens-before edges.
const portable = true

func cas(addr *uint32, old, new uint32) bool {
	return atomic.CompareAndSwapUint32(addr, old, new)
}

func acquireNone() {}

func acquireOneWay() {
	var w uint32
	atomic.LoadUint32(&w)
}

func fullFence() {
	var w uint32
	atomic.AddUint32(&w, 1)
}

func releaseOneWay(addr *uint32) {
	atomic.StoreUint32(addr, 0)
}

func releaseFull(addr *uint32) {
	fullFence()
	atomic.StoreUint32(addr, 0)
}
