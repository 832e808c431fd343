// Package lock implements single-word spinlocks whose acquire and release
// memory barriers are chosen independently, so that the cost of each
// barrier instruction can be measured in isolation.
package lock

import (
	"fmt"
	"runtime"
)

// BarrierKind selects the ordering instruction issued on one side of a lock.
type BarrierKind uint8

const (
	// None issues nothing beyond the atomic itself. On ppc64 the acquire
	// side still ends in isync, which together with the branch on the
	// store-conditional result is the architecture's cheapest acquire.
	None BarrierKind = iota
	// OneWay orders in a single direction: later accesses after an
	// acquire, earlier accesses before a release (lwsync on ppc64).
	OneWay
	// Full orders all accesses in both directions (sync on ppc64).
	Full
)

func (k BarrierKind) String() string {
	switch k {
	case None:
		return "none"
	case OneWay:
		return "oneway"
	case Full:
		return "full"
	}
	return fmt.Sprintf("BarrierKind(%d)", uint8(k))
}

func (k BarrierKind) valid() bool {
	return k <= Full
}

// Backend names the implementation of the atomic and fence primitives:
// the GOARCH for the assembly backends, "portable" for sync/atomic.
func Backend() string {
	if portable {
		return "portable"
	}
	return runtime.GOARCH
}
