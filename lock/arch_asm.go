//go:build (amd64 || arm64 || ppc64 || ppc64le) && !purego && !race

package lock

const portable = false

// cas is a compare-and-swap with no ordering beyond what the hardware
// primitive implies: LOCK CMPXCHG on amd64, a bare LDXR/STXR loop on arm64
// and lwarx/stwcx. on ppc64.
//
//go:noescape
func cas(addr *uint32, old, new uint32) bool

func acquireNone()

func acquireOneWay()

func fullFence()

// releaseOneWay and releaseFull store 0 to addr after their barrier.
//
//go:noescape
func releaseOneWay(addr *uint32)

//go:noescape
func releaseFull(addr *uint32)
