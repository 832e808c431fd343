//go:build !(amd64 || arm64 || ppc64 || ppc64le) || purego

package timing

import (
	"time"

	"github.com/codingWhat/lockcompare/platform"
)

var epoch = time.Now()

// readCounter falls back to the monotonic clock in nanoseconds.
func readCounter() uint64 {
	return uint64(time.Since(epoch))
}

func calibrate(*platform.Info) Calibration {
	return Calibration{Backend: "wallclock", Unit: "ns", Ratio: 1, TicksPerSecond: 1e9}
}
