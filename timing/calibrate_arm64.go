//go:build !purego

package timing

import "github.com/codingWhat/lockcompare/platform"

// counterFrequency reads CNTFRQ_EL0, the generic timer rate in Hz.
func counterFrequency() uint64

func calibrate(*platform.Info) Calibration {
	return frequencyCalibration("cntvct", counterFrequency())
}
