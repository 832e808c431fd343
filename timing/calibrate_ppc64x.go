//go:build (ppc64 || ppc64le) && !purego

package timing

import "github.com/codingWhat/lockcompare/platform"

func calibrate(info *platform.Info) Calibration {
	return timebaseCalibration(info)
}
