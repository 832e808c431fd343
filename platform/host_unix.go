//go:build unix

package platform

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// LookupHost returns the node name and hardware name from uname(2).
func LookupHost() (Host, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return Host{Machine: runtime.GOARCH}, errors.Wrap(err, "uname")
	}
	return Host{
		Name:    unix.ByteSliceToString(uts.Nodename[:]),
		Machine: unix.ByteSliceToString(uts.Machine[:]),
	}, nil
}
