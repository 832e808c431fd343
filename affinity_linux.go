package lockcompare

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// pin binds the calling OS thread to one CPU.
func pin(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return errors.Wrapf(unix.SchedSetaffinity(0, &set), "pin to cpu %d", cpu)
}
