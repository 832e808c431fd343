//go:build !unix

package platform

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
)

func LookupHost() (Host, error) {
	name, err := os.Hostname()
	if err != nil {
		return Host{Machine: runtime.GOARCH}, errors.Wrap(err, "hostname")
	}
	return Host{Name: name, Machine: runtime.GOARCH}, nil
}
