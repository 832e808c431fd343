//go:build (amd64 || arm64 || ppc64 || ppc64le) && !purego

package timing

// readCounter returns the free-running counter after a serializing
// instruction, so earlier work cannot drift past the read.
func readCounter() uint64
