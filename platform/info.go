package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/procfs"
)

const DefaultRoot = procfs.DefaultMountPoint

var ErrUnavailable = errors.New("platform: cpuinfo unavailable")

// Info is what was learned from <root>/cpuinfo. A nil *Info is valid and
// answers every question with "unknown".
type Info struct {
	Root string
	KV   KV
	// CPUs holds procfs' per-processor records. Its fields depend on the
	// architecture procfs was built for; topology fields are only filled
	// on x86.
	CPUs []procfs.CPUInfo
}

// Load reads root/cpuinfo. An empty root means /proc.
func Load(root string) (*Info, error) {
	if root == "" {
		root = DefaultRoot
	}
	path := filepath.Join(root, "cpuinfo")
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "%v", err)
	}
	defer f.Close()

	kv, err := ParseCPUInfo(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	info := &Info{Root: root, KV: kv}

	fs, err := procfs.NewFS(root)
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "%v", err)
	}
	// procfs only understands the layout of the architecture it was
	// compiled for; an unparsable file still leaves the key/value view.
	if cpus, err := fs.CPUInfo(); err == nil {
		info.CPUs = cpus
	}
	return info, nil
}

// LogicalCPUs is the number of online processors.
func (i *Info) LogicalCPUs() int {
	if i != nil && len(i.CPUs) > 0 {
		return len(i.CPUs)
	}
	return runtime.NumCPU()
}

type coreKey struct {
	pkg, core string
}

// PhysicalCores counts distinct (physical id, core id) pairs, or returns 0
// when the topology is not described.
func (i *Info) PhysicalCores() int {
	return len(i.CoreCPUs())
}

// CoreCPUs returns the lowest-numbered logical processor of every
// physical core, in ascending order.
func (i *Info) CoreCPUs() []int {
	if i == nil {
		return nil
	}
	first := map[coreKey]int{}
	for _, c := range i.CPUs {
		if c.CoreID == "" {
			return nil
		}
		k := coreKey{c.PhysicalID, c.CoreID}
		if p, ok := first[k]; !ok || int(c.Processor) < p {
			first[k] = int(c.Processor)
		}
	}
	out := make([]int, 0, len(first))
	for _, p := range first {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Timebase is the frequency, in Hz, of the ppc64 time base register.
func (i *Info) Timebase() (uint64, bool) {
	if i == nil {
		return 0, false
	}
	v, ok := i.KV.Prefix("timebase")
	if !ok {
		return 0, false
	}
	return LeadingUint(v)
}

// ClockMHz is the core clock from the "clock" line (ppc64) or, failing
// that, "cpu MHz" (x86).
func (i *Info) ClockMHz() (float64, bool) {
	if i == nil {
		return 0, false
	}
	for _, key := range []string{"clock", "cpu MHz"} {
		if v, ok := i.KV.Prefix(key); ok {
			if f, ok := LeadingFloat(v); ok && f > 0 {
				return f, true
			}
		}
	}
	return 0, false
}

// HardwareID packs the processor revision into 64 bits: the ppc64
// processor version register from the "revision" line, or
// family<<16 | model<<8 | stepping on x86. It is 0 when unknown.
func (i *Info) HardwareID() uint64 {
	if i == nil {
		return 0
	}
	if pvr, ok := i.pvr(); ok {
		return pvr
	}
	fam, ok1 := i.uintKey("cpu family")
	model, ok2 := i.uintKey("model")
	step, ok3 := i.uintKey("stepping")
	if !ok1 || !ok2 || !ok3 {
		return 0
	}
	return fam<<16 | model<<8 | step
}

func (i *Info) uintKey(key string) (uint64, bool) {
	v, ok := i.KV.Get(key)
	if !ok {
		return 0, false
	}
	return LeadingUint(v)
}

// pvr extracts "004e 1202" from "2.2 (pvr 004e 1202)".
func (i *Info) pvr() (uint64, bool) {
	v, ok := i.KV.Get("revision")
	if !ok {
		return 0, false
	}
	const tag = "(pvr "
	start := strings.Index(v, tag)
	if start < 0 {
		return 0, false
	}
	hex := []byte("0x")
	for _, c := range []byte(v[start+len(tag):]) {
		if c == ')' {
			break
		}
		if c != ' ' {
			hex = append(hex, c)
		}
	}
	return LeadingUint(string(hex))
}
