package platform

import (
	"runtime"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCPUInfo(t *testing.T) {
	kv, err := ParseCPUInfo(strings.NewReader("a : 1\n\nb\t: two : parts\nnocolon\na: 3\n"))
	require.NoError(t, err)
	require.Len(t, kv, 3)

	v, ok := kv.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "3", v, "last value wins")

	v, ok = kv.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "two : parts", v)

	_, ok = kv.Get("nocolon")
	assert.False(t, ok)
}

func TestKVPrefix(t *testing.T) {
	kv := KV{{"clock", "1"}, {"clockrate", "2"}, {"timebase", "3"}}
	v, ok := kv.Prefix("clock")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = kv.Prefix("cpu")
	assert.False(t, ok)
}

func TestLeadingUint(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"512000000", 512000000, true},
		{"  42 Hz", 42, true},
		{"0x1f", 31, true},
		{"0x", 0, true},
		{"08", 8, true},
		{"MHz", 0, false},
		{"", 0, false},
	} {
		got, ok := LeadingUint(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLeadingFloat(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3425.000000MHz", 3425, true},
		{"2394.374", 2394.374, true},
		{"1e3x", 1000, true},
		{"5e", 5, true},
		{".5", 0.5, true},
		{"-", 0, false},
		{"abc", 0, false},
	} {
		got, ok := LeadingFloat(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

func TestLoadPPC64(t *testing.T) {
	info, err := Load("testdata/ppc64")
	require.NoError(t, err)

	tb, ok := info.Timebase()
	require.True(t, ok)
	assert.Equal(t, uint64(512000000), tb)

	mhz, ok := info.ClockMHz()
	require.True(t, ok)
	assert.InDelta(t, 3800.0, mhz, 1e-9)

	assert.Equal(t, uint64(0x004e1202), info.HardwareID())
}

func TestLoadX86(t *testing.T) {
	info, err := Load("testdata/x86")
	require.NoError(t, err)

	_, ok := info.Timebase()
	assert.False(t, ok)

	mhz, ok := info.ClockMHz()
	require.True(t, ok)
	assert.InDelta(t, 2394.374, mhz, 1e-9)

	assert.Equal(t, uint64(6<<16|85<<8|4), info.HardwareID())

	if runtime.GOARCH != "amd64" && runtime.GOARCH != "386" {
		t.Skip("procfs only decodes x86 topology on x86")
	}
	assert.Equal(t, 4, info.LogicalCPUs())
	assert.Equal(t, 2, info.PhysicalCores())
	assert.Equal(t, []int{0, 1}, info.CoreCPUs())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Equal(t, ErrUnavailable, errors.Cause(err))
}

func TestNilInfo(t *testing.T) {
	var info *Info
	assert.Equal(t, runtime.NumCPU(), info.LogicalCPUs())
	assert.Equal(t, 0, info.PhysicalCores())
	assert.Equal(t, uint64(0), info.HardwareID())
	_, ok := info.Timebase()
	assert.False(t, ok)
	_, ok = info.ClockMHz()
	assert.False(t, ok)
}

func TestLookupHost(t *testing.T) {
	h, err := LookupHost()
	require.NoError(t, err)
	assert.NotEmpty(t, h.Machine)
}
