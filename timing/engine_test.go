package timing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codingWhat/lockcompare/lock"
	"github.com/codingWhat/lockcompare/platform"
)

func fixed() Calibration {
	return Calibration{Backend: "test", Unit: "cycles", Ratio: 2, TicksPerSecond: 1e9}
}

func TestRecordBaseline(t *testing.T) {
	e := NewEngine(fixed())

	first := e.Record(Sample{Elapsed: 3000}, 1000)
	assert.Equal(t, 100.0, first.Percent)
	assert.Equal(t, uint64(3000), first.Baseline)
	assert.InDelta(t, 6.0, first.PerOp, 1e-9)
	assert.InDelta(t, 3000.0, first.Nanoseconds, 1e-9)

	second := e.Record(Sample{Elapsed: 1500}, 1000)
	assert.InDelta(t, 50.0, second.Percent, 1e-9)
	assert.Equal(t, uint64(3000), second.Baseline)

	b, ok := e.Baseline()
	assert.True(t, ok)
	assert.Equal(t, uint64(3000), b)

	e.Reset()
	third := e.Record(Sample{Elapsed: 1500}, 1000)
	assert.Equal(t, 100.0, third.Percent)
}

func TestRecordZero(t *testing.T) {
	e := NewEngine(fixed())

	r := e.Record(Sample{Elapsed: 0}, 0)
	assert.Equal(t, 0.0, r.PerOp)
	assert.Equal(t, 100.0, r.Percent)

	r = e.Record(Sample{Elapsed: 10}, 0)
	assert.Equal(t, 0.0, r.PerOp)
	assert.False(t, math.IsInf(r.Percent, 0) || math.IsNaN(r.Percent))
}

func TestTimeRegionEmpty(t *testing.T) {
	e := NewEngine(Calibrate(nil))
	s := e.TimeRegion(func() {})
	assert.Equal(t, s.End-s.Start, s.Elapsed)
	// An empty region is a handful of ticks at most; allow for a
	// preemption between the two reads.
	assert.Less(t, e.Nanoseconds(s.Elapsed), 50e6)
}

func TestTimeRegionSpinLock(t *testing.T) {
	const n = 1000000
	l, err := lock.NewSpinLock(lock.Full, lock.Full)
	require.NoError(t, err)

	e := NewEngine(Calibrate(nil))
	s := e.TimeRegion(func() {
		for i := 0; i < n; i++ {
			l.Lock()
			l.Unlock()
		}
	})
	r := e.Record(s, n)
	assert.Equal(t, uint32(0), l.Word())
	assert.Greater(t, r.PerOp, 0.0)
	assert.False(t, math.IsInf(r.PerOp, 0))
	assert.Equal(t, 100.0, r.Percent)
}

func TestCalibrateIdempotent(t *testing.T) {
	a := Calibrate(nil)
	b := Calibrate(nil)
	assert.Equal(t, a.Backend, b.Backend)
	assert.Equal(t, a.Unit, b.Unit)
	assert.InEpsilon(t, a.Ratio, b.Ratio, 0.05)
	if testing.Short() {
		return
	}
	assert.InEpsilon(t, a.TicksPerSecond, b.TicksPerSecond, 0.05)
}

func TestMeasureRate(t *testing.T) {
	assert.Greater(t, MeasureRate(rateInterval), 0.0)
}

func TestTimebaseCalibration(t *testing.T) {
	info, err := platform.Load("../platform/testdata/ppc64")
	require.NoError(t, err)

	c := timebaseCalibration(info)
	assert.Empty(t, c.Caveat)
	assert.Equal(t, "cycles", c.Unit)
	assert.InDelta(t, 3800e6/512e6, c.Ratio, 1e-9)
	assert.Equal(t, 512e6, c.TicksPerSecond)
}

func TestTimebaseCalibrationFallback(t *testing.T) {
	c := timebaseCalibration(nil)
	assert.Equal(t, 1.0, c.Ratio)
	assert.Equal(t, "ticks", c.Unit)
	assert.NotEmpty(t, c.Caveat)

	info, err := platform.Load("../platform/testdata/x86")
	require.NoError(t, err)
	c = timebaseCalibration(info)
	assert.Equal(t, 1.0, c.Ratio)
	assert.NotEmpty(t, c.Caveat)
}

func TestFrequencyCalibration(t *testing.T) {
	c := frequencyCalibration("cntvct", 25000000)
	assert.Equal(t, "ns", c.Unit)
	assert.InDelta(t, 40.0, c.Ratio, 1e-9)
	assert.Empty(t, c.Caveat)

	c = frequencyCalibration("cntvct", 0)
	assert.Equal(t, 1.0, c.Ratio)
	assert.NotEmpty(t, c.Caveat)
}

func TestNewEngineDefaultsRatio(t *testing.T) {
	e := NewEngine(Calibration{})
	assert.Equal(t, 1.0, e.Calibration().Ratio)
	assert.Equal(t, 7.0, e.Nanoseconds(7))
}
