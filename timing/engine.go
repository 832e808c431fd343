// Package timing brackets a measured region with reads of the hardware
// cycle counter and turns the tick difference into per-operation costs.
package timing

import (
	"fmt"
	"time"

	"github.com/codingWhat/lockcompare/platform"
)

// rateInterval is how long Calibrate watches the counter against the
// wall clock when the tick rate is not known exactly.
const rateInterval = 50 * time.Millisecond

// Calibration describes the active counter backend.
type Calibration struct {
	Backend string
	// Unit is what Ratio converts ticks into.
	Unit string
	// Ratio converts counter ticks to Unit.
	Ratio float64
	// TicksPerSecond converts ticks to wall-clock time for raw reporting.
	TicksPerSecond float64
	// Caveat is non-empty when the ratio is a fallback and results are
	// not in the advertised unit.
	Caveat string
}

// Calibrate derives the tick ratio for this machine. It never fails:
// missing platform data degrades to a ratio of 1 with a Caveat.
func Calibrate(info *platform.Info) Calibration {
	c := calibrate(info)
	if c.TicksPerSecond == 0 {
		c.TicksPerSecond = MeasureRate(rateInterval)
	}
	return c
}

// timebaseCalibration scales a fixed-rate time base up to core cycles
// using the "clock" and "timebase" lines of cpuinfo.
func timebaseCalibration(info *platform.Info) Calibration {
	c := Calibration{Backend: "timebase", Unit: "ticks", Ratio: 1}
	tb, ok := info.Timebase()
	if !ok || tb == 0 {
		c.Caveat = "cpuinfo has no timebase; results are raw timebase ticks"
		return c
	}
	c.TicksPerSecond = float64(tb)
	mhz, ok := info.ClockMHz()
	if !ok {
		c.Caveat = "cpuinfo has no clock; results are raw timebase ticks"
		return c
	}
	c.Unit = "cycles"
	c.Ratio = mhz * 1e6 / float64(tb)
	return c
}

// frequencyCalibration converts a counter of known frequency to ns.
func frequencyCalibration(backend string, hz uint64) Calibration {
	if hz == 0 {
		return Calibration{
			Backend: backend,
			Unit:    "ticks",
			Ratio:   1,
			Caveat:  "counter frequency reads 0; results are raw counter ticks",
		}
	}
	return Calibration{
		Backend:        backend,
		Unit:           "ns",
		Ratio:          1e9 / float64(hz),
		TicksPerSecond: float64(hz),
	}
}

// MeasureRate reports counter ticks per second of wall-clock time over d.
func MeasureRate(d time.Duration) float64 {
	hw := readCounter()
	sw := time.Now()
	time.Sleep(d)
	hw1 := readCounter()
	dt := time.Since(sw)
	return float64(hw1-hw) / dt.Seconds()
}

// Sample is one measured region.
type Sample struct {
	Start    uint64
	End      uint64
	Elapsed  uint64
	Baseline uint64
}

// Result is a Sample normalized against the iteration count and baseline.
type Result struct {
	Sample
	Iterations uint64
	// PerOp is Elapsed*Ratio/Iterations, 0 for no iterations.
	PerOp float64
	// Percent is Elapsed relative to the baseline, exactly 100 for the
	// sample that became the baseline.
	Percent     float64
	Nanoseconds float64
	Unit        string
}

func (r Result) String() string {
	return fmt.Sprintf("%.2f %s/op %.2f%%", r.PerOp, r.Unit, r.Percent)
}

// Engine times regions and tracks the baseline. It is not safe for
// concurrent use; one Engine serves one report table.
type Engine struct {
	cal         Calibration
	baseline    uint64
	hasBaseline bool
}

func NewEngine(cal Calibration) *Engine {
	if cal.Ratio == 0 {
		cal.Ratio = 1
	}
	return &Engine{cal: cal}
}

func (e *Engine) Calibration() Calibration {
	return e.cal
}

// TimeRegion reads the counter immediately before and after fn.
func (e *Engine) TimeRegion(fn func()) Sample {
	start := readCounter()
	fn()
	end := readCounter()
	return Sample{Start: start, End: end, Elapsed: end - start, Baseline: e.baseline}
}

// Record normalizes s. The first recorded sample becomes the baseline.
func (e *Engine) Record(s Sample, iterations uint64) Result {
	r := Result{
		Iterations:  iterations,
		Unit:        e.cal.Unit,
		Nanoseconds: e.Nanoseconds(s.Elapsed),
	}
	if !e.hasBaseline {
		e.baseline = s.Elapsed
		e.hasBaseline = true
		r.Percent = 100
	} else if e.baseline > 0 {
		r.Percent = float64(s.Elapsed) * 100 / float64(e.baseline)
	}
	s.Baseline = e.baseline
	r.Sample = s
	if iterations > 0 {
		r.PerOp = float64(s.Elapsed) * e.cal.Ratio / float64(iterations)
	}
	return r
}

// Baseline returns the baseline ticks and whether one has been recorded.
func (e *Engine) Baseline() (uint64, bool) {
	return e.baseline, e.hasBaseline
}

// Reset forgets the baseline so the next Record starts a new table.
func (e *Engine) Reset() {
	e.baseline = 0
	e.hasBaseline = false
}

// Nanoseconds converts ticks to wall-clock nanoseconds.
func (e *Engine) Nanoseconds(ticks uint64) float64 {
	if e.cal.TicksPerSecond <= 0 {
		return float64(ticks)
	}
	return float64(ticks) * 1e9 / e.cal.TicksPerSecond
}
