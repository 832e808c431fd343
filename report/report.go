// Package report prints one line per measured lock variant.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/pkg/errors"

	"github.com/codingWhat/lockcompare/platform"
	"github.com/codingWhat/lockcompare/timing"
)

type Mode string

const (
	Uncontended Mode = "uncontended"
	Contended   Mode = "contended"
)

// Table describes a group of results sharing one baseline.
type Table struct {
	Mode        Mode
	Threads     int
	Iterations  uint64
	Calibration timing.Calibration
	// LockBackend names the fence implementation, see lock.Backend.
	LockBackend string
}

type Record struct {
	Mode    Mode
	Variant string
	Result  timing.Result
}

type Writer interface {
	Begin(t Table) error
	Write(r Record) error
	Flush() error
}

// New returns the writer for format "table" or "csv".
func New(format string, w io.Writer, host platform.Host, hwid uint64) (Writer, error) {
	switch format {
	case "", "table":
		return NewTable(w), nil
	case "csv":
		return NewCSV(w, host, hwid), nil
	}
	return nil, errors.Errorf("report: unknown format %q", format)
}

type tableWriter struct {
	w io.Writer
}

// NewTable writes human-readable rows: variant, cost per operation and
// percentage of the table's first row.
func NewTable(w io.Writer) Writer {
	return &tableWriter{w: w}
}

func (t *tableWriter) Begin(tb Table) error {
	_, err := fmt.Fprintf(t.w, "# %s: %d thread(s) x %d iterations, %s counter, %s locks\n",
		tb.Mode, tb.Threads, tb.Iterations, tb.Calibration.Backend, tb.LockBackend)
	if err != nil {
		return err
	}
	if tb.Calibration.Caveat != "" {
		_, err = fmt.Fprintf(t.w, "# caveat: %s\n", tb.Calibration.Caveat)
	}
	return err
}

func (t *tableWriter) Write(r Record) error {
	_, err := fmt.Fprintf(t.w, "%20s: %10.2f %s %10.2f%%\n",
		r.Variant, r.Result.PerOp, r.Result.Unit, r.Result.Percent)
	return err
}

func (t *tableWriter) Flush() error { return nil }

type csvWriter struct {
	cw     *csv.Writer
	host   string
	hwid   string
	warned map[string]bool
}

// NewCSV writes "hostname,hwid,variant,elapsed_ns" rows. Contended rows
// carry a ":contended" suffix on the variant. Caveats go to the log so the
// stream stays machine-readable.
func NewCSV(w io.Writer, host platform.Host, hwid uint64) Writer {
	return &csvWriter{
		cw:     csv.NewWriter(w),
		host:   host.Name,
		hwid:   fmt.Sprintf("0x%016x", hwid),
		warned: map[string]bool{},
	}
}

func (c *csvWriter) Begin(tb Table) error {
	if cv := tb.Calibration.Caveat; cv != "" && !c.warned[cv] {
		c.warned[cv] = true
		log.Printf("caveat: %s", cv)
	}
	return nil
}

func (c *csvWriter) Write(r Record) error {
	name := r.Variant
	if r.Mode == Contended {
		name += ":" + string(Contended)
	}
	return c.cw.Write([]string{
		c.host,
		c.hwid,
		name,
		strconv.FormatFloat(r.Result.Nanoseconds, 'f', 0, 64),
	})
}

func (c *csvWriter) Flush() error {
	c.cw.Flush()
	return c.cw.Error()
}
