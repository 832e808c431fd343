package bench

import (
	"github.com/pkg/errors"

	"github.com/codingWhat/lockcompare"
	"github.com/codingWhat/lockcompare/lock"
	"github.com/codingWhat/lockcompare/platform"
	"github.com/codingWhat/lockcompare/report"
	"github.com/codingWhat/lockcompare/timing"
)

var noHost platform.Host

type Driver struct {
	cfg      Config
	cal      timing.Calibration
	out      report.Writer
	variants []lock.Variant
	threads  int
	cpus     []int
	spawner  lockcompare.SpawnerFunc
}

// NewDriver prepares a run. info may be nil when the platform could not
// be described; thread count then falls back to CPUs / SMT width.
func NewDriver(cfg Config, info *platform.Info, cal timing.Calibration, out report.Writer) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	variants, err := lock.Select(cfg.Variants)
	if err != nil {
		return nil, err
	}
	spawner, err := lockcompare.SpawnerByName(cfg.Spawner)
	if err != nil {
		return nil, err
	}
	d := &Driver{
		cfg:      cfg,
		cal:      cal,
		out:      out,
		variants: variants,
		threads:  cfg.Threads,
		spawner:  spawner,
	}
	if d.threads == 0 {
		d.threads = lockcompare.DefaultThreads(info.PhysicalCores(), info.LogicalCPUs(), cfg.SMTWidth)
	}
	if cfg.Pin {
		d.cpus = info.CoreCPUs()
	}
	return d, nil
}

func (d *Driver) Threads() int { return d.threads }

// Run measures every variant uncontended, then contended if configured.
// A worker that cannot be created aborts the whole run.
func (d *Driver) Run() error {
	if err := d.uncontended(); err != nil {
		return err
	}
	if d.cfg.Contended {
		if err := d.contended(); err != nil {
			return err
		}
	}
	return d.out.Flush()
}

func (d *Driver) uncontended() error {
	n := d.cfg.Iterations
	eng := timing.NewEngine(d.cal)
	err := d.out.Begin(report.Table{
		Mode:        report.Uncontended,
		Threads:     1,
		Iterations:  n,
		Calibration: d.cal,
		LockBackend: lock.Backend(),
	})
	if err != nil {
		return err
	}
	for _, v := range d.variants {
		warm, err := v.New()
		if err != nil {
			return err
		}
		lockcompare.RunSingleThreaded(warm, n, nil)

		l, err := v.New()
		if err != nil {
			return err
		}
		s := eng.TimeRegion(func() { lockcompare.RunSingleThreaded(l, n, nil) })
		err = d.out.Write(report.Record{
			Mode:    report.Uncontended,
			Variant: v.Name,
			Result:  eng.Record(s, n),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) contended() error {
	n := d.cfg.ContendedIterations
	eng := timing.NewEngine(d.cal)
	err := d.out.Begin(report.Table{
		Mode:        report.Contended,
		Threads:     d.threads,
		Iterations:  n,
		Calibration: d.cal,
		LockBackend: lock.Backend(),
	})
	if err != nil {
		return err
	}
	for _, v := range d.variants {
		warm, err := d.newPool(v)
		if err != nil {
			return err
		}
		if err := warm.Run(); err != nil {
			return errors.Wrapf(err, "%s warm-up", v.Name)
		}

		p, err := d.newPool(v)
		if err != nil {
			return err
		}
		if err := p.Spawn(); err != nil {
			return errors.Wrap(err, v.Name)
		}
		if err := p.Start(); err != nil {
			return errors.Wrap(err, v.Name)
		}
		var werr error
		s := eng.TimeRegion(func() { werr = p.Wait() })
		if werr != nil {
			return errors.Wrap(werr, v.Name)
		}
		err = d.out.Write(report.Record{
			Mode:    report.Contended,
			Variant: v.Name,
			Result:  eng.Record(s, n*uint64(d.threads)),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) newPool(v lock.Variant) (*lockcompare.Pool, error) {
	return lockcompare.NewPool(v,
		lockcompare.WithThreads(d.threads),
		lockcompare.WithIterations(d.cfg.ContendedIterations),
		lockcompare.WithSpawner(d.spawner),
		lockcompare.WithPinning(d.cpus))
}
