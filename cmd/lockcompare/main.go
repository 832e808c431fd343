// Command lockcompare times lock/unlock cycles of spinlocks built with
// different acquire and release barriers, uncontended and with one worker
// per physical core, and prints one row per lock variant.
//
// It takes no arguments. Set LOCKCOMPARE_CONFIG to a YAML file to change
// iteration counts, thread count, variants or output format.
package main

import (
	"log"
	"os"

	"github.com/codingWhat/lockcompare/bench"
	"github.com/codingWhat/lockcompare/platform"
	"github.com/codingWhat/lockcompare/report"
	"github.com/codingWhat/lockcompare/timing"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("lockcompare: ")

	cfg := bench.DefaultConfig()
	if path := os.Getenv(bench.ConfigEnv); path != "" {
		var err error
		if cfg, err = bench.LoadConfig(path); err != nil {
			log.Fatal(err)
		}
	}

	info, err := platform.Load(cfg.ProcRoot)
	if err != nil {
		log.Printf("%v; topology and clock ratio unknown", err)
	}
	cal := timing.Calibrate(info)

	host, err := platform.LookupHost()
	if err != nil {
		log.Print(err)
	}
	out, err := report.New(cfg.Format, os.Stdout, host, info.HardwareID())
	if err != nil {
		log.Fatal(err)
	}

	d, err := bench.NewDriver(cfg, info, cal, out)
	if err != nil {
		log.Fatal(err)
	}
	if err := d.Run(); err != nil {
		log.Fatal(err)
	}
}
