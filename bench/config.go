// Package bench drives the comparison: for every configured lock variant
// a discarded warm-up pass, a timed pass and one result row, first
// uncontended and then with one worker per physical core.
package bench

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/codingWhat/lockcompare"
	"github.com/codingWhat/lockcompare/lock"
	"github.com/codingWhat/lockcompare/report"
)

// ConfigEnv names the environment variable holding an optional YAML
// config path. The binary itself takes no arguments.
const ConfigEnv = "LOCKCOMPARE_CONFIG"

const (
	DefaultIterations          = 10000000
	DefaultContendedIterations = 1000000
	DefaultSMTWidth            = 2
)

type Config struct {
	// Iterations is the lock/unlock count of an uncontended pass.
	Iterations uint64 `yaml:"iterations"`
	// ContendedIterations is the per-worker count of a contended pass.
	ContendedIterations uint64 `yaml:"contended_iterations"`
	// Threads fixes the contended worker count; 0 derives it from the
	// core topology.
	Threads int `yaml:"threads"`
	// SMTWidth is the hardware threads per core assumed when the topology
	// is unknown.
	SMTWidth  int      `yaml:"smt_width"`
	Contended bool     `yaml:"contended"`
	Pin       bool     `yaml:"pin"`
	Spawner   string   `yaml:"spawner"`
	Format    string   `yaml:"format"`
	Variants  []string `yaml:"variants"`
	// ProcRoot is where cpuinfo is read from.
	ProcRoot string `yaml:"proc_root"`
}

func DefaultConfig() Config {
	return Config{
		Iterations:          DefaultIterations,
		ContendedIterations: DefaultContendedIterations,
		SMTWidth:            DefaultSMTWidth,
		Contended:           true,
		Spawner:             "goroutine",
		Format:              "table",
	}
}

// LoadConfig overlays the YAML file at path onto DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Threads < 0 {
		return errors.Errorf("config: threads %d", c.Threads)
	}
	if c.SMTWidth < 1 {
		return errors.Errorf("config: smt_width %d", c.SMTWidth)
	}
	if _, err := lockcompare.SpawnerByName(c.Spawner); err != nil {
		return errors.Wrap(err, "config")
	}
	if _, err := report.New(c.Format, nil, noHost, 0); err != nil {
		return errors.Wrap(err, "config")
	}
	if _, err := lock.Select(c.Variants); err != nil {
		return errors.Wrap(err, "config")
	}
	return nil
}
