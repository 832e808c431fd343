package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "lockcompare.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, uint64(DefaultIterations), cfg.Iterations)
	assert.Equal(t, 2, cfg.SMTWidth)
	assert.True(t, cfg.Contended)
	assert.Zero(t, cfg.Threads)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
iterations: 1000
threads: 3
spawner: ants
format: csv
variants: [spin_lock, sync_mutex]
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), cfg.Iterations)
	assert.Equal(t, uint64(DefaultContendedIterations), cfg.ContendedIterations)
	assert.Equal(t, 3, cfg.Threads)
	assert.Equal(t, "ants", cfg.Spawner)
	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, []string{"spin_lock", "sync_mutex"}, cfg.Variants)
	assert.True(t, cfg.Contended)
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	for name, body := range map[string]string{
		"unknown key": "iterationz: 5\n",
		"variant":     "variants: [ticket]\n",
		"spawner":     "spawner: fork\n",
		"format":      "format: xml\n",
		"threads":     "threads: -1\n",
		"smt":         "smt_width: 0\n",
		"syntax":      "iterations: [\n",
	} {
		_, err := LoadConfig(writeConfig(t, body))
		assert.Error(t, err, name)
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
