package lockcompare

import (
	"github.com/panjf2000/ants"
	"github.com/pkg/errors"
)

// Spawner starts worker functions.
type Spawner interface {
	Spawn(fn func()) error
	Close()
}

// SpawnerFunc builds a Spawner able to run size workers at once.
type SpawnerFunc func(size int) (Spawner, error)

type goSpawner struct{}

func (goSpawner) Spawn(fn func()) error {
	go fn()
	return nil
}

func (goSpawner) Close() {}

// GoroutineSpawner starts each worker with a go statement.
func GoroutineSpawner(int) (Spawner, error) {
	return goSpawner{}, nil
}

type antsSpawner struct {
	pool *ants.Pool
}

// AntsSpawner runs workers on an ants pool sized to the worker count;
// a refused submission is a spawn failure.
func AntsSpawner(size int) (Spawner, error) {
	p, err := ants.NewPool(size)
	if err != nil {
		return nil, errors.Wrap(err, "ants pool")
	}
	return &antsSpawner{pool: p}, nil
}

func (s *antsSpawner) Spawn(fn func()) error {
	return errors.Wrap(s.pool.Submit(fn), "ants submit")
}

func (s *antsSpawner) Close() {
	s.pool.Release()
}

// SpawnerByName maps a configuration name to a SpawnerFunc.
func SpawnerByName(name string) (SpawnerFunc, error) {
	switch name {
	case "", "goroutine":
		return GoroutineSpawner, nil
	case "ants":
		return AntsSpawner, nil
	}
	return nil, errors.Errorf("lockcompare: unknown spawner %q", name)
}
