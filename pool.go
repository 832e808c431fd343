// Package lockcompare runs lock variants uncontended and under real
// contention, one busy-polling worker per OS thread.
package lockcompare

import (
	"fmt"
	"log"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sys/cpu"

	"github.com/codingWhat/lockcompare/lock"
)

var (
	ErrSpawn       = errors.New("lockcompare: worker creation failed")
	ErrWorkerPanic = errors.New("lockcompare: worker panicked")
	ErrPoolState   = errors.New("lockcompare: pool used out of order")
)

type worker struct {
	id  int
	cpu int
	ops uint64
}

// Pool is one contended run: a shared lock, the workers hammering it and
// the flags that release them. Nothing is shared between pools.
type Pool struct {
	variant    lock.Variant
	lk         lock.Locker
	threads    int
	iterations uint64
	body       func()
	newSpawner SpawnerFunc
	cpus       []int

	_       cpu.CacheLinePad
	start   atomic.Bool
	_       cpu.CacheLinePad
	alive   atomic.Bool
	_       cpu.CacheLinePad
	aborted atomic.Bool

	spawner Spawner
	workers []*worker
	wg      sync.WaitGroup
	state   int

	mu  sync.Mutex
	err error
}

const (
	stateNew = iota
	stateSpawned
	stateStarted
	stateDone
)

// NewPool builds a pool around a fresh instance of v.
func NewPool(v lock.Variant, options ...Option) (*Pool, error) {
	lk, err := v.New()
	if err != nil {
		return nil, err
	}
	p := &Pool{
		variant:    v,
		lk:         lk,
		threads:    1,
		iterations: 1,
		newSpawner: GoroutineSpawner,
	}
	for _, op := range options {
		op(p)
	}
	if p.threads < 1 {
		return nil, errors.Errorf("lockcompare: %d threads", p.threads)
	}
	return p, nil
}

func (p *Pool) Variant() lock.Variant { return p.variant }
func (p *Pool) Threads() int          { return p.threads }

// Ops is the total number of completed critical sections.
func (p *Pool) Ops() uint64 {
	var n uint64
	for _, w := range p.workers {
		n += atomic.LoadUint64(&w.ops)
	}
	return n
}

// Spawn creates the workers one at a time, waiting for each to report
// that it is running before creating the next. On failure the workers
// already started are released without running their loops.
func (p *Pool) Spawn() error {
	if p.state != stateNew {
		return errors.Wrap(ErrPoolState, "spawn")
	}
	sp, err := p.newSpawner(p.threads)
	if err != nil {
		return errors.Wrapf(ErrSpawn, "%v", err)
	}
	p.spawner = sp
	p.workers = make([]*worker, 0, p.threads)

	for i := 0; i < p.threads; i++ {
		w := &worker{id: i, cpu: -1}
		if len(p.cpus) > 0 {
			w.cpu = p.cpus[i%len(p.cpus)]
		}
		p.alive.Store(false)
		p.wg.Add(1)
		if err := sp.Spawn(func() { p.runWorker(w) }); err != nil {
			p.wg.Done()
			p.abort()
			return errors.Wrapf(ErrSpawn, "worker %d of %d: %v", i, p.threads, err)
		}
		for !p.alive.Load() {
			runtime.Gosched()
		}
		p.workers = append(p.workers, w)
	}
	p.state = stateSpawned
	return nil
}

// Start releases every worker at once.
func (p *Pool) Start() error {
	if p.state != stateSpawned {
		return errors.Wrap(ErrPoolState, "start")
	}
	p.state = stateStarted
	p.start.Store(true)
	return nil
}

// Wait joins the workers. It blocks forever if a worker never gets the
// lock; there is no timeout.
func (p *Pool) Wait() error {
	if p.state != stateStarted {
		return errors.Wrap(ErrPoolState, "wait")
	}
	p.wg.Wait()
	p.state = stateDone
	p.spawner.Close()
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Run spawns, starts and joins the pool.
func (p *Pool) Run() error {
	if err := p.Spawn(); err != nil {
		return err
	}
	if err := p.Start(); err != nil {
		return err
	}
	return p.Wait()
}

func (p *Pool) abort() {
	p.aborted.Store(true)
	p.start.Store(true)
	p.wg.Wait()
	p.state = stateDone
	p.spawner.Close()
}

func (p *Pool) runWorker(w *worker) {
	defer p.wg.Done()
	defer p.withRecovery(w)

	runtime.LockOSThread()
	if w.cpu >= 0 {
		// A pinned thread stays locked so the runtime discards it when
		// the worker exits instead of reusing its affinity mask.
		if err := pin(w.cpu); err != nil {
			log.Printf("worker %d: %v", w.id, err)
		}
	} else {
		defer runtime.UnlockOSThread()
	}

	p.alive.Store(true)
	for !p.start.Load() {
	}
	if p.aborted.Load() {
		return
	}

	lk, n := p.lk, p.iterations
	if p.body == nil {
		for i := uint64(0); i < n; i++ {
			lk.Lock()
			lk.Unlock()
		}
	} else {
		body := p.body
		for i := uint64(0); i < n; i++ {
			lk.Lock()
			body()
			lk.Unlock()
		}
	}
	atomic.StoreUint64(&w.ops, n)
}

// withRecovery turns a worker panic into the pool's error. Any other worker
// waiting on a lock the panicking one held will still spin forever.
func (p *Pool) withRecovery(w *worker) {
	if r := recover(); r != nil {
		err := errors.Wrapf(ErrWorkerPanic, "worker %d: %v\n%s", w.id, r, debug.Stack())
		p.mu.Lock()
		if p.err == nil {
			p.err = err
		}
		p.mu.Unlock()
	}
}

func (p *Pool) String() string {
	return fmt.Sprintf("%s x%d", p.variant.Name, p.threads)
}
