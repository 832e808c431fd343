package lockcompare

type Option func(p *Pool)

// WithThreads sets the number of workers.
func WithThreads(n int) Option {
	return func(p *Pool) {
		p.threads = n
	}
}

// WithIterations sets the lock/unlock cycles each worker performs.
func WithIterations(n uint64) Option {
	return func(p *Pool) {
		p.iterations = n
	}
}

// WithCriticalSection runs fn while the lock is held.
func WithCriticalSection(fn func()) Option {
	return func(p *Pool) {
		p.body = fn
	}
}

func WithSpawner(fn SpawnerFunc) Option {
	return func(p *Pool) {
		p.newSpawner = fn
	}
}

// WithPinning pins worker i to cpus[i%len(cpus)].
func WithPinning(cpus []int) Option {
	return func(p *Pool) {
		p.cpus = cpus
	}
}
