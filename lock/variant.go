package lock

import (
	"sync"

	"github.com/pkg/errors"
)

var ErrUnknownVariant = errors.New("lock: unknown variant")

// Locker is a sync.Locker that can also be tried without waiting.
type Locker interface {
	sync.Locker
	TryLock() bool
}

// Variant is a named, compiled-in lock flavour.
type Variant struct {
	Name string
	// Spin is set for the barrier-parameterized spinlocks; Acquire and
	// Release are only meaningful then.
	Spin    bool
	Acquire BarrierKind
	Release BarrierKind

	newLocker func() (Locker, error)
}

// New returns a fresh, unlocked instance of the variant.
func (v Variant) New() (Locker, error) {
	if v.newLocker == nil {
		return nil, errors.Wrap(ErrUnknownVariant, v.Name)
	}
	return v.newLocker()
}

func spin(name string, acquire, release BarrierKind) Variant {
	return Variant{
		Name:    name,
		Spin:    true,
		Acquire: acquire,
		Release: release,
		newLocker: func() (Locker, error) {
			return NewSpinLock(acquire, release)
		},
	}
}

func reference(name string, fn func() Locker) Variant {
	return Variant{
		Name:      name,
		newLocker: func() (Locker, error) { return fn(), nil },
	}
}

// The first entry is the baseline. The set of pairings is fixed; acquire
// None is paired with both releases, release None is never offered.
var variants = []Variant{
	spin("spin_lock", None, OneWay),
	spin("spin_lwsync_lock", OneWay, OneWay),
	spin("spin_sync_lock", Full, OneWay),
	spin("spin_lock_sync_unlock", None, Full),
	spin("spin_lwsync_lock_sync_unlock", OneWay, Full),
	spin("spin_sync_lock_sync_unlock", Full, Full),
	reference("spin_backoff_lock", NewBackoffLock),
	reference("sync_mutex", func() Locker { return new(mutexLock) }),
	reference("chan_semaphore", func() Locker { return newSemLock() }),
}

// Variants returns every compiled-in variant in reporting order.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// SpinVariants returns only the barrier-parameterized spinlocks.
func SpinVariants() []Variant {
	var out []Variant
	for _, v := range variants {
		if v.Spin {
			out = append(out, v)
		}
	}
	return out
}

func Lookup(name string) (Variant, error) {
	for _, v := range variants {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, errors.Wrap(ErrUnknownVariant, name)
}

// Select returns the named variants in the order given, or all of them
// when names is empty.
func Select(names []string) ([]Variant, error) {
	if len(names) == 0 {
		return Variants(), nil
	}
	out := make([]Variant, 0, len(names))
	for _, n := range names {
		v, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
