// Package pool implements a fixed-capacity replay pool that mixes the
// current batch with batches seen earlier in training.
//
// Until the pool is full every pushed batch is stored and returned as is.
// Once full, a push returns its input unchanged half of the time; the other
// half, each component of the batch is swapped independently with the same
// component of a uniformly chosen stored slot, so a returned batch can mix
// components coming from different slots.
package pool

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/Noofbiz/latent/latent"
)

var (
	// ErrInvalidCapacity is returned by New for a capacity below 1.
	ErrInvalidCapacity = errors.New("pool: capacity must be > 0")
	// ErrArityMismatch is returned by Push when a batch does not have the
	// same number of components as the first batch pushed.
	ErrArityMismatch = errors.New("pool: batch arity mismatch")
	// ErrNilEngine is returned by New without a random engine.
	ErrNilEngine = errors.New("pool: nil engine")
)

// State is the fill state of a Pool.
type State int

const (
	// Filling means fewer than Cap batches are stored.
	Filling State = iota
	// Full means Cap batches are stored. A pool never leaves Full.
	Full
)

func (s State) String() string {
	if s == Full {
		return "full"
	}
	return "filling"
}

// replaceProbability is the chance that a push into a full pool swaps.
const replaceProbability = 0.5

// Pool is a replay pool of batches, each a fixed-arity tuple of components.
// Storage is one slice per component, indexed by slot. Push is safe for
// concurrent use.
type Pool[T any] struct {
	mu       sync.Mutex
	capacity int
	count    int
	arity    int
	slots    [][]T // slots[component][slot]
	eng      *latent.Engine
}

// New returns an empty pool of the given capacity drawing its decisions from
// a sub-stream of eng.
func New[T any](capacity int, eng *latent.Engine) (*Pool[T], error) {
	if capacity < 1 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "got %d", capacity)
	}
	if eng == nil {
		return nil, ErrNilEngine
	}
	return &Pool[T]{capacity: capacity, eng: eng.Derive()}, nil
}

// Push stores or swaps batch and returns the batch the consumer should use.
// The returned slice always has the arity of batch.
func (p *Pool[T]) Push(batch []T) ([]T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.count == 0 && p.arity == 0 {
		p.arity = len(batch)
		p.slots = make([][]T, p.arity)
		for i := range p.slots {
			p.slots[i] = make([]T, 0, p.capacity)
		}
	}
	if len(batch) != p.arity {
		return nil, errors.Wrapf(ErrArityMismatch, "got %d components, pool holds %d", len(batch), p.arity)
	}

	if p.count < p.capacity {
		for i, c := range batch {
			p.slots[i] = append(p.slots[i], c)
		}
		p.count++
		return batch, nil
	}

	if p.eng.Float64() <= replaceProbability {
		return batch, nil
	}
	out := make([]T, len(batch))
	for i, c := range batch {
		idx := p.eng.IntN(p.capacity)
		out[i] = p.slots[i][idx]
		p.slots[i][idx] = c
	}
	return out, nil
}

// Len returns the number of stored batches.
func (p *Pool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// Cap returns the fixed capacity.
func (p *Pool[T]) Cap() int { return p.capacity }

// Arity returns the number of components per batch, zero before the first push.
func (p *Pool[T]) Arity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.arity
}

// State reports whether the pool is still filling.
func (p *Pool[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.count < p.capacity {
		return Filling
	}
	return Full
}

// Slot returns a copy of the components stored in slot idx.
func (p *Pool[T]) Slot(idx int) ([]T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if idx < 0 || idx >= p.count {
		return nil, false
	}
	out := make([]T, p.arity)
	for i := range out {
		out[i] = p.slots[i][idx]
	}
	return out, true
}
