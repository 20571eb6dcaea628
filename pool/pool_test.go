package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noofbiz/latent/latent"
)

// batch is a two-component tuple tagged with the push step and component.
func batch(step int) []int { return []int{step*10 + 0, step*10 + 1} }

func TestPoolFillsThenStaysFull(t *testing.T) {
	p, err := New[int](50, latent.NewEngine(1))
	require.NoError(t, err)
	assert.Equal(t, Filling, p.State())

	for step := 1; step <= 50; step++ {
		in := batch(step)
		out, err := p.Push(in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
		assert.Equal(t, step, p.Len())
	}
	assert.Equal(t, Full, p.State())

	in := batch(51)
	out, err := p.Push(in)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 50, p.Len())
	assert.Equal(t, Full, p.State())
	if out[0] != in[0] {
		// A swap: every component came from a stored slot, and the incoming
		// component now sits in the pool.
		for i, v := range out {
			assert.Equal(t, i, v%10, "component %d came from the wrong position", i)
			assert.Less(t, v/10, 51)
		}
		assert.True(t, holds(p, 0, in[0]))
		assert.True(t, holds(p, 1, in[1]))
	}
}

func TestPoolSwapRateAndComponentIndependence(t *testing.T) {
	const trials = 4000
	p, err := New[int](5, latent.NewEngine(77))
	require.NoError(t, err)
	for step := 0; step < 5; step++ {
		_, err := p.Push(batch(step))
		require.NoError(t, err)
	}

	passed, crossSlot := 0, 0
	for step := 5; step < 5+trials; step++ {
		in := batch(step)
		out, err := p.Push(in)
		require.NoError(t, err)
		if out[0] == in[0] && out[1] == in[1] {
			passed++
			continue
		}
		// Both components are swapped at once, never just one.
		require.NotEqual(t, in[0], out[0])
		require.NotEqual(t, in[1], out[1])
		if out[0]/10 != out[1]/10 {
			crossSlot++
		}
		assert.Equal(t, 5, p.Len())
	}
	assert.InDelta(t, 0.5, float64(passed)/trials, 0.05)
	// Independent slot choice per component mixes different stored slots.
	assert.Greater(t, crossSlot, 0)
}

func TestPoolSameSeedSameDecisions(t *testing.T) {
	run := func() [][]int {
		p, err := New[int](3, latent.NewEngine(5))
		require.NoError(t, err)
		var outs [][]int
		for step := 0; step < 30; step++ {
			out, err := p.Push(batch(step))
			require.NoError(t, err)
			outs = append(outs, out)
		}
		return outs
	}
	assert.Equal(t, run(), run())
}

func TestPoolErrors(t *testing.T) {
	_, err := New[int](0, latent.NewEngine(1))
	assert.ErrorIs(t, err, ErrInvalidCapacity)
	_, err = New[int](3, nil)
	assert.ErrorIs(t, err, ErrNilEngine)

	p, err := New[int](3, latent.NewEngine(1))
	require.NoError(t, err)
	_, err = p.Push([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Arity())
	_, err = p.Push([]int{1, 2, 3})
	assert.ErrorIs(t, err, ErrArityMismatch)
	assert.Equal(t, 1, p.Len())
}

func TestPoolSlot(t *testing.T) {
	p, err := New[int](2, latent.NewEngine(1))
	require.NoError(t, err)
	_, ok := p.Slot(0)
	assert.False(t, ok)
	_, err = p.Push([]int{4, 5})
	require.NoError(t, err)
	got, ok := p.Slot(0)
	require.True(t, ok)
	assert.Equal(t, []int{4, 5}, got)
}

func TestPoolConcurrentPush(t *testing.T) {
	p, err := New[*latent.Matrix](8, latent.NewEngine(3))
	require.NoError(t, err)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				in := []*latent.Matrix{latent.NewMatrix(1, 2, nil), latent.NewMatrix(1, 3, nil)}
				out, err := p.Push(in)
				if err != nil {
					t.Error(err)
					return
				}
				if len(out) != 2 {
					t.Errorf("got %d components", len(out))
					return
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, p.Len())
	for i := 0; i < 8; i++ {
		slot, ok := p.Slot(i)
		require.True(t, ok)
		_, c := slot[1].Dims()
		assert.Equal(t, 3, c)
	}
}

func holds(p *Pool[int], component, v int) bool {
	for i := 0; i < p.Len(); i++ {
		slot, _ := p.Slot(i)
		if slot[component] == v {
			return true
		}
	}
	return false
}
