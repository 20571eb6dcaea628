package latent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineReproducible(t *testing.T) {
	a, b := NewEngine(7), NewEngine(7)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestEngineDeriveIsIndependentOfLaterParentDraws(t *testing.T) {
	p1, p2 := NewEngine(42), NewEngine(42)
	c1 := p1.Derive()
	c2 := p2.Derive()
	// Drawing from one parent must not shift its child's stream.
	for i := 0; i < 10; i++ {
		p1.Float64()
	}
	for i := 0; i < 50; i++ {
		require.Equal(t, c1.IntN(1000), c2.IntN(1000))
	}
}

func TestEngineUniformBounds(t *testing.T) {
	e := NewEngine(1)
	for i := 0; i < 1000; i++ {
		v := e.Uniform(-5, 5)
		assert.GreaterOrEqual(t, v, -5.0)
		assert.Less(t, v, 5.0)
	}
}
