package advanced

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jacobiEnergy(t *testing.T, q float64, y state) float64 {
	phi, err := Potential(q, y.position())
	require.NoError(t, err)
	v := y.velocity()
	return phi + v.Dot(v)/2
}

func TestIntegratorConservesJacobiConstant(t *testing.T) {
	q := 0.5
	r, v, err := StreamStart(q, 1e-4)
	require.NoError(t, err)
	it := newIntegrator(q, r, v, 1e-10, 100000)
	start := jacobiEnergy(t, q, it.y)

	for _, s := range []float64{0.25, 0.5, 1, 1.5} {
		s := s
		fired, err := it.until(event{fn: func(y state) float64 { return y.distance() - s }, direction: 1})
		require.NoError(t, err)
		assert.Equal(t, 0, fired)
		assert.InDelta(t, s, it.y.distance(), 1e-10)
		assert.InDelta(t, start, jacobiEnergy(t, q, it.y), 1e-7, "at s = %g", s)
	}
}

func TestIntegratorPicksEarliestEvent(t *testing.T) {
	q := 1.0
	r, v, err := StreamStart(q, 0)
	require.NoError(t, err)
	it := newIntegrator(q, r, v, 1e-9, 100000)

	late := event{fn: func(y state) float64 { return y.distance() - 0.2 }, direction: 1}
	early := event{fn: func(y state) float64 { return y.distance() - 0.1 }, direction: 1}
	fired, err := it.until(late, early)
	require.NoError(t, err)
	assert.Equal(t, 1, fired)
	assert.InDelta(t, 0.1, it.y.distance(), 1e-10)
}

func TestIntegratorIgnoresWrongDirection(t *testing.T) {
	q := 1.0
	r, v, err := StreamStart(q, 0)
	require.NoError(t, err)
	it := newIntegrator(q, r, v, 1e-9, 100000)

	// Arc length only grows, so a downward crossing never happens.
	never := event{fn: func(y state) float64 { return y.distance() - 0.05 }, direction: -1}
	stop := event{fn: func(y state) float64 { return y.distance() - 0.1 }, direction: 1}
	fired, err := it.until(never, stop)
	require.NoError(t, err)
	assert.Equal(t, 1, fired)
}

func TestIntegratorStepBudget(t *testing.T) {
	r, v, err := StreamStart(0.5, 0)
	require.NoError(t, err)
	it := newIntegrator(0.5, r, v, 1e-9, 3)
	_, err = it.until(event{fn: func(y state) float64 { return y.distance() - 10 }, direction: 1})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestEventCrossed(t *testing.T) {
	up := event{direction: 1}
	assert.True(t, up.crossed(-1, 1))
	assert.True(t, up.crossed(-1, 0))
	assert.False(t, up.crossed(1, -1))
	assert.False(t, up.crossed(0, 1))

	down := event{direction: -1}
	assert.True(t, down.crossed(1, -1))
	assert.True(t, down.crossed(1, 0))
	assert.False(t, down.crossed(-1, 1))
}
