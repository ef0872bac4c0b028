package advanced

import (
	"fmt"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXL1(t *testing.T) {
	testCases := []struct {
		q, expected float64
	}{
		{0.1, 0.71751258711},
		{0.5, 0.5707515715185267},
		{1, 0.5},
		{2, 0.42924842848},
		{10, 0.28248741289},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("q=%g", tc.q), func(t *testing.T) {
			x, err := XL1(tc.q)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, x, 1e-10)
		})
	}
}

func TestXL2XL3(t *testing.T) {
	x2, err := XL2(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.58238072221, x2, 1e-10)
	x3, err := XL3(0.5)
	require.NoError(t, err)
	assert.InDelta(t, -0.80302796066, x3, 1e-10)

	x2, err = XL2(1)
	require.NoError(t, err)
	assert.InDelta(t, 1.69840614455, x2, 1e-10)
	x3, err = XL3(1)
	require.NoError(t, err)
	assert.InDelta(t, -0.69840614455, x3, 1e-10)
}

func TestCollinearOrdering(t *testing.T) {
	for _, q := range []float64{1e-4, 0.01, 0.3, 1, 4, 100, 1e4} {
		q := q
		t.Run(fmt.Sprintf("q=%g", q), func(t *testing.T) {
			x1, err := XL1(q)
			require.NoError(t, err)
			x2, err := XL2(q)
			require.NoError(t, err)
			x3, err := XL3(q)
			require.NoError(t, err)
			assert.True(t, x3 < 0, "L3 at %g", x3)
			assert.True(t, 0 < x1 && x1 < 1, "L1 at %g", x1)
			assert.True(t, x2 > 1, "L2 at %g", x2)

			for _, x := range []float64{x1, x2, x3} {
				slope, err := axisSlope(q, x)
				require.NoError(t, err)
				assert.InDelta(t, 0, slope, 1e-8, "dΦ/dx at %g", x)
			}
		})
	}
}

func TestXL1Symmetry(t *testing.T) {
	for _, q := range []float64{0.05, 0.2, 0.7, 1.5} {
		a, err := XL1(q)
		require.NoError(t, err)
		b, err := XL1(1 / q)
		require.NoError(t, err)
		assert.InDelta(t, 1, a+b, 1e-12, "q = %g", q)
	}
}

func TestL2L3Swap(t *testing.T) {
	// Swapping the stars exchanges L2 and L3 about x = 1/2.
	q := 0.4
	x2, err := XL2(q)
	require.NoError(t, err)
	x3, err := XL3(1 / q)
	require.NoError(t, err)
	assert.InDelta(t, 1, x2+x3, 1e-12)
}

func TestLagrangeBadMassRatio(t *testing.T) {
	for _, fn := range []func(float64) (float64, error){XL1, XL2, XL3} {
		_, err := fn(0)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
		_, err = fn(math.NaN())
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	}
}

func TestTriangularPoints(t *testing.T) {
	for _, q := range []float64{0.1, 1, 7} {
		l4, err := L4(q)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, l4.X, 1e-10, "q = %g", q)
		assert.InDelta(t, math.Sqrt(3)/2, l4.Y, 1e-10, "q = %g", q)

		l5, err := L5(q)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, l5.X, 1e-10, "q = %g", q)
		assert.InDelta(t, -math.Sqrt(3)/2, l5.Y, 1e-10, "q = %g", q)
	}
}

func TestStationaryFindsL1(t *testing.T) {
	q := 0.5
	x1, err := XL1(q)
	require.NoError(t, err)
	p, err := Stationary(q, Vec{X: 0.55, Y: 0.01})
	require.NoError(t, err)
	assert.InDelta(t, x1, p.X, 1e-10)
	assert.InDelta(t, 0, p.Y, 1e-10)
}
