package advanced

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBrent(t *testing.T) {
	testCases := []struct {
		name     string
		f        func(float64) float64
		a, b     float64
		expected float64
	}{
		{"linear", func(x float64) float64 { return 2*x - 1 }, 0, 3, 0.5},
		{"cubic", func(x float64) float64 { return x*x*x - 2*x - 5 }, 2, 3, 2.0945514815423265},
		{"cosine", math.Cos, 0, 3, math.Pi / 2},
		{"reversed bracket", math.Cos, 3, 0, math.Pi / 2},
		{"root at endpoint", func(x float64) float64 { return x - 1 }, 1, 2, 1},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			x, err := Brent(func(x float64) (float64, error) { return tc.f(x), nil }, tc.a, tc.b, 1e-12, MaxIterations)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, x, 1e-10)
		})
	}
}

func TestBrentErrors(t *testing.T) {
	t.Run("not bracketed", func(t *testing.T) {
		_, err := Brent(func(x float64) (float64, error) { return x*x + 1, nil }, -1, 1, 1e-12, MaxIterations)
		assert.True(t, errors.Is(err, ErrBracket))
	})

	t.Run("out of iterations", func(t *testing.T) {
		_, err := Brent(func(x float64) (float64, error) { return math.Cbrt(x - 0.3), nil }, -1, 1, 1e-15, 2)
		assert.True(t, errors.Is(err, ErrConvergence))
	})

	t.Run("function error passes through", func(t *testing.T) {
		_, err := Brent(func(x float64) (float64, error) { return 0, ErrDomain }, -1, 1, 1e-12, MaxIterations)
		assert.True(t, errors.Is(err, ErrDomain))
	})
}

func TestNewton(t *testing.T) {
	// Intersection of the unit circle with the line y = x.
	f := func(x []float64) ([]float64, error) {
		return []float64{x[0]*x[0] + x[1]*x[1] - 1, x[0] - x[1]}, nil
	}
	jac := func(x []float64) (mat.Matrix, error) {
		return mat.NewDense(2, 2, []float64{
			2 * x[0], 2 * x[1],
			1, -1,
		}), nil
	}
	x, err := Newton(f, jac, []float64{1, 0.5}, 1e-12, MaxIterations)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2/2, x[0], 1e-10)
	assert.InDelta(t, math.Sqrt2/2, x[1], 1e-10)
}

func TestNewtonSingularJacobian(t *testing.T) {
	f := func(x []float64) ([]float64, error) {
		return []float64{x[0]*x[0] + 1}, nil
	}
	jac := func(x []float64) (mat.Matrix, error) {
		return mat.NewDense(1, 1, []float64{2 * x[0]}), nil
	}
	_, err := Newton(f, jac, []float64{0}, 1e-12, MaxIterations)
	assert.Error(t, err)
}

func TestMinimize(t *testing.T) {
	testCases := []struct {
		name       string
		f          func(float64) float64
		a, b       float64
		xmin, fmin float64
	}{
		{"parabola", func(x float64) float64 { return (x-0.3)*(x-0.3) + 2 }, -1, 1, 0.3, 2},
		{"quartic", func(x float64) float64 { return math.Pow(x-1, 4) }, 0, 3, 1, 0},
		{"cosine", math.Cos, 2, 5, math.Pi, -1},
		{"monotone", func(x float64) float64 { return x }, 0, 1, 0, 0},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			x, fx, err := Minimize(func(x float64) (float64, error) { return tc.f(x), nil }, tc.a, tc.b, 1e-8, MaxIterations)
			require.NoError(t, err)
			assert.InDelta(t, tc.xmin, x, 1e-3)
			assert.InDelta(t, tc.fmin, fx, 1e-7)
		})
	}
}
