package advanced

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

var derivativeTestPoints = []Vec{
	{0.3, 0.2, 0},
	{-0.4, 0.7, 0.1},
	{1.3, -0.25, 0.05},
	{0.6, 0.01, -0.2},
}

func TestGradientMatchesFiniteDifferences(t *testing.T) {
	for _, q := range []float64{0.1, 0.5, 1, 3} {
		for _, p := range derivativeTestPoints {
			q, p := q, p
			t.Run(fmt.Sprintf("q=%g at %v", q, p), func(t *testing.T) {
				phi := func(x []float64) float64 {
					v, err := Potential(q, Vec{x[0], x[1], x[2]})
					require.NoError(t, err)
					return v
				}
				numeric := fd.Gradient(nil, phi, []float64{p.X, p.Y, p.Z}, &fd.Settings{Formula: fd.Central})

				g, err := Gradient(q, p)
				require.NoError(t, err)
				assert.InDelta(t, numeric[0], g.X, 1e-6)
				assert.InDelta(t, numeric[1], g.Y, 1e-6)
				assert.InDelta(t, numeric[2], g.Z, 1e-6)
			})
		}
	}
}

func TestHessianMatchesFiniteDifferences(t *testing.T) {
	for _, q := range []float64{0.2, 1, 5} {
		for _, p := range derivativeTestPoints {
			q, p := q, p
			t.Run(fmt.Sprintf("q=%g at %v", q, p), func(t *testing.T) {
				grad := func(y, x []float64) {
					g, err := Gradient(q, Vec{x[0], x[1], x[2]})
					require.NoError(t, err)
					y[0], y[1], y[2] = g.X, g.Y, g.Z
				}
				numeric := mat.NewDense(3, 3, nil)
				fd.Jacobian(numeric, grad, []float64{p.X, p.Y, p.Z}, &fd.JacobianSettings{Formula: fd.Central})

				h, err := Hessian(q, p)
				require.NoError(t, err)
				for i := 0; i < 3; i++ {
					for j := 0; j < 3; j++ {
						assert.InDelta(t, numeric.At(i, j), h.At(i, j), 1e-5, "element (%d, %d)", i, j)
					}
				}
			})
		}
	}
}

func TestPotentialAtPointMass(t *testing.T) {
	_, err := Potential(0.5, Vec{})
	assert.True(t, errors.Is(err, ErrDomain))
	_, err = Gradient(0.5, Vec{X: 1})
	assert.True(t, errors.Is(err, ErrDomain))
	_, err = Hessian(0.5, Vec{X: 1})
	assert.True(t, errors.Is(err, ErrDomain))
}

func TestPotentialRejectsBadMassRatio(t *testing.T) {
	for _, q := range []float64{0, -1} {
		_, err := Potential(q, Vec{X: 0.5})
		assert.True(t, errors.Is(err, ErrInvalidArgument), "q = %g", q)
	}
}

func TestPotentialSymmetry(t *testing.T) {
	// Swapping the stars and reflecting about x = 1/2 leaves the potential
	// unchanged up to the constant from the centrifugal term, which vanishes
	// here because it is taken about the centre of mass.
	q := 0.3
	for _, p := range derivativeTestPoints {
		a, err := Potential(q, p)
		require.NoError(t, err)
		b, err := Potential(1/q, Vec{1 - p.X, p.Y, p.Z})
		require.NoError(t, err)
		assert.InDelta(t, a, b, 1e-12, "%v", p)
	}
}
