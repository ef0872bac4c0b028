package advanced

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Absolute accuracy of the Lagrange point positions.
const lagrangeTolerance = 1e-13

// The collinear points lie roughly a Hill radius (μ/3)^(1/3) from the nearer
// star, and dΦ/dx diverges at each star. Bracket ends are placed this
// fraction of a Hill radius away from a star, close enough that the singular
// term dominates the sign of dΦ/dx.
const hillFraction = 1e-3

func hillRadius(mu float64) float64 {
	return math.Cbrt(mu / 3)
}

// XL1 returns the x coordinate of the inner Lagrange point, the unique
// stationary point of Φ on the axis between the stars.
func XL1(q float64) (float64, error) {
	if err := checkMassRatio(q); err != nil {
		return 0, err
	}
	mu1, mu2 := masses(q)
	// dΦ/dx is monotonically decreasing on (0, 1), from +∞ to -∞.
	a := hillFraction * hillRadius(mu1)
	b := 1 - hillFraction*hillRadius(mu2)
	return collinear(q, "L1", a, b)
}

// XL2 returns the x coordinate of the L2 point, beyond the secondary.
func XL2(q float64) (float64, error) {
	if err := checkMassRatio(q); err != nil {
		return 0, err
	}
	_, mu2 := masses(q)
	// dΦ/dx falls from +∞ just outside the secondary to
	// μ1/4 + 2μ2 - 2 < 0 at x = 2.
	a := 1 + hillFraction*hillRadius(mu2)
	return collinear(q, "L2", a, 2)
}

// XL3 returns the x coordinate of the L3 point, beyond the primary (x < 0).
func XL3(q float64) (float64, error) {
	if err := checkMassRatio(q); err != nil {
		return 0, err
	}
	mu1, _ := masses(q)
	// dΦ/dx falls from 2 - μ1/4 + 8μ2/9 > 0 at x = -2 to -∞ just
	// before the primary.
	b := -hillFraction * hillRadius(mu1)
	return collinear(q, "L3", -2, b)
}

func collinear(q float64, name string, a, b float64) (float64, error) {
	// For extreme q the bracket ends can round onto a star.
	if !(a < b) || a == 0 || b == 0 || a == 1 || b == 1 {
		return 0, errors.Wrapf(ErrBracket, "%s: bracket [%g, %g] degenerate for q = %g", name, a, b, q)
	}
	x, err := Brent(func(x float64) (float64, error) {
		return axisSlope(q, x)
	}, a, b, lagrangeTolerance, MaxIterations)
	if err != nil {
		return 0, errors.Wrapf(err, "%s for q = %g", name, q)
	}
	return x, nil
}

// Stationary finds the stationary point of Φ in the orbital plane nearest to
// guess by Newton iteration on ∇Φ = 0, using the Hessian as Jacobian.
func Stationary(q float64, guess Vec) (Vec, error) {
	if err := checkMassRatio(q); err != nil {
		return Vec{}, err
	}
	f := func(x []float64) ([]float64, error) {
		g, err := gradient(q, Vec{X: x[0], Y: x[1]})
		if err != nil {
			return nil, err
		}
		return []float64{g.X, g.Y}, nil
	}
	jac := func(x []float64) (mat.Matrix, error) {
		h, err := hessian(q, Vec{X: x[0], Y: x[1]})
		if err != nil {
			return nil, err
		}
		return h.SliceSym(0, 2), nil
	}
	x, err := Newton(f, jac, []float64{guess.X, guess.Y}, lagrangeTolerance, MaxIterations)
	if err != nil {
		return Vec{}, errors.Wrapf(err, "stationary point near %v for q = %g", guess, q)
	}
	return Vec{X: x[0], Y: x[1]}, nil
}

// L4 returns the leading triangular Lagrange point (y > 0).
func L4(q float64) (Vec, error) {
	return Stationary(q, Vec{X: 0.5, Y: math.Sqrt(3) / 2})
}

// L5 returns the trailing triangular Lagrange point (y < 0).
func L5(q float64) (Vec, error) {
	return Stationary(q, Vec{X: 0.5, Y: -math.Sqrt(3) / 2})
}
