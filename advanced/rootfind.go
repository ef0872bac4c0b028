package advanced

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const machineEpsilon = 2.220446049250313e-16

// ScalarFunc is a function of one variable that may fail, typically because
// it evaluated the potential at a point mass.
type ScalarFunc func(x float64) (float64, error)

// Brent finds a root of f within [a, b] to an absolute accuracy of tol, using
// Brent's combination of bisection, secant and inverse quadratic
// interpolation. f(a) and f(b) must have opposite signs, or ErrBracket is
// returned. Errors from f are returned unchanged.
func Brent(f ScalarFunc, a, b, tol float64, maxIter int) (float64, error) {
	fa, err := f(a)
	if err != nil {
		return 0, err
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if sameSign(fa, fb) {
		return 0, errors.Wrapf(ErrBracket, "f(%g) = %g and f(%g) = %g", a, fa, b, fb)
	}

	c, fc := b, fb
	var d, e float64
	for i := 0; i < maxIter; i++ {
		if sameSign(fb, fc) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		// b is always the best estimate so far
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol1 := 2*machineEpsilon*math.Abs(b) + tol/2
		xm := (c - b) / 2
		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// Attempt interpolation
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb, err = f(b)
		if err != nil {
			return 0, err
		}
	}
	return 0, errors.Wrapf(ErrConvergence, "brent: no root to %g after %d iterations, last estimate %g", tol, maxIter, b)
}

// VectorFunc and JacobianFunc describe a square nonlinear system for Newton.
type VectorFunc func(x []float64) ([]float64, error)
type JacobianFunc func(x []float64) (mat.Matrix, error)

// Newton solves f(x) = 0 from x0 by Newton-Raphson iteration, stopping when
// the update is smaller than tol (relative to |x| when |x| > 1). A singular
// Jacobian or an exhausted budget gives ErrConvergence.
func Newton(f VectorFunc, jac JacobianFunc, x0 []float64, tol float64, maxIter int) ([]float64, error) {
	n := len(x0)
	x := make([]float64, n)
	copy(x, x0)

	var step mat.VecDense
	for i := 0; i < maxIter; i++ {
		fx, err := f(x)
		if err != nil {
			return nil, err
		}
		j, err := jac(x)
		if err != nil {
			return nil, err
		}
		floats.Scale(-1, fx)
		if err := step.SolveVec(j, mat.NewVecDense(n, fx)); err != nil {
			return nil, errors.Wrapf(ErrConvergence, "newton: singular jacobian at %v: %v", x, err)
		}
		dx := step.RawVector().Data
		floats.Add(x, dx)
		if !isFinite(floats.Sum(x)) {
			return nil, errors.Wrapf(ErrConvergence, "newton: diverged from %v", x0)
		}
		if floats.Norm(dx, 2) <= tol*math.Max(1, floats.Norm(x, 2)) {
			return x, nil
		}
	}
	return nil, errors.Wrapf(ErrConvergence, "newton: no solution to %g after %d iterations from %v", tol, maxIter, x0)
}
