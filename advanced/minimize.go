package advanced

import (
	"math"

	"github.com/pkg/errors"
)

// Golden section ratio (3 - √5)/2.
var goldenSection = (3 - math.Sqrt(5)) / 2

// Minimize locates a minimum of f on [a, b] using Brent's method: parabolic
// interpolation where the function behaves, golden section steps where it
// doesn't. It returns the abscissa and the function value there.
func Minimize(f ScalarFunc, a, b, tol float64, maxIter int) (xmin, fmin float64, err error) {
	if a > b {
		a, b = b, a
	}
	x := a + goldenSection*(b-a)
	w, v := x, x
	fx, err := f(x)
	if err != nil {
		return 0, 0, err
	}
	fw, fv := fx, fx

	var d, e float64
	for i := 0; i < maxIter; i++ {
		xm := (a + b) / 2
		tol1 := machineEpsilon*math.Abs(x) + tol/3
		tol2 := 2 * tol1
		if math.Abs(x-xm) <= tol2-(b-a)/2 {
			return x, fx, nil
		}

		golden := true
		if math.Abs(e) > tol1 {
			// Trial parabolic fit through x, v, w
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			} else {
				q = -q
			}
			r = e
			e = d
			if math.Abs(p) < math.Abs(q*r/2) && p > q*(a-x) && p < q*(b-x) {
				d = p / q
				u := x + d
				if u-a < tol2 || b-u < tol2 {
					d = math.Copysign(tol1, xm-x)
				}
				golden = false
			}
		}
		if golden {
			if x >= xm {
				e = a - x
			} else {
				e = b - x
			}
			d = goldenSection * e
		}

		u := x + d
		if math.Abs(d) < tol1 {
			u = x + math.Copysign(tol1, d)
		}
		fu, err := f(u)
		if err != nil {
			return 0, 0, err
		}

		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, fv = w, fw
				w, fw = u, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}
	}
	return 0, 0, errors.Wrapf(ErrConvergence, "minimize: no minimum to %g after %d iterations on [%g, %g]", tol, maxIter, a, b)
}
