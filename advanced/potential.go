// Package advanced is the numerical engine behind package roche. It exposes
// the building blocks (potential, solvers, integrator) as well as the
// high level geometry routines, for callers that want finer control than the
// root package offers.
//
// Units: binary separation = 1, orbital angular frequency = 1 and
// G(M1+M2) = 1. The frame co-rotates with the binary, with the primary at the
// origin, the secondary at (1, 0, 0) and the orbital angular momentum along +z.
package advanced

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Fractional masses of the primary and secondary. The centre of mass is at
// (mu2, 0, 0).
func masses(q float64) (mu1, mu2 float64) {
	mu2 = q / (1 + q)
	return 1 - mu2, mu2
}

// Distances from p to the two stars, failing if p sits on either of them.
func separations(p Vec) (r1, r2 float64, err error) {
	r1 = p.Norm()
	r2 = p.Sub(Vec{X: 1}).Norm()
	if r1 == 0 {
		return 0, 0, errors.Wrapf(ErrDomain, "primary at %v", p)
	}
	if r2 == 0 {
		return 0, 0, errors.Wrapf(ErrDomain, "secondary at %v", p)
	}
	return r1, r2, nil
}

// Potential returns the Roche effective potential
//
//	Φ = -μ1/r1 - μ2/r2 - ((x-μ2)² + y²)/2
//
// which is the gravitational plus centrifugal potential per unit mass in the
// co-rotating frame.
func Potential(q float64, p Vec) (float64, error) {
	if err := checkMassRatio(q); err != nil {
		return 0, err
	}
	return potential(q, p)
}

// Unchecked q, for inner loops.
func potential(q float64, p Vec) (float64, error) {
	mu1, mu2 := masses(q)
	r1, r2, err := separations(p)
	if err != nil {
		return 0, err
	}
	dx := p.X - mu2
	return -mu1/r1 - mu2/r2 - (dx*dx+p.Y*p.Y)/2, nil
}

// Gradient returns ∇Φ at p.
func Gradient(q float64, p Vec) (Vec, error) {
	if err := checkMassRatio(q); err != nil {
		return Vec{}, err
	}
	return gradient(q, p)
}

func gradient(q float64, p Vec) (Vec, error) {
	mu1, mu2 := masses(q)
	r1, r2, err := separations(p)
	if err != nil {
		return Vec{}, err
	}
	a := mu1 / (r1 * r1 * r1)
	b := mu2 / (r2 * r2 * r2)
	return Vec{
		X: a*p.X + b*(p.X-1) - (p.X - mu2),
		Y: a*p.Y + b*p.Y - p.Y,
		Z: a*p.Z + b*p.Z,
	}, nil
}

// Hessian returns the symmetric matrix of second derivatives of Φ at p, in
// x, y, z order.
func Hessian(q float64, p Vec) (*mat.SymDense, error) {
	if err := checkMassRatio(q); err != nil {
		return nil, err
	}
	return hessian(q, p)
}

func hessian(q float64, p Vec) (*mat.SymDense, error) {
	mu1, mu2 := masses(q)
	r1, r2, err := separations(p)
	if err != nil {
		return nil, err
	}
	d1 := [3]float64{p.X, p.Y, p.Z}
	d2 := [3]float64{p.X - 1, p.Y, p.Z}
	a := mu1 / math.Pow(r1, 3)
	b := mu2 / math.Pow(r2, 3)
	a5 := 3 * mu1 / math.Pow(r1, 5)
	b5 := 3 * mu2 / math.Pow(r2, 5)

	h := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			v := -a5*d1[i]*d1[j] - b5*d2[i]*d2[j]
			if i == j {
				v += a + b
				// centrifugal term only acts in the orbital plane
				if i < 2 {
					v--
				}
			}
			h.SetSym(i, j, v)
		}
	}
	return h, nil
}

// dΦ/dx along the x axis, whose roots are the collinear Lagrange points.
func axisSlope(q, x float64) (float64, error) {
	g, err := gradient(q, Vec{X: x})
	if err != nil {
		return 0, err
	}
	return g.X, nil
}
