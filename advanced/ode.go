package advanced

import (
	"math"

	"github.com/pkg/errors"
)

// Integration state: position, velocity and the arc length travelled.
const stateSize = 7

type state [stateSize]float64

func newState(r, v Vec) state {
	return state{r.X, r.Y, r.Z, v.X, v.Y, v.Z, 0}
}

func (s state) position() Vec {
	return Vec{s[0], s[1], s[2]}
}

func (s state) velocity() Vec {
	return Vec{s[3], s[4], s[5]}
}

func (s state) distance() float64 {
	return s[6]
}

func (s state) finite() bool {
	for _, v := range s {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

// Dormand-Prince 5(4) tableau.
var (
	dpA = [7][6]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	}
	dpB = [7]float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84, 0}
	// Difference between the 5th and embedded 4th order weights
	dpE = [7]float64{71.0 / 57600, 0, -71.0 / 16695, 71.0 / 1920, -17253.0 / 339200, 22.0 / 525, -1.0 / 40}
)

const (
	initialStep = 1e-3
	minimumStep = 1e-14
	// Step size control
	stepSafety    = 0.9
	stepGrowMax   = 5.0
	stepShrinkMin = 0.1
	// Event times are located to this accuracy
	eventTolerance = 1e-13
)

// integrator advances a test particle in the co-rotating frame under
//
//	r̈ = -∇Φ - 2Ω × ṙ
//
// with adaptive Dormand-Prince steps. It is not safe for concurrent use; each
// computation builds its own.
type integrator struct {
	q        float64
	accuracy float64
	maxSteps int

	y     state
	t     float64
	h     float64
	steps int

	name string
}

func newIntegrator(q float64, r, v Vec, accuracy float64, maxSteps int) *integrator {
	it := &integrator{
		q:        q,
		accuracy: accuracy,
		maxSteps: maxSteps,
		y:        newState(r, v),
		h:        initialStep,
	}
	it.name = traceName(it)
	return it
}

func (it *integrator) derivs(y state) (state, error) {
	g, err := gradient(it.q, y.position())
	if err != nil {
		return state{}, err
	}
	vx, vy, vz := y[3], y[4], y[5]
	return state{
		vx, vy, vz,
		-g.X + 2*vy,
		-g.Y - 2*vx,
		-g.Z,
		math.Sqrt(vx*vx + vy*vy + vz*vz),
	}, nil
}

// trial takes a single step of size h from y, returning the new state and the
// local error estimate.
func (it *integrator) trial(y state, h float64) (next, errEst state, err error) {
	var k [7]state
	for i := range k {
		yi := y
		for m := 0; m < i; m++ {
			for j := range yi {
				yi[j] += h * dpA[i][m] * k[m][j]
			}
		}
		if k[i], err = it.derivs(yi); err != nil {
			return state{}, state{}, err
		}
	}
	next = y
	for m := range k {
		for j := range next {
			next[j] += h * dpB[m] * k[m][j]
			errEst[j] += h * dpE[m] * k[m][j]
		}
	}
	return next, errEst, nil
}

// Scaled RMS error, accepted when <= 1.
func (it *integrator) errorNorm(y, next, errEst state) float64 {
	var sum float64
	for j := range y {
		scale := it.accuracy * (1 + math.Max(math.Abs(y[j]), math.Abs(next[j])))
		sum += (errEst[j] / scale) * (errEst[j] / scale)
	}
	return math.Sqrt(sum / stateSize)
}

// advance computes one accepted adaptive step from the current state without
// committing it, returning the new state and the step size used.
func (it *integrator) advance() (state, float64, error) {
	for {
		next, errEst, err := it.trial(it.y, it.h)
		if err != nil {
			return state{}, 0, err
		}
		e := it.errorNorm(it.y, next, errEst)
		if !next.finite() || math.IsNaN(e) {
			fatalf("integrator %s: state went non-finite at t = %g from %v", it.name, it.t, it.y.position())
		}
		if e <= 1 {
			used := it.h
			if e == 0 {
				it.h *= stepGrowMax
			} else {
				it.h *= math.Min(stepGrowMax, stepSafety*math.Pow(e, -0.2))
			}
			return next, used, nil
		}
		it.h *= math.Max(stepShrinkMin, stepSafety*math.Pow(e, -0.2))
		if it.h < minimumStep {
			return state{}, 0, errors.Wrapf(ErrConvergence, "integrator %s: step size underflow at t = %g, r = %v", it.name, it.t, it.y.position())
		}
	}
}

// event is a function of the state whose zero crossings are located during
// integration. Only crossings in direction count: +1 for negative to
// positive, -1 for positive to negative.
type event struct {
	fn        func(state) float64
	direction int
}

func (e event) crossed(before, after float64) bool {
	if e.direction > 0 {
		return before < 0 && after >= 0
	}
	return before > 0 && after <= 0
}

// until integrates until the first of the events fires and leaves the
// integrator on the crossing, returning the index of the event. Running out of
// steps gives ErrNotFound.
func (it *integrator) until(events ...event) (int, error) {
	before := make([]float64, len(events))
	for i, ev := range events {
		before[i] = ev.fn(it.y)
	}

	for ; it.steps < it.maxSteps; it.steps++ {
		next, h, err := it.advance()
		if err != nil {
			return -1, err
		}

		fired := -1
		firedAt := h
		for i, ev := range events {
			after := ev.fn(next)
			if !ev.crossed(before[i], after) {
				before[i] = after
				continue
			}
			start := it.y
			at, err := Brent(func(hh float64) (float64, error) {
				s, _, err := it.trial(start, hh)
				if err != nil {
					return 0, err
				}
				return ev.fn(s), nil
			}, 0, h, eventTolerance, MaxIterations)
			if err != nil {
				return -1, err
			}
			if fired < 0 || at < firedAt {
				fired, firedAt = i, at
			}
		}

		if fired >= 0 {
			y, _, err := it.trial(it.y, firedAt)
			if err != nil {
				return -1, err
			}
			it.y = y
			it.t += firedAt
			it.steps++
			tracef(it.name, "event %d at t = %.6f, r = %v", fired, it.t, it.y.position())
			return fired, nil
		}
		it.y = next
		it.t += h
	}
	return -1, errors.Wrapf(ErrNotFound, "integrator %s: no event within %d steps", it.name, it.maxSteps)
}
