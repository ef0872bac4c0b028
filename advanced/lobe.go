package advanced

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Absolute accuracy of each lobe radius.
const lobeTolerance = 1e-12

// Lobe1 traces the primary star's Roche lobe in the orbital plane.
func Lobe1(q float64, n int) (*Curve, error) {
	return Lobe(q, n, Primary)
}

// Lobe2 traces the secondary star's Roche lobe in the orbital plane.
func Lobe2(q float64, n int) (*Curve, error) {
	return Lobe(q, n, Secondary)
}

// Lobe traces the critical equipotential through L1 around the given star,
// returning n points. Point i lies on the ray from the star's centre at angle
// 2πi/(n-1) from the direction of L1, counterclockwise for the primary and
// clockwise for the secondary, so the two lobes mirror each other when q = 1.
// The first and last points are both exactly L1.
func Lobe(q float64, n int, star Star) (*Curve, error) {
	if err := checkMassRatio(q); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, invalidf("lobe: n = %d, must be >= 2", n)
	}
	if !star.Valid() {
		return nil, invalidf("lobe: %v", star)
	}

	xl1, err := XL1(q)
	if err != nil {
		return nil, err
	}
	critical, err := potential(q, Vec{X: xl1})
	if err != nil {
		return nil, err
	}

	// The lobe is widest toward L1, so the distance from the star to L1
	// bounds every radius.
	centre := star.Centre()
	limit := math.Abs(xl1 - centre.X)
	sense := 1.0
	if star == Secondary {
		sense = -1
	}

	angles := floats.Span(make([]float64, n), 0, 2*math.Pi)
	points := make([]Vec, n)
	for i, theta := range angles {
		if i == 0 || i == n-1 {
			points[i] = Vec{X: xl1}
			continue
		}
		direction := Vec{X: sense * math.Cos(theta), Y: math.Sin(theta)}
		r, err := equipotentialRadius(q, critical, centre, direction, limit)
		if err != nil {
			return nil, errors.Wrapf(err, "lobe of %v at angle %g", star, theta)
		}
		points[i] = centre.Add(direction.Scale(r))
	}
	return newCurveFromPoints(points), nil
}

// equipotentialRadius finds the distance along the ray centre + r*direction
// at which Φ reaches level, given that the crossing lies within limit.
func equipotentialRadius(q, level float64, centre, direction Vec, limit float64) (float64, error) {
	f := func(r float64) (float64, error) {
		p, err := potential(q, centre.Add(direction.Scale(r)))
		return p - level, err
	}

	fhi, err := f(limit)
	if err != nil {
		return 0, err
	}
	// Rays grazing the L1 direction touch the level only at the limit.
	if fhi <= 0 {
		return limit, nil
	}

	// Φ → -∞ at the star, so shrinking always finds the inside eventually.
	lo := limit / 100
	for i := 0; ; i++ {
		flo, err := f(lo)
		if err != nil {
			return 0, err
		}
		if flo < 0 {
			break
		}
		if i == 30 {
			return 0, errors.Wrapf(ErrBracket, "no point inside level %g along %v", level, direction)
		}
		lo /= 10
	}
	return Brent(f, lo, limit, lobeTolerance, MaxIterations)
}

// VLobe1 is the primary's Roche lobe mapped to velocity space.
func VLobe1(q float64, n int) (*Curve, error) {
	return VLobe(q, n, Primary)
}

// VLobe2 is the secondary's Roche lobe mapped to velocity space.
func VLobe2(q float64, n int) (*Curve, error) {
	return VLobe(q, n, Secondary)
}

// VLobe maps Lobe point by point to the inertial velocities (vx, vy) that the
// co-rotating material on the lobe has, as used in Doppler tomography.
func VLobe(q float64, n int, star Star) (*Curve, error) {
	lobe, err := Lobe(q, n, star)
	if err != nil {
		return nil, err
	}
	return lobe.Map(func(p Vec) Vec { return CorotationVelocity(q, p) }), nil
}

// CorotationVelocity is the inertial velocity Ω × (r - r_cm) of a point fixed
// in the co-rotating frame.
func CorotationVelocity(q float64, p Vec) Vec {
	_, mu2 := masses(q)
	return Vec{X: -p.Y, Y: p.X - mu2}
}

// PositionFromVelocity inverts CorotationVelocity in the orbital plane.
func PositionFromVelocity(q float64, v Vec) Vec {
	_, mu2 := masses(q)
	return Vec{X: v.Y + mu2, Y: -v.X}
}

// FillingPotential is the potential of the surface of a star that fills a
// fraction fill of its Roche lobe, measured along the line to L1. fill = 1
// gives Φ(L1).
func FillingPotential(q float64, star Star, fill float64) (float64, error) {
	if err := checkMassRatio(q); err != nil {
		return 0, err
	}
	if !(fill > 0 && fill <= 1) {
		return 0, invalidf("filling factor %g out of range (0, 1]", fill)
	}
	xl1, err := XL1(q)
	if err != nil {
		return 0, err
	}
	var x float64
	switch star {
	case Primary:
		x = fill * xl1
	case Secondary:
		x = 1 - fill*(1-xl1)
	default:
		return 0, invalidf("filling potential: %v", star)
	}
	return potential(q, Vec{X: x})
}
