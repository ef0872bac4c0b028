package advanced

import (
	"math"

	"github.com/pkg/errors"
)

// EclipseOptions select the eclipsing star and how accurately eclipses are
// located.
type EclipseOptions struct {
	// The star doing the eclipsing.
	Star Star `yaml:"star"`
	// Fraction of its Roche lobe the eclipsing star fills, in (0, 1].
	Fill float64 `yaml:"fill"`
	// Accuracy of the potential minimum search along each line of sight.
	Accuracy float64 `yaml:"accuracy"`
	// Accuracy of ingress and egress phases.
	Delta float64 `yaml:"delta"`
}

func DefaultEclipseOptions() EclipseOptions {
	return EclipseOptions{
		Star:     Secondary,
		Fill:     1,
		Accuracy: 1e-4,
		Delta:    1e-7,
	}
}

func (o EclipseOptions) Validate() error {
	switch {
	case !o.Star.Valid():
		return invalidf("eclipse: %v", o.Star)
	case !(o.Fill > 0 && o.Fill <= 1):
		return invalidf("eclipse: fill = %g, must be in (0, 1]", o.Fill)
	case !(o.Accuracy > 0 && o.Accuracy <= 0.1):
		return invalidf("eclipse: accuracy = %g, must be in (0, 0.1]", o.Accuracy)
	case !(o.Delta > 0):
		return invalidf("eclipse: delta = %g, must be > 0", o.Delta)
	}
	return nil
}

func checkInclination(incl float64) error {
	if !(incl >= 0 && incl <= 90) {
		return invalidf("inclination = %g, must be in [0, 90]", incl)
	}
	return nil
}

// EarthVector is the unit vector from the binary toward the observer at the
// given inclination (degrees) and orbital phase, in the co-rotating frame.
// Phase 0 puts the secondary nearest the observer.
func EarthVector(incl, phase float64) Vec {
	i := degToRad(incl)
	p := 2 * math.Pi * phase
	return Vec{
		X: math.Sin(i) * math.Cos(p),
		Y: -math.Sin(i) * math.Sin(p),
		Z: math.Cos(i),
	}
}

// eclipser holds what is fixed about one star's occulting surface.
type eclipser struct {
	q      float64
	centre Vec
	// Bounding sphere radius: the distance from the star's centre to L1.
	radius float64
	level  float64
	opts   EclipseOptions
}

func newEclipser(q float64, opts EclipseOptions) (*eclipser, error) {
	xl1, err := XL1(q)
	if err != nil {
		return nil, err
	}
	level, err := FillingPotential(q, opts.Star, opts.Fill)
	if err != nil {
		return nil, err
	}
	centre := opts.Star.Centre()
	return &eclipser{
		q:      q,
		centre: centre,
		radius: math.Abs(xl1 - centre.X),
		level:  level,
		opts:   opts,
	}, nil
}

// margin is negative when the line of sight from p toward the observer passes
// inside the star's surface and positive when it clears it. It changes sign
// continuously at ingress and egress.
func (e *eclipser) margin(p Vec, incl, phase float64) (float64, error) {
	earth := EarthVector(incl, phase)

	// Sight line p + t*earth, t >= 0, against the bounding sphere.
	d := p.Sub(e.centre)
	b := d.Dot(earth)
	c := d.Dot(d) - e.radius*e.radius
	disc := b*b - c
	if disc <= 0 {
		// Misses: the closest approach lies outside the sphere.
		return math.Sqrt(math.Max(0, d.Dot(d)-b*b)) - e.radius, nil
	}
	root := math.Sqrt(disc)
	enter, exit := -b-root, -b+root
	if exit <= 0 {
		// The sphere is behind p.
		return -exit, nil
	}
	enter = math.Max(enter, 0)

	// Deep inside the star only the sign matters, so the potential is floored
	// to keep the search well away from the singularity at its centre.
	floor := e.level - 1
	f := func(t float64) (float64, error) {
		phi, err := potential(e.q, p.Add(earth.Scale(t)))
		if errors.Is(err, ErrDomain) {
			return floor, nil
		}
		if err != nil {
			return 0, err
		}
		return math.Max(phi, floor), nil
	}
	_, fmin, err := Minimize(f, enter, exit, e.opts.Accuracy, MaxIterations)
	if err != nil {
		return 0, errors.Wrapf(err, "sight line at phase %g", phase)
	}
	return fmin - e.level, nil
}

// Phase at which p, the star's centre and the observer line up in projection:
// the earth vector runs parallel to the star's centre minus p.
func (e *eclipser) midEclipse(p Vec) float64 {
	d := e.centre.Sub(p)
	return math.Atan2(-d.Y, d.X) / (2 * math.Pi)
}

// Eclipsed reports whether p is hidden from the observer by the chosen star at
// the given inclination (degrees) and phase.
func Eclipsed(q, incl, phase float64, p Vec, opts EclipseOptions) (bool, error) {
	if err := checkMassRatio(q); err != nil {
		return false, err
	}
	if err := checkInclination(incl); err != nil {
		return false, err
	}
	if err := opts.Validate(); err != nil {
		return false, err
	}
	e, err := newEclipser(q, opts)
	if err != nil {
		return false, err
	}
	m, err := e.margin(p, incl, phase)
	if err != nil {
		return false, err
	}
	return m < 0, nil
}

// IngressEgress returns the phases, in [0, 1), at which p disappears behind and
// reappears from the chosen star. Ingress is numerically larger than egress
// when the eclipse straddles phase 0. A point that is never eclipsed, or never
// seen, gives ErrNoEclipse.
func IngressEgress(q, incl float64, p Vec, opts EclipseOptions) (ingress, egress float64, err error) {
	if err := checkMassRatio(q); err != nil {
		return 0, 0, err
	}
	if err := checkInclination(incl); err != nil {
		return 0, 0, err
	}
	if err := opts.Validate(); err != nil {
		return 0, 0, err
	}
	e, err := newEclipser(q, opts)
	if err != nil {
		return 0, 0, err
	}
	name := traceName(e)

	f := func(phase float64) (float64, error) {
		return e.margin(p, incl, phase)
	}
	mid := e.midEclipse(p)
	m, err := f(mid)
	if err != nil {
		return 0, 0, err
	}
	tracef(name, "q = %g, i = %g, p = %v: mid-eclipse at %.6f eclipsed %s", q, incl, p, NormalizePhase(mid), traceOutcome(m < 0))
	if m >= 0 {
		return 0, 0, errors.Wrapf(ErrNoEclipse, "%v not eclipsed by %v at q = %g, i = %g", p, opts.Star, q, incl)
	}
	opposite, err := f(mid + 0.5)
	if err != nil {
		return 0, 0, err
	}
	if opposite < 0 {
		return 0, 0, errors.Wrapf(ErrNoEclipse, "%v eclipsed by %v at all phases", p, opts.Star)
	}

	ingress, err = Brent(f, mid-0.5, mid, opts.Delta, MaxIterations)
	if err != nil {
		return 0, 0, errors.Wrap(err, "ingress")
	}
	egress, err = Brent(f, mid, mid+0.5, opts.Delta, MaxIterations)
	if err != nil {
		return 0, 0, errors.Wrap(err, "egress")
	}
	ingress, egress = NormalizePhase(ingress), NormalizePhase(egress)
	tracef(name, "ingress %.7f egress %.7f", ingress, egress)
	return ingress, egress, nil
}

// Ineg is IngressEgress with the default options: the secondary filling its
// Roche lobe eclipsing p.
func Ineg(q, incl float64, p Vec) (ingress, egress float64, err error) {
	return IngressEgress(q, incl, p, DefaultEclipseOptions())
}

// FindQOptions bound the mass ratio search of FindQ.
type FindQOptions struct {
	// Accuracy of the result.
	DQ    float64 `yaml:"dq"`
	QLow  float64 `yaml:"q_low"`
	QHigh float64 `yaml:"q_high"`
	// Passed to the eclipse computation.
	Eclipse EclipseOptions `yaml:"eclipse"`
}

func DefaultFindQOptions() FindQOptions {
	return FindQOptions{
		DQ:      1e-5,
		QLow:    0.001,
		QHigh:   2,
		Eclipse: DefaultEclipseOptions(),
	}
}

func (o FindQOptions) Validate() error {
	if !(o.DQ > 0) {
		return invalidf("findq: dq = %g, must be > 0", o.DQ)
	}
	if !(o.QLow > 0 && o.QLow < o.QHigh) {
		return invalidf("findq: q range [%g, %g] is empty", o.QLow, o.QHigh)
	}
	if o.Eclipse.Star != Secondary {
		return invalidf("findq: eclipsing star must be the secondary, not the %v", o.Eclipse.Star)
	}
	return o.Eclipse.Validate()
}

// FindQ returns the mass ratio at which a point at the primary's centre is
// eclipsed for a total phase width at the given inclination. ErrBracket means
// no mass ratio in [QLow, QHigh] gives that width.
func FindQ(incl, width float64, opts FindQOptions) (float64, error) {
	if !(incl > 0 && incl <= 90) {
		return 0, invalidf("findq: inclination = %g, must be in (0, 90]", incl)
	}
	if !(width > 0 && width <= 0.25) {
		return 0, invalidf("findq: width = %g, must be in (0, 0.25]", width)
	}
	if err := opts.Validate(); err != nil {
		return 0, err
	}

	// Half way through eclipse the margin vanishes exactly at the width
	// sought; it decreases as q grows the secondary's lobe.
	half := width / 2
	f := func(q float64) (float64, error) {
		e, err := newEclipser(q, opts.Eclipse)
		if err != nil {
			return 0, err
		}
		return e.margin(Vec{}, incl, half)
	}
	q, err := Brent(f, opts.QLow, opts.QHigh, opts.DQ, MaxIterations)
	if err != nil {
		return 0, errors.Wrapf(err, "findq: width %g at i = %g", width, incl)
	}
	return q, nil
}
