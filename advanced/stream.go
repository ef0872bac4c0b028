package advanced

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// DefaultKick is the displacement from L1 used to start the stream when the
// caller asks for none. L1 is an equilibrium, so a particle placed exactly on
// it never leaves.
const DefaultKick = 1e-5

// StreamConfig controls ballistic stream integration.
type StreamConfig struct {
	// Displacement from L1 along the unstable direction. 0 selects
	// DefaultKick.
	Kick float64 `yaml:"kick"`
	// Arc length between successive samples.
	Step float64 `yaml:"step"`
	// Relative accuracy of the integrator.
	Accuracy float64 `yaml:"accuracy"`
	// Integration stops when the particle comes this close to either star.
	MinRadius float64 `yaml:"min_radius"`
	// Integration stops when the particle is this far from the centre of mass.
	MaxRadius float64 `yaml:"max_radius"`
	MaxSteps  int     `yaml:"max_steps"`
}

func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		Kick:      DefaultKick,
		Step:      0.01,
		Accuracy:  1e-9,
		MinRadius: 1e-3,
		MaxRadius: 5,
		MaxSteps:  1000000,
	}
}

func (c StreamConfig) Validate() error {
	switch {
	case c.Kick < 0 || c.Kick >= 0.1:
		return invalidf("stream: kick = %g, must be in [0, 0.1)", c.Kick)
	case !(c.Step > 0 && c.Step < 1):
		return invalidf("stream: step = %g, must be in (0, 1)", c.Step)
	case !(c.Accuracy > 0 && c.Accuracy <= 0.1):
		return invalidf("stream: accuracy = %g, must be in (0, 0.1]", c.Accuracy)
	case c.MinRadius <= 0:
		return invalidf("stream: min radius = %g, must be > 0", c.MinRadius)
	case c.MaxRadius <= 1:
		return invalidf("stream: max radius = %g, must be > 1", c.MaxRadius)
	case c.MaxSteps < 1:
		return invalidf("stream: max steps = %d, must be >= 1", c.MaxSteps)
	}
	return nil
}

// Termination records why a stream integration ended.
type Termination int

const (
	// All requested samples were produced.
	Completed Termination = iota
	// The particle came within MinRadius of the primary.
	HitPrimary
	// The particle came within MinRadius of the secondary.
	HitSecondary
	// The particle went beyond MaxRadius.
	Escaped
)

func (t Termination) String() string {
	switch t {
	case Completed:
		return "completed"
	case HitPrimary:
		return "hit primary"
	case HitSecondary:
		return "hit secondary"
	case Escaped:
		return "escaped"
	}
	return "unknown"
}

// StreamSample is one point along the stream. Velocity is in the co-rotating
// frame.
type StreamSample struct {
	Time     float64
	Distance float64
	Position Vec
	Velocity Vec
}

// Trajectory is a time ordered sequence of stream samples starting next to
// L1, equally spaced in arc length.
type Trajectory struct {
	Q           float64
	Samples     []StreamSample
	Termination Termination
}

func (t *Trajectory) Len() int {
	return len(t.Samples)
}

// Positions returns the sample positions as a 2xN curve.
func (t *Trajectory) Positions() *Curve {
	points := make([]Vec, len(t.Samples))
	for i, s := range t.Samples {
		points[i] = s.Position
	}
	return newCurveFromPoints(points)
}

// Velocities returns the sample velocities transformed to frame as a 2xN
// curve.
func (t *Trajectory) Velocities(frame VelocityFrame) (*Curve, error) {
	points := make([]Vec, len(t.Samples))
	for i, s := range t.Samples {
		v, err := VelocityTransform(t.Q, frame, s.Position, s.Velocity)
		if err != nil {
			return nil, err
		}
		points[i] = v
	}
	return newCurveFromPoints(points), nil
}

// StreamStart returns the initial position and co-rotating velocity of the
// stream: L1 displaced by kick along the unstable eigenvector of the motion
// linearised about L1, toward the primary, moving away from L1 at the
// eigenvector's growth rate.
func StreamStart(q, kick float64) (r, v Vec, err error) {
	if err := checkMassRatio(q); err != nil {
		return Vec{}, Vec{}, err
	}
	if kick < 0 || kick >= 0.1 {
		return Vec{}, Vec{}, invalidf("stream: kick = %g, must be in [0, 0.1)", kick)
	}
	if kick == 0 {
		kick = DefaultKick
	}
	xl1, err := XL1(q)
	if err != nil {
		return Vec{}, Vec{}, err
	}
	h, err := hessian(q, Vec{X: xl1})
	if err != nil {
		return Vec{}, Vec{}, err
	}

	// Solutions ∝ exp(λt) of
	//   ẍ = -Φxx x + 2ẏ,  ÿ = -Φyy y - 2ẋ
	// satisfy λ⁴ + (Φxx + Φyy + 4)λ² + ΦxxΦyy = 0. L1 is a saddle, so
	// ΦxxΦyy < 0 and exactly one root for λ² is positive.
	pxx, pyy := h.At(0, 0), h.At(1, 1)
	b := pxx + pyy + 4
	c := pxx * pyy
	lambda2 := (-b + math.Sqrt(b*b-4*c)) / 2
	if !(lambda2 > 0) {
		return Vec{}, Vec{}, errors.Wrapf(ErrConvergence, "stream: L1 is not a saddle for q = %g", q)
	}
	lambda := math.Sqrt(lambda2)

	direction := Vec{X: -1, Y: -(lambda2 + pxx) / (2 * lambda)}
	direction = direction.Scale(1 / direction.Norm())
	r = Vec{X: xl1}.Add(direction.Scale(kick))
	v = direction.Scale(kick * lambda)
	return r, v, nil
}

// Events that end any stream integration, indexed by Termination - 1.
func stopEvents(q float64, cfg StreamConfig) []event {
	_, mu2 := masses(q)
	return []event{
		{fn: func(y state) float64 { return y.position().Norm() - cfg.MinRadius }, direction: -1},
		{fn: func(y state) float64 { return y.position().Sub(Vec{X: 1}).Norm() - cfg.MinRadius }, direction: -1},
		{fn: func(y state) float64 { return y.position().Sub(Vec{X: mu2}).Norm() - cfg.MaxRadius }, direction: 1},
	}
}

// Radial velocity relative to the primary, up to a factor of r.
func radialRate(y state) float64 {
	return y.position().Dot(y.velocity())
}

func sampleOf(it *integrator) StreamSample {
	return StreamSample{
		Time:     it.t,
		Distance: it.y.distance(),
		Position: it.y.position(),
		Velocity: it.y.velocity(),
	}
}

// Stream integrates the gas stream from L1 with the default configuration and
// the given kick, returning up to n samples 0.01 apart in arc length.
func Stream(q, kick float64, n int) (*Trajectory, error) {
	cfg := DefaultStreamConfig()
	cfg.Kick = kick
	return StreamWithConfig(q, n, cfg)
}

// StreamWithConfig integrates the ballistic trajectory of a particle leaving
// L1 under gravity from both stars plus the Coriolis and centrifugal forces,
// sampling it every cfg.Step in arc length. The first sample is the start
// state. If the particle reaches a star or escapes first, the trajectory
// holds fewer than n samples and Termination says why.
func StreamWithConfig(q float64, n int, cfg StreamConfig) (*Trajectory, error) {
	if err := checkMassRatio(q); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, invalidf("stream: n = %d, must be >= 2", n)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r, v, err := StreamStart(q, cfg.Kick)
	if err != nil {
		return nil, err
	}

	it := newIntegrator(q, r, v, cfg.Accuracy, cfg.MaxSteps)
	traj := &Trajectory{Q: q, Samples: make([]StreamSample, 0, n)}
	traj.Samples = append(traj.Samples, sampleOf(it))

	stops := stopEvents(q, cfg)
	for len(traj.Samples) < n {
		target := float64(len(traj.Samples)) * cfg.Step
		arc := event{fn: func(y state) float64 { return y.distance() - target }, direction: 1}
		fired, err := it.until(append(stops, arc)...)
		if err != nil {
			return nil, errors.Wrapf(err, "stream sample %d of %d", len(traj.Samples), n)
		}
		if fired < len(stops) {
			traj.Termination = Termination(fired + 1)
			tracef(it.name, "stream stopped after %d samples: %v", len(traj.Samples), traj.Termination)
			break
		}
		traj.Samples = append(traj.Samples, sampleOf(it))
	}
	return traj, nil
}

// VStream is the velocity space companion of Stream: the inertial velocities
// of the same n samples. A stream that ends before n samples is an error here
// since a bare curve cannot say why it is short.
func VStream(q, kick float64, n int) (*Curve, error) {
	cfg := DefaultStreamConfig()
	cfg.Kick = kick
	return vstream(q, n, cfg, Inertial)
}

// VStreamFrame samples the stream every step in arc length and returns its
// velocities transformed to frame.
func VStreamFrame(q, step float64, frame VelocityFrame, n int) (*Curve, error) {
	if !frame.Valid() {
		return nil, invalidf("vstream: velocity frame %d, must be 1 or 2", frame)
	}
	cfg := DefaultStreamConfig()
	cfg.Step = step
	return vstream(q, n, cfg, frame)
}

func vstream(q float64, n int, cfg StreamConfig, frame VelocityFrame) (*Curve, error) {
	traj, err := StreamWithConfig(q, n, cfg)
	if err != nil {
		return nil, err
	}
	if traj.Termination != Completed {
		return nil, errors.Wrapf(ErrNotFound, "vstream: stream %v after %d of %d samples", traj.Termination, traj.Len(), n)
	}
	return traj.Velocities(frame)
}

// StreamRadius returns n points along the stream equally spaced in distance
// from the primary, from L1 down to rad. It fails with ErrNotFound if the
// stream swings back out before getting as close as rad.
func StreamRadius(q, rad float64, n int) (*Curve, error) {
	if err := checkMassRatio(q); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, invalidf("stream: n = %d, must be >= 2", n)
	}
	xl1, err := XL1(q)
	if err != nil {
		return nil, err
	}
	if !(rad >= 0 && rad < xl1) {
		return nil, invalidf("stream: rad = %g, must be in [0, %g)", rad, xl1)
	}

	cfg := DefaultStreamConfig()
	r, v, err := StreamStart(q, cfg.Kick)
	if err != nil {
		return nil, err
	}
	it := newIntegrator(q, r, v, cfg.Accuracy, cfg.MaxSteps)

	radii := floats.Span(make([]float64, n), xl1, rad)
	points := make([]Vec, n)
	points[0] = Vec{X: xl1}
	// Leaving L1 the particle falls toward the primary until its first
	// turning point.
	periastron := event{fn: radialRate, direction: 1}
	for i := 1; i < n; i++ {
		target := radii[i]
		if it.y.position().Norm() <= target {
			// Only possible within the kick of L1.
			points[i] = it.y.position()
			continue
		}
		inward := event{fn: func(y state) float64 { return y.position().Norm() - target }, direction: -1}
		fired, err := it.until(inward, periastron)
		if err != nil {
			return nil, errors.Wrapf(err, "stream to radius %g", target)
		}
		if fired == 1 {
			return nil, errors.Wrapf(ErrNotFound, "stream turns at r = %g before reaching %g", it.y.position().Norm(), target)
		}
		points[i] = it.y.position()
	}
	return newCurveFromPoints(points), nil
}

// TurningPoint is a local extremum of the stream's distance from the primary.
type TurningPoint struct {
	// 1 for the first turning point.
	N int
	// Odd turning points are minima (closest approach), even ones maxima.
	Minimum  bool
	Radius   float64
	Time     float64
	Distance float64
	Position Vec
	// Co-rotating frame velocity.
	Velocity Vec
	// Inertial velocity of the stream.
	Inertial Vec
	// Keplerian disc velocity at the same position.
	Disc Vec
}

// Strmnx finds the n-th turning point of the stream in distance from the
// primary, integrating with relative accuracy acc. It fails with ErrNotFound
// if the stream hits a star or escapes before then.
func Strmnx(q float64, n int, acc float64) (TurningPoint, error) {
	if err := checkMassRatio(q); err != nil {
		return TurningPoint{}, err
	}
	if n < 1 {
		return TurningPoint{}, invalidf("strmnx: n = %d, must be >= 1", n)
	}
	if !(acc > 0 && acc <= 0.1) {
		return TurningPoint{}, invalidf("strmnx: acc = %g, must be in (0, 0.1]", acc)
	}

	cfg := DefaultStreamConfig()
	r, v, err := StreamStart(q, cfg.Kick)
	if err != nil {
		return TurningPoint{}, err
	}
	it := newIntegrator(q, r, v, acc, cfg.MaxSteps)
	stops := stopEvents(q, cfg)

	// Minima turn radial motion from inward to outward, maxima the reverse.
	direction := 1
	for k := 1; k <= n; k++ {
		turn := event{fn: radialRate, direction: direction}
		fired, err := it.until(append(stops, turn)...)
		if err != nil {
			return TurningPoint{}, errors.Wrapf(err, "turning point %d", k)
		}
		if fired < len(stops) {
			return TurningPoint{}, errors.Wrapf(ErrNotFound, "stream %v before turning point %d", Termination(fired+1), k)
		}
		direction = -direction
	}

	pos, vel := it.y.position(), it.y.velocity()
	inertial, err := VelocityTransform(q, Inertial, pos, vel)
	if err != nil {
		return TurningPoint{}, err
	}
	disc, err := VelocityTransform(q, Disc, pos, vel)
	if err != nil {
		return TurningPoint{}, err
	}
	return TurningPoint{
		N:        n,
		Minimum:  n%2 == 1,
		Radius:   pos.Norm(),
		Time:     it.t,
		Distance: it.y.distance(),
		Position: pos,
		Velocity: vel,
		Inertial: inertial,
		Disc:     disc,
	}, nil
}

// VelocityTransform maps a co-rotating position and velocity to velocity
// space. Inertial adds the frame rotation about the centre of mass; Disc
// ignores v and gives the velocity of a Keplerian disc around the primary at
// r's position in the orbital plane.
func VelocityTransform(q float64, frame VelocityFrame, r, v Vec) (Vec, error) {
	mu1, mu2 := masses(q)
	switch frame {
	case Inertial:
		return Vec{X: v.X - r.Y, Y: v.Y + r.X - mu2}, nil
	case Disc:
		rad := math.Hypot(r.X, r.Y)
		if rad == 0 {
			return Vec{}, errors.Wrap(ErrDomain, "disc velocity at the primary")
		}
		speed := math.Sqrt(mu1 / rad)
		return Vec{X: -speed * r.Y / rad, Y: speed*r.X/rad - mu2}, nil
	}
	return Vec{}, invalidf("velocity frame %d, must be 1 or 2", frame)
}
