// Roche geometry of close binary stars for Go.
//
// This package computes the Lagrange points, Roche lobes and gas stream of a
// binary of mass ratio q = M2/M1 in the frame co-rotating with the orbit, as
// well as the phases at which points near the primary are eclipsed by the
// secondary. Lengths are in units of the binary separation, with the primary
// at the origin and the secondary at (1, 0, 0). Curves can also be had in
// velocity space, for comparison with Doppler maps.
//
// Package advanced exposes the numerical machinery underneath.
package roche

import "github.com/StuartLittlefair/trm-roche/advanced"

type Vec = advanced.Vec
type Point = advanced.Point
type Curve = advanced.Curve
type Star = advanced.Star
type VelocityFrame = advanced.VelocityFrame
type Trajectory = advanced.Trajectory
type TurningPoint = advanced.TurningPoint
type EclipseOptions = advanced.EclipseOptions

const (
	Primary   = advanced.Primary
	Secondary = advanced.Secondary
	Inertial  = advanced.Inertial
	Disc      = advanced.Disc
)

// Error kinds, for use with errors.Is.
var (
	ErrDomain          = advanced.ErrDomain
	ErrBracket         = advanced.ErrBracket
	ErrConvergence     = advanced.ErrConvergence
	ErrNotFound        = advanced.ErrNotFound
	ErrNoEclipse       = advanced.ErrNoEclipse
	ErrInvalidArgument = advanced.ErrInvalidArgument
)

// Potential returns the Roche potential at p.
func Potential(q float64, p Vec) (float64, error) {
	return advanced.Potential(q, p)
}

// Xl1 returns the x coordinate of the inner Lagrange point, between the stars.
func Xl1(q float64) (float64, error) {
	return advanced.XL1(q)
}

// Xl2 returns the x coordinate of the L2 point, beyond the secondary.
func Xl2(q float64) (float64, error) {
	return advanced.XL2(q)
}

// Xl3 returns the x coordinate of the L3 point, beyond the primary.
func Xl3(q float64) (float64, error) {
	return advanced.XL3(q)
}

func L4(q float64) (Vec, error) {
	return advanced.L4(q)
}

func L5(q float64) (Vec, error) {
	return advanced.L5(q)
}

// Lobe1 returns n points around the primary's Roche lobe in the orbital plane,
// starting and ending at L1.
func Lobe1(q float64, n int) (*Curve, error) {
	return advanced.Lobe1(q, n)
}

// Lobe2 returns n points around the secondary's Roche lobe in the orbital
// plane, starting and ending at L1.
func Lobe2(q float64, n int) (*Curve, error) {
	return advanced.Lobe2(q, n)
}

// VLobe1 is Lobe1 in velocity space.
func VLobe1(q float64, n int) (*Curve, error) {
	return advanced.VLobe1(q, n)
}

// VLobe2 is Lobe2 in velocity space.
func VLobe2(q float64, n int) (*Curve, error) {
	return advanced.VLobe2(q, n)
}

// Stream integrates the gas stream leaving L1, returning n points spaced
// equally in distance along it. kick = 0 picks a small default displacement
// from L1 to get the stream going.
func Stream(q, kick float64, n int) (result *Trajectory, err error) {
	defer func() {
		recoveredErr := advanced.HandleRochePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return advanced.Stream(q, kick, n)
}

// VStream is Stream in velocity space.
func VStream(q, kick float64, n int) (result *Curve, err error) {
	defer func() {
		recoveredErr := advanced.HandleRochePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return advanced.VStream(q, kick, n)
}

// Strmnx returns the n-th point at which the stream is closest to or furthest
// from the primary, starting with the closest.
func Strmnx(q float64, n int, acc float64) (result TurningPoint, err error) {
	defer func() {
		recoveredErr := advanced.HandleRochePanicRecover(recover())
		if recoveredErr != nil {
			result = TurningPoint{}
			err = recoveredErr
		}
	}()
	return advanced.Strmnx(q, n, acc)
}

// Ineg returns the ingress and egress phases of p behind the secondary at
// inclination incl in degrees.
func Ineg(q, incl float64, p Vec) (ingress, egress float64, err error) {
	return advanced.Ineg(q, incl, p)
}

// Fblink reports whether p is hidden by the secondary at the given phase.
func Fblink(q, incl, phase float64, p Vec) (bool, error) {
	return advanced.Eclipsed(q, incl, phase, p, advanced.DefaultEclipseOptions())
}

// FindQ returns the mass ratio that gives an eclipse of the primary's centre
// lasting width in phase at inclination incl.
func FindQ(incl, width float64) (float64, error) {
	return advanced.FindQ(incl, width, advanced.DefaultFindQOptions())
}
