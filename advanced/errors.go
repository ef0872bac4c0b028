package advanced

import "github.com/pkg/errors"

// Failure kinds. Every error returned by this package wraps exactly one of
// these, so callers can tell bad input from numerical trouble with errors.Is.
var (
	// The evaluation point coincides with one of the point masses.
	ErrDomain = errors.New("point coincides with a point mass")
	// A root finding interval has no sign change.
	ErrBracket = errors.New("root is not bracketed")
	// An iterative method ran out of iterations or step size.
	ErrConvergence = errors.New("iteration did not converge")
	// The requested turning point or stream event was never reached.
	ErrNotFound = errors.New("not found")
	// The point is not eclipsed, or never leaves eclipse.
	ErrNoEclipse = errors.New("point is not eclipsed")
	// An argument is out of its documented range.
	ErrInvalidArgument = errors.New("invalid argument")
)

func checkMassRatio(q float64) error {
	if !(q > 0) || !isFinite(q) {
		return errors.Wrapf(ErrInvalidArgument, "q = %g, must be > 0", q)
	}
	return nil
}

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
