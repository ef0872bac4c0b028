package advanced

import "github.com/pkg/errors"

// Numerical state that goes non-finite deep inside an integration or a solver
// callback is a broken invariant rather than a bad input, and threading it
// through every callback signature would add a lot of noise. Instead we panic,
// and the public API recovers to convert to an error.

// The panic value raised by fatalf. Only these are recovered; anything else,
// runtime errors included, keeps unwinding.
type rocheError struct {
	error
}

// Panic with an ErrConvergence.
func fatalf(format string, args ...interface{}) {
	panic(rocheError{errors.Wrapf(ErrConvergence, format, args...)})
}

func HandleRochePanicRecover(r interface{}) error {
	if r != nil {
		if re, ok := r.(rocheError); ok {
			return re.error
		}
		panic(r)
	}
	return nil
}
