package advanced

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHandleRochePanicRecover(t *testing.T) {
	testFn := func(shouldThrow bool, panicWith interface{}) (err error) {
		defer func() {
			recoveredErr := HandleRochePanicRecover(recover())
			if recoveredErr != nil {
				err = recoveredErr
			}
		}()

		if shouldThrow {
			fatalf("state went non-finite at t = %g", 1.5)
		}

		if panicWith != nil {
			panic(panicWith)
		}

		return nil
	}

	t.Run("with throw", func(t *testing.T) {
		err := testFn(true, nil)
		assert.EqualError(t, err, "state went non-finite at t = 1.5: iteration did not converge")
		assert.True(t, errors.Is(err, ErrConvergence))
	})

	t.Run("with real panic", func(t *testing.T) {
		assert.Panics(t, func() {
			testFn(false, "true panic")
		})
	})

	t.Run("with error panic", func(t *testing.T) {
		assert.Panics(t, func() {
			testFn(false, fmt.Errorf("not ours"))
		})
	})

	t.Run("with runtime error", func(t *testing.T) {
		assert.Panics(t, func() {
			func() (err error) {
				defer func() {
					if recoveredErr := HandleRochePanicRecover(recover()); recoveredErr != nil {
						err = recoveredErr
					}
				}()
				var v *Vec
				return fmt.Errorf("%g", v.X)
			}()
		})
	})

	t.Run("no error", func(t *testing.T) {
		err := testFn(false, nil)
		assert.NoError(t, err)
	})
}
