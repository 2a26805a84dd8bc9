package spectrum

import (
	"errors"
	"fmt"
)

// ErrEmptyComputation is returned when the tomography mode selects zero bin
// pairs (cross-only with a single bin).
var ErrEmptyComputation = errors.New("nothing to compute: tomo_cross_only with a single redshift bin")

// ModelError reports that the kernel rejected the model parameters.
type ModelError struct {
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model construction failed: %v", e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// ComputeError reports a kernel-internal numerical failure at one point of
// the multipole x bin-pair loop. The computation it belongs to produced no
// output.
type ComputeError struct {
	Ell  float64
	I, J int
	Err  error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("shear spectrum failed at ell=%g bins(%d,%d): %v", e.Ell, e.I, e.J, e.Err)
}

func (e *ComputeError) Unwrap() error { return e.Err }
