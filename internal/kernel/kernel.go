// Package kernel defines the boundary to the cosmological physics kernel that
// evaluates tomographic shear power spectra. The bridge validates inputs and
// drives the computation loop; the spectrum formula itself lives behind the
// Kernel interface.
package kernel

import "lenskit/internal/cosmo"

// ModelSpec carries the validated inputs for a model constructor. Nnz and
// ParNz are laid out exactly as parsed: one count per bin, parameters
// concatenated across bins. The intrinsic alignment contribution is fixed to
// none; it is not part of the bridge surface.
type ModelSpec struct {
	Params        cosmo.Parameters
	NzBins        int
	Nnz           []int32
	Distributions []cosmo.Distribution
	ParNz         []float64
	Settings      cosmo.Settings
}

// Kernel constructs models from validated specs.
type Kernel interface {
	// NewModel builds an opaque model handle. The caller becomes the
	// exclusive owner and must release it exactly once via Close.
	NewModel(spec ModelSpec) (Model, error)
}

// Model is an opaque handle over the kernel's internal state for one
// cosmology. It is valid until Close is called.
type Model interface {
	// Pshear evaluates the shear power spectrum at multipole ell for the
	// redshift bin pair (i, j). A returned error is a kernel-internal
	// numerical failure; callers must abort the computation.
	Pshear(ell float64, i, j int) (float64, error)

	// Close releases the handle. Calling it more than once is a bug.
	Close() error
}
