package kernel

import (
	"errors"
	"fmt"
	"math"
)

// Synthetic is a deterministic stand-in for the external physics kernel. It
// evaluates a closed-form pseudo-spectrum (a tilted power law shaped by the
// resolved settings and per-bin redshift weights) so that the full bridge
// pipeline can run and be tested without the native kernel. It computes no
// real lensing physics.
type Synthetic struct{}

// NewSynthetic returns the built-in synthetic kernel.
func NewSynthetic() *Synthetic {
	return &Synthetic{}
}

// NewModel validates the parameter ranges the native kernel would reject and
// precomputes per-bin weights from the redshift descriptors.
func (k *Synthetic) NewModel(spec ModelSpec) (Model, error) {
	p := spec.Params
	switch {
	case p.OmegaM <= 0:
		return nil, fmt.Errorf("synthetic kernel: Omega_m must be positive, got %g", p.OmegaM)
	case p.H100 <= 0:
		return nil, fmt.Errorf("synthetic kernel: H100 must be positive, got %g", p.H100)
	case p.Sigma8 <= 0:
		return nil, fmt.Errorf("synthetic kernel: sigma8 must be positive, got %g", p.Sigma8)
	case spec.NzBins < 1:
		return nil, fmt.Errorf("synthetic kernel: need at least one redshift bin, got %d", spec.NzBins)
	case len(spec.Distributions) != spec.NzBins:
		return nil, fmt.Errorf("synthetic kernel: %d distributions for %d bins", len(spec.Distributions), spec.NzBins)
	}

	// Per-bin lensing weight from the mean of the bin's auxiliary
	// parameters. The exact form is arbitrary; it only has to be
	// deterministic and bin-dependent.
	weights := make([]float64, spec.NzBins)
	offset := 0
	for i := 0; i < spec.NzBins; i++ {
		n := int(spec.Nnz[i])
		zbar := 1.0
		if n > 0 {
			sum := 0.0
			for _, v := range spec.ParNz[offset : offset+n] {
				sum += v
			}
			zbar = sum / float64(n)
		}
		offset += n
		weights[i] = math.Sqrt(math.Abs(zbar) + 0.1)
	}

	amp := p.Sigma8 * p.Sigma8 * p.OmegaM
	boost := 1.0 + 0.05*float64(spec.Settings.Nonlinear)

	return &syntheticModel{
		amp:     amp * boost,
		tilt:    p.Ns - 2.0,
		weights: weights,
	}, nil
}

type syntheticModel struct {
	amp     float64
	tilt    float64
	weights []float64
	closed  bool
}

func (m *syntheticModel) Pshear(ell float64, i, j int) (float64, error) {
	if m.closed {
		return 0, errors.New("synthetic kernel: model used after Close")
	}
	if i < 0 || i >= len(m.weights) || j < 0 || j >= len(m.weights) {
		return 0, fmt.Errorf("synthetic kernel: bin pair (%d,%d) out of range", i, j)
	}
	if ell <= 0 {
		return 0, fmt.Errorf("synthetic kernel: multipole must be positive, got %g", ell)
	}
	return m.amp * m.weights[i] * m.weights[j] * math.Pow(ell/1000.0, m.tilt), nil
}

func (m *syntheticModel) Close() error {
	if m.closed {
		return errors.New("synthetic kernel: model closed twice")
	}
	m.closed = true
	return nil
}
