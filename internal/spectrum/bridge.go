package spectrum

import (
	"context"

	"lenskit/internal/cosmo"
	"lenskit/internal/kernel"
)

// ShearPowerSpectrum is the flat bridge entry point matching the toolkit's
// calling convention: the cosmological scalars, the bin count, the multipole
// array, the per-bin parameter counts, the per-bin distribution type tags,
// the concatenated auxiliary parameters, the raw settings mapping, and one
// reserved argument that is accepted and ignored.
//
// It validates the distributions and settings, builds the model, drives the
// computation, and returns the (len(ell) x Nz) table. Validation failures
// surface before any model is constructed; kernel failures abort the whole
// computation with no partial output.
func ShearPowerSpectrum(
	ctx context.Context,
	k kernel.Kernel,
	params cosmo.Parameters,
	nzbins int,
	ell []float64,
	nnz []int32,
	distTypes []string,
	parNz []float64,
	settings map[string]any,
	extra any,
	opts Options,
) (*Table, error) {
	_ = extra // reserved

	dists, err := cosmo.ParseDistributions(nzbins, distTypes, nnz, parNz)
	if err != nil {
		return nil, err
	}
	resolved, err := cosmo.ResolveSettings(settings)
	if err != nil {
		return nil, err
	}

	spec := kernel.ModelSpec{
		Params:        params,
		NzBins:        nzbins,
		Nnz:           nnz,
		Distributions: dists,
		ParNz:         parNz,
		Settings:      resolved,
	}
	return Compute(ctx, k, spec, ell, opts)
}
