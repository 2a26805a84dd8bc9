package cosmo

import "fmt"

// ParseDistributions resolves the per-bin distribution type tags for a
// tomographic redshift setup. types holds one tag per bin; nnz holds the
// per-bin auxiliary parameter counts and parNz the concatenated parameters,
// which are passed through to the kernel untouched.
//
// Length preconditions are caller contracts, not input validation: the
// function panics when len(types) or len(nnz) disagrees with nzbins, or when
// sum(nnz) disagrees with len(parNz). An unrecognized tag aborts parsing at
// the first offending bin.
func ParseDistributions(nzbins int, types []string, nnz []int32, parNz []float64) ([]Distribution, error) {
	if nzbins < 1 {
		panic(fmt.Sprintf("cosmo: nzbins must be >= 1, got %d", nzbins))
	}
	if len(types) != nzbins {
		panic(fmt.Sprintf("cosmo: %d distribution tags for %d bins", len(types), nzbins))
	}
	if len(nnz) != nzbins {
		panic(fmt.Sprintf("cosmo: %d parameter counts for %d bins", len(nnz), nzbins))
	}
	total := 0
	for _, n := range nnz {
		total += int(n)
	}
	if total != len(parNz) {
		panic(fmt.Sprintf("cosmo: parameter counts sum to %d but %d parameters given", total, len(parNz)))
	}

	dists := make([]Distribution, nzbins)
	for i, tag := range types {
		d, err := ParseDistribution(tag)
		if err != nil {
			return nil, &UnrecognizedOptionError{Key: fmt.Sprintf("nofz[%d]", i), Value: tag}
		}
		dists[i] = d
	}
	return dists, nil
}

// BinParams returns the slice of parNz belonging to bin i, given the per-bin
// counts. It is a view, not a copy.
func BinParams(nnz []int32, parNz []float64, i int) []float64 {
	offset := 0
	for b := 0; b < i; b++ {
		offset += int(nnz[b])
	}
	return parNz[offset : offset+int(nnz[i])]
}
