package spectrum

import (
	"fmt"

	"lenskit/internal/cosmo"
)

// PairCount returns the number of independent redshift bin pairs for a
// tomography mode. Cross-only with a single bin has no off-diagonal pairs and
// fails with ErrEmptyComputation.
func PairCount(mode cosmo.Tomography, nbins int) (int, error) {
	if nbins < 1 {
		panic(fmt.Sprintf("spectrum: nbins must be >= 1, got %d", nbins))
	}
	switch mode {
	case cosmo.TomoAutoOnly:
		return nbins, nil
	case cosmo.TomoCrossOnly:
		n := nbins * (nbins - 1) / 2
		if n == 0 {
			return 0, ErrEmptyComputation
		}
		return n, nil
	case cosmo.TomoAll:
		return nbins * (nbins + 1) / 2, nil
	default:
		panic(fmt.Sprintf("spectrum: unknown tomography mode %d", int(mode)))
	}
}

// ForEachPair enumerates the bin pairs of a tomography mode in their flat
// output order, calling fn with the running pair index and the bin pair.
// This is the single source of truth for pair ordering: both output sizing
// and the fill loop go through it, so the flat buffer layout cannot drift.
//
// Ordering: auto-only visits (i,i) for i in [0,nbins); cross-only and all
// enumerate the upper triangle row-major, excluding respectively including
// the diagonal. fn returning an error stops the enumeration.
func ForEachPair(mode cosmo.Tomography, nbins int, fn func(idx, i, j int) error) error {
	switch mode {
	case cosmo.TomoAutoOnly:
		for i := 0; i < nbins; i++ {
			if err := fn(i, i, i); err != nil {
				return err
			}
		}
	case cosmo.TomoCrossOnly:
		idx := 0
		for i := 0; i < nbins; i++ {
			for j := i + 1; j < nbins; j++ {
				if err := fn(idx, i, j); err != nil {
					return err
				}
				idx++
			}
		}
	case cosmo.TomoAll:
		idx := 0
		for i := 0; i < nbins; i++ {
			for j := i; j < nbins; j++ {
				if err := fn(idx, i, j); err != nil {
					return err
				}
				idx++
			}
		}
	default:
		panic(fmt.Sprintf("spectrum: unknown tomography mode %d", int(mode)))
	}
	return nil
}

// Pairs materializes the pair order as a slice of (i,j) bin pairs.
func Pairs(mode cosmo.Tomography, nbins int) ([][2]int, error) {
	n, err := PairCount(mode, nbins)
	if err != nil {
		return nil, err
	}
	pairs := make([][2]int, n)
	_ = ForEachPair(mode, nbins, func(idx, i, j int) error {
		pairs[idx] = [2]int{i, j}
		return nil
	})
	return pairs, nil
}
