package grid

import "golang.org/x/sync/errgroup"

// DepositParallel splits the particles into contiguous chunks, deposits each
// chunk into a private partial grid, and sums the partials into buf. The
// result is identical to Deposit: counts are unit increments, so float32
// addition order cannot change the sums within exact integer range.
func DepositParallel(positions []float32, origin, cellSize [3]float64, dims [3]int, buf []float32, workers int) {
	checkContracts(positions, dims, buf)
	npart := len(positions) / 3
	if workers < 2 || npart < workers {
		deposit(positions, origin, cellSize, dims, buf)
		return
	}

	partials := make([][]float32, workers)
	chunk := (npart + workers - 1) / workers

	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		hi := min(lo+chunk, npart)
		if lo >= hi {
			break
		}
		partials[w] = make([]float32, len(buf))
		eg.Go(func() error {
			deposit(positions[3*lo:3*hi], origin, cellSize, dims, partials[w])
			return nil
		})
	}
	_ = eg.Wait()

	for _, partial := range partials {
		if partial == nil {
			continue
		}
		for c, v := range partial {
			buf[c] += v
		}
	}
}
