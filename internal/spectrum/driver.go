// Package spectrum sizes, orders, and fills tomographic shear power spectrum
// tables by driving an external physics kernel over multipole x bin-pair
// space. The computation is all-or-nothing: any kernel failure aborts the
// whole table and the caller gets no partial output.
package spectrum

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lenskit/internal/cosmo"
	"lenskit/internal/kernel"
)

// Options tunes one computation. Workers > 1 parallelizes over multipole
// rows; the abort-on-first-kernel-error semantics are preserved (in-flight
// rows finish, no further rows start). A nil Logger disables logging.
type Options struct {
	Workers int
	Logger  *zap.Logger
}

// Compute builds a model from spec, evaluates the shear power spectrum for
// every multipole and every bin pair selected by the tomography mode, and
// returns the filled table. The model handle is released before returning on
// every path.
func Compute(ctx context.Context, k kernel.Kernel, spec kernel.ModelSpec, ell []float64, opts Options) (*Table, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	model, err := k.NewModel(spec)
	if err != nil {
		logger.Error("model construction rejected", zap.Error(err))
		return nil, &ModelError{Err: err}
	}
	defer func() {
		if cerr := model.Close(); cerr != nil {
			logger.Warn("model release failed", zap.Error(cerr))
		}
	}()

	mode := spec.Settings.Tomography
	pairs, err := Pairs(mode, spec.NzBins)
	if err != nil {
		return nil, err
	}
	table := newTable(ell, pairs)

	logger.Info("computing shear spectra",
		zap.String("tomography", mode.String()),
		zap.Int("bins", spec.NzBins),
		zap.Int("pairs", len(pairs)),
		zap.Int("multipoles", len(ell)),
		zap.Int("workers", opts.Workers))

	if opts.Workers > 1 {
		err = fillParallel(ctx, model, mode, spec.NzBins, table, opts.Workers)
	} else {
		err = fillSequential(ctx, model, mode, spec.NzBins, table)
	}
	if err != nil {
		logger.Error("shear spectrum computation aborted", zap.Error(err))
		return nil, err
	}

	logger.Info("shear spectra computed", zap.Duration("elapsed", time.Since(start)))
	return table, nil
}

func fillSequential(ctx context.Context, model kernel.Model, mode cosmo.Tomography, nbins int, table *Table) error {
	for l, ellVal := range table.Ell {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("shear spectrum computation canceled: %w", err)
		}
		if err := fillRow(model, mode, nbins, table, l, ellVal); err != nil {
			return err
		}
	}
	return nil
}

func fillParallel(ctx context.Context, model kernel.Model, mode cosmo.Tomography, nbins int, table *Table, workers int) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for l, ellVal := range table.Ell {
		l, ellVal := l, ellVal
		eg.Go(func() error {
			// A failed row (or the caller) cancels the group context;
			// rows that have not started yet bail out here. The
			// cancellation must surface as an error: a canceled
			// computation has an unfilled table and returning it as
			// success would hand out a partial buffer. Wait reports
			// the first failure, so a kernel error that triggered the
			// cancellation still wins over these.
			if err := egCtx.Err(); err != nil {
				return fmt.Errorf("shear spectrum computation canceled: %w", err)
			}
			return fillRow(model, mode, nbins, table, l, ellVal)
		})
	}
	return eg.Wait()
}

// fillRow writes one multipole row. Rows touch disjoint slices of the flat
// buffer, so parallel rows need no synchronization.
func fillRow(model kernel.Model, mode cosmo.Tomography, nbins int, table *Table, l int, ellVal float64) error {
	row := table.Row(l)
	return ForEachPair(mode, nbins, func(idx, i, j int) error {
		v, err := model.Pshear(ellVal, i, j)
		if err != nil {
			return &ComputeError{Ell: ellVal, I: i, J: j, Err: err}
		}
		row[idx] = v
		return nil
	})
}
