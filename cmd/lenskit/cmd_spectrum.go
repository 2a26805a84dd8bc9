package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lenskit/internal/config"
	"lenskit/internal/spectrum"
)

var (
	spectrumConfigPath string
	spectrumOutPath    string
	spectrumWorkers    int
)

var spectrumCmd = &cobra.Command{
	Use:   "spectrum",
	Short: "Compute a tomographic shear power spectrum table",
	Long: `Loads a run configuration, builds a cosmological model through the
configured kernel, computes the shear power spectrum for every multipole and
redshift bin pair, and writes the table as CSV (one row per multipole, one
column per bin pair).`,
	RunE: runSpectrum,
}

func init() {
	spectrumCmd.Flags().StringVarP(&spectrumConfigPath, "config", "c", "lenskit.yaml", "run configuration file")
	spectrumCmd.Flags().StringVarP(&spectrumOutPath, "out", "o", "", "output CSV path (default stdout)")
	spectrumCmd.Flags().IntVar(&spectrumWorkers, "workers", 1, "parallel multipole rows (1 = sequential)")
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(spectrumConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	spec, err := cfg.BuildSpec()
	if err != nil {
		return err
	}
	k, err := cfg.NewKernel()
	if err != nil {
		return err
	}

	table, err := spectrum.Compute(cmd.Context(), k, spec, cfg.Ell(), spectrum.Options{
		Workers: spectrumWorkers,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	out := os.Stdout
	if spectrumOutPath != "" {
		f, err := os.Create(spectrumOutPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := writeTableCSV(out, table); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	if spectrumOutPath != "" {
		logger.Info("spectrum table written",
			zap.String("path", spectrumOutPath),
			zap.Int("multipoles", table.NumEll()),
			zap.Int("pairs", table.NumPairs()))
	}
	return nil
}

// writeTableCSV writes the table with an ell column followed by one column
// per bin pair, named cl_i_j in enumeration order.
func writeTableCSV(f io.Writer, table *spectrum.Table) error {
	w := csv.NewWriter(f)

	header := make([]string, 0, 1+table.NumPairs())
	header = append(header, "ell")
	for _, pair := range table.Pairs {
		header = append(header, fmt.Sprintf("cl_%d_%d", pair[0], pair[1]))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, 1+table.NumPairs())
	for l, ell := range table.Ell {
		record[0] = strconv.FormatFloat(ell, 'g', -1, 64)
		for p, v := range table.Row(l) {
			record[p+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
