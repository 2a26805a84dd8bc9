// lenskit bridges a weak lensing analysis toolkit to a cosmological physics
// kernel: it validates run configurations, computes tomographic shear power
// spectra, and deposits N-body particle positions onto density grids.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lenskit",
	Short: "Tomographic shear spectra and grid deposition for lensing pipelines",
	Long: `lenskit is the native bridge of a weak lensing analysis toolkit.

It validates cosmological run configurations, drives a physics kernel over
multipole and redshift-bin-pair space to produce shear power spectrum tables,
and bins N-body particle positions onto regular 3-D grids for plane building.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lenskit version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("lenskit " + version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(spectrumCmd)
	rootCmd.AddCommand(depositCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
