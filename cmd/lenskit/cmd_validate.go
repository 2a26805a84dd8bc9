package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lenskit/internal/config"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a run configuration without computing",
	Long: `Resolves the settings and redshift distributions of a run configuration
through the same validation path the spectrum command uses and reports the
first failure, or confirms the configuration is runnable.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfigPath, "config", "c", "lenskit.yaml", "run configuration file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(validateConfigPath)
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
	fmt.Printf("configuration ok: %d bins, %s, %d multipoles\n",
		spec.NzBins, spec.Settings.Tomography, cfg.Multipoles.Count)
	return nil
}
