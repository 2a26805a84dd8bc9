// Package config defines the YAML run configuration for the lenskit CLI: the
// cosmology, the tomographic redshift setup, the kernel settings, and the
// multipole range of one spectrum computation.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"lenskit/internal/cosmo"
	"lenskit/internal/kernel"
)

// Config holds one spectrum run.
type Config struct {
	Cosmology  CosmologyConfig `yaml:"cosmology"`
	Redshift   RedshiftConfig  `yaml:"redshift"`
	Settings   SettingsConfig  `yaml:"settings"`
	Multipoles MultipoleConfig `yaml:"multipoles"`

	// Kernel selects the physics kernel implementation. Only "synthetic"
	// is built in; real kernels are registered by the embedding toolkit.
	Kernel string `yaml:"kernel"`
}

// CosmologyConfig mirrors cosmo.Parameters with YAML tags.
type CosmologyConfig struct {
	OmegaM  float64 `yaml:"omega_m"`
	OmegaDE float64 `yaml:"omega_de"`
	W0      float64 `yaml:"w0"`
	W1      float64 `yaml:"w1"`
	H100    float64 `yaml:"h100"`
	OmegaB  float64 `yaml:"omega_b"`
	OmegaNu float64 `yaml:"omega_nu"`
	Neff    float64 `yaml:"neff"`
	Sigma8  float64 `yaml:"sigma8"`
	Ns      float64 `yaml:"ns"`
}

// RedshiftConfig lists the tomographic bins.
type RedshiftConfig struct {
	Bins []BinConfig `yaml:"bins"`
}

// BinConfig is one tomographic bin: a distribution type tag and its
// auxiliary parameters. The per-bin parameter count and the concatenated
// parameter array are derived, so they cannot disagree.
type BinConfig struct {
	Type   string    `yaml:"type"`
	Params []float64 `yaml:"params"`
}

// SettingsConfig mirrors the kernel settings mapping with YAML tags.
type SettingsConfig struct {
	Nonlinear  string  `yaml:"nonlinear"`
	Transfer   string  `yaml:"transfer"`
	Growth     string  `yaml:"growth"`
	DarkEnergy string  `yaml:"de_param"`
	Norm       string  `yaml:"norm_mode"`
	Tomography string  `yaml:"tomography"`
	Reduced    string  `yaml:"reduced"`
	QMagSize   float64 `yaml:"q_mag_size"`
}

// ToMap converts to the raw settings mapping the resolver consumes, keyed by
// the kernel's native key strings.
func (s SettingsConfig) ToMap() map[string]any {
	return map[string]any{
		cosmo.KeyNonlinear:  s.Nonlinear,
		cosmo.KeyTransfer:   s.Transfer,
		cosmo.KeyGrowth:     s.Growth,
		cosmo.KeyDarkEnergy: s.DarkEnergy,
		cosmo.KeyNorm:       s.Norm,
		cosmo.KeyTomography: s.Tomography,
		cosmo.KeyReduced:    s.Reduced,
		cosmo.KeyQMagSize:   s.QMagSize,
	}
}

// MultipoleConfig describes the multipole sampling.
type MultipoleConfig struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Count int     `yaml:"count"`
	Log   bool    `yaml:"log"`
}

// DefaultConfig returns a runnable configuration with a flat-LCDM-like
// cosmology, two single-redshift bins, and a logarithmic multipole range.
func DefaultConfig() *Config {
	return &Config{
		Cosmology: CosmologyConfig{
			OmegaM:  0.26,
			OmegaDE: 0.74,
			W0:      -1.0,
			W1:      0.0,
			H100:    0.72,
			OmegaB:  0.046,
			OmegaNu: 0.0,
			Neff:    3.046,
			Sigma8:  0.8,
			Ns:      0.96,
		},
		Redshift: RedshiftConfig{
			Bins: []BinConfig{
				{Type: "single", Params: []float64{1.0, 1.0}},
				{Type: "single", Params: []float64{2.0, 2.0}},
			},
		},
		Settings: SettingsConfig{
			Nonlinear:  "smith03",
			Transfer:   "eisenhu",
			Growth:     "growth_de",
			DarkEnergy: "linder",
			Norm:       "norm_s8",
			Tomography: "tomo_all",
			Reduced:    "none",
			QMagSize:   1.0,
		},
		Multipoles: MultipoleConfig{
			Min:   10,
			Max:   10000,
			Count: 50,
			Log:   true,
		},
		Kernel: "synthetic",
	}
}

// Load reads a YAML configuration, falling back to defaults for a missing
// file, and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides lets the environment override selected fields.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LENSKIT_KERNEL"); v != "" {
		c.Kernel = v
	}
}

// Validate checks structural constraints that do not need the kernel
// vocabularies: bin and multipole counts, range ordering, kernel name.
func (c *Config) Validate() error {
	if len(c.Redshift.Bins) < 1 {
		return fmt.Errorf("redshift: need at least one bin")
	}
	m := c.Multipoles
	if m.Count < 1 {
		return fmt.Errorf("multipoles: count must be >= 1, got %d", m.Count)
	}
	if m.Count > 1 && m.Min >= m.Max {
		return fmt.Errorf("multipoles: min %g must be below max %g", m.Min, m.Max)
	}
	if m.Log && m.Min <= 0 {
		return fmt.Errorf("multipoles: log spacing needs a positive min, got %g", m.Min)
	}
	if c.Kernel != "synthetic" {
		return fmt.Errorf("kernel: unknown kernel %q", c.Kernel)
	}
	return nil
}

// BuildSpec resolves the settings and distributions through the bridge
// validation path and assembles the kernel model spec. The error it returns
// is exactly the one a computation with this configuration would report.
func (c *Config) BuildSpec() (kernel.ModelSpec, error) {
	nzbins := len(c.Redshift.Bins)
	types := make([]string, nzbins)
	nnz := make([]int32, nzbins)
	var parNz []float64
	for i, bin := range c.Redshift.Bins {
		types[i] = bin.Type
		nnz[i] = int32(len(bin.Params))
		parNz = append(parNz, bin.Params...)
	}

	dists, err := cosmo.ParseDistributions(nzbins, types, nnz, parNz)
	if err != nil {
		return kernel.ModelSpec{}, err
	}
	settings, err := cosmo.ResolveSettings(c.Settings.ToMap())
	if err != nil {
		return kernel.ModelSpec{}, err
	}

	return kernel.ModelSpec{
		Params: cosmo.Parameters{
			OmegaM:  c.Cosmology.OmegaM,
			OmegaDE: c.Cosmology.OmegaDE,
			W0:      c.Cosmology.W0,
			W1:      c.Cosmology.W1,
			H100:    c.Cosmology.H100,
			OmegaB:  c.Cosmology.OmegaB,
			OmegaNu: c.Cosmology.OmegaNu,
			Neff:    c.Cosmology.Neff,
			Sigma8:  c.Cosmology.Sigma8,
			Ns:      c.Cosmology.Ns,
		},
		NzBins:        nzbins,
		Nnz:           nnz,
		Distributions: dists,
		ParNz:         parNz,
		Settings:      settings,
	}, nil
}

// Ell materializes the multipole array, linearly or logarithmically spaced.
func (c *Config) Ell() []float64 {
	m := c.Multipoles
	ell := make([]float64, m.Count)
	if m.Count == 1 {
		ell[0] = m.Min
		return ell
	}
	if m.Log {
		lmin, lmax := math.Log(m.Min), math.Log(m.Max)
		step := (lmax - lmin) / float64(m.Count-1)
		for i := range ell {
			ell[i] = math.Exp(lmin + float64(i)*step)
		}
	} else {
		step := (m.Max - m.Min) / float64(m.Count-1)
		for i := range ell {
			ell[i] = m.Min + float64(i)*step
		}
	}
	return ell
}

// NewKernel instantiates the configured kernel.
func (c *Config) NewKernel() (kernel.Kernel, error) {
	switch c.Kernel {
	case "synthetic":
		return kernel.NewSynthetic(), nil
	default:
		return nil, fmt.Errorf("unknown kernel %q", c.Kernel)
	}
}
