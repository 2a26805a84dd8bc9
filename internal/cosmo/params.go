// Package cosmo holds the cosmological parameter set, the enumerated
// computation settings and their fixed vocabularies, and the per-bin redshift
// distribution descriptors consumed by the kernel boundary. All enumerated
// values are resolved through static ordered tables; there is no partial or
// case-insensitive matching.
package cosmo

// Parameters is the scalar cosmological parameter set. It is treated as
// immutable once handed to a model constructor.
type Parameters struct {
	OmegaM  float64 // matter density
	OmegaDE float64 // dark energy density
	W0      float64 // dark energy equation of state, constant term
	W1      float64 // dark energy equation of state, evolving term
	H100    float64 // Hubble parameter in units of 100 km/s/Mpc
	OmegaB  float64 // baryon density
	OmegaNu float64 // massive neutrino density
	Neff    float64 // effective number of relativistic species
	Sigma8  float64 // power spectrum normalization at 8 Mpc/h
	Ns      float64 // scalar spectral index
}
