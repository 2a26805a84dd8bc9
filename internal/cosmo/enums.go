package cosmo

// Each settings axis is a small integer enum backed by a static ordered name
// table. The numeric values match the position of each name in its table,
// which is the layout the kernel's constructor expects.

// Nonlinear selects the nonlinear matter power spectrum correction.
type Nonlinear int

const (
	NonlinearLinear Nonlinear = iota
	NonlinearPD96
	NonlinearSmith03
	NonlinearSmith03DE
	NonlinearCoyote10
	NonlinearCoyote13
	NonlinearHaloDM
	NonlinearSmith03Revised
)

var nonlinearNames = []string{
	"linear", "pd96", "smith03", "smith03_de",
	"coyote10", "coyote13", "halodm", "smith03_revised",
}

// Transfer selects the transfer function.
type Transfer int

const (
	TransferBBKS Transfer = iota
	TransferEisenHu
	TransferEisenHuOsc
	TransferBE84
)

var transferNames = []string{"bbks", "eisenhu", "eisenhu_osc", "be84"}

// Growth selects the linear growth function.
type Growth int

const (
	GrowthHeath Growth = iota
	GrowthDE
)

var growthNames = []string{"heath", "growth_de"}

// DarkEnergy selects the dark energy equation of state parametrization.
type DarkEnergy int

const (
	DarkEnergyJassal DarkEnergy = iota
	DarkEnergyLinder
	DarkEnergyEarly
	DarkEnergyPoly
)

var darkEnergyNames = []string{"jassal", "linder", "earlyDE", "poly_DE"}

// Norm selects the power spectrum normalization convention.
type Norm int

const (
	NormSigma8 Norm = iota
	NormAs
)

var normNames = []string{"norm_s8", "norm_as"}

// Tomography selects which redshift bin pairs a computation covers.
type Tomography int

const (
	TomoAll Tomography = iota
	TomoAutoOnly
	TomoCrossOnly
)

var tomographyNames = []string{"tomo_all", "tomo_auto_only", "tomo_cross_only"}

// Reduced selects the reduced shear correction mode.
type Reduced int

const (
	ReducedNone Reduced = iota
	ReducedK10
)

var reducedNames = []string{"none", "reduced_K10"}

// Distribution tags the functional form of a per-bin redshift distribution.
type Distribution int

const (
	DistLudo Distribution = iota
	DistJonben
	DistYmmk
	DistYmmk0Const
	DistHist
	DistSingle
)

var distributionNames = []string{
	"ludo", "jonben", "ymmk", "ymmk0const", "hist", "single",
}

func (n Nonlinear) String() string  { return enumName(nonlinearNames, int(n)) }
func (t Transfer) String() string   { return enumName(transferNames, int(t)) }
func (g Growth) String() string     { return enumName(growthNames, int(g)) }
func (d DarkEnergy) String() string { return enumName(darkEnergyNames, int(d)) }
func (n Norm) String() string       { return enumName(normNames, int(n)) }
func (t Tomography) String() string { return enumName(tomographyNames, int(t)) }
func (r Reduced) String() string    { return enumName(reducedNames, int(r)) }

func (d Distribution) String() string { return enumName(distributionNames, int(d)) }

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

// translate maps a candidate string to its index in an ordered vocabulary.
// Exact match only. The returned error carries the offending value; callers
// fill in the key they were resolving.
func translate(names []string, candidate string) (int, error) {
	for i, name := range names {
		if name == candidate {
			return i, nil
		}
	}
	return 0, &UnrecognizedOptionError{Value: candidate}
}

// ParseDistribution resolves a redshift distribution type tag.
func ParseDistribution(s string) (Distribution, error) {
	i, err := translate(distributionNames, s)
	return Distribution(i), err
}
