package cosmo

// Settings keys, using the kernel's native key strings. ResolveSettings reads
// them in exactly this order so the first failure is deterministic.
const (
	KeyNonlinear  = "snonlinear"
	KeyTransfer   = "stransfer"
	KeyGrowth     = "sgrowth"
	KeyDarkEnergy = "sde_param"
	KeyNorm       = "normmode"
	KeyTomography = "stomo"
	KeyReduced    = "sreduced"
	KeyQMagSize   = "q_mag_size"
)

// Settings is the resolved computation configuration handed to the kernel.
type Settings struct {
	Nonlinear  Nonlinear
	Transfer   Transfer
	Growth     Growth
	DarkEnergy DarkEnergy
	Norm       Norm
	Tomography Tomography
	Reduced    Reduced
	QMagSize   float64
}

// ResolveSettings validates a raw settings mapping against the fixed
// vocabularies and returns the typed configuration. Keys are resolved in the
// pinned order snonlinear, stransfer, sgrowth, sde_param, normmode, stomo,
// sreduced, q_mag_size; the first missing, mistyped, or unrecognized entry
// aborts resolution.
func ResolveSettings(raw map[string]any) (Settings, error) {
	var s Settings

	axes := []struct {
		key   string
		names []string
		dst   *int
	}{
		{KeyNonlinear, nonlinearNames, (*int)(&s.Nonlinear)},
		{KeyTransfer, transferNames, (*int)(&s.Transfer)},
		{KeyGrowth, growthNames, (*int)(&s.Growth)},
		{KeyDarkEnergy, darkEnergyNames, (*int)(&s.DarkEnergy)},
		{KeyNorm, normNames, (*int)(&s.Norm)},
		{KeyTomography, tomographyNames, (*int)(&s.Tomography)},
		{KeyReduced, reducedNames, (*int)(&s.Reduced)},
	}

	for _, axis := range axes {
		v, ok := raw[axis.key]
		if !ok {
			return Settings{}, &MissingSettingError{Key: axis.key}
		}
		str, ok := v.(string)
		if !ok {
			return Settings{}, &TypeMismatchError{Key: axis.key, Want: "string", Got: v}
		}
		i, err := translate(axis.names, str)
		if err != nil {
			return Settings{}, &UnrecognizedOptionError{Key: axis.key, Value: str}
		}
		*axis.dst = i
	}

	v, ok := raw[KeyQMagSize]
	if !ok {
		return Settings{}, &MissingSettingError{Key: KeyQMagSize}
	}
	q, ok := asFloat(v)
	if !ok {
		return Settings{}, &TypeMismatchError{Key: KeyQMagSize, Want: "float", Got: v}
	}
	s.QMagSize = q

	return s, nil
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}
