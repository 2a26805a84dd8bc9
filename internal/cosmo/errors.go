package cosmo

import "fmt"

// UnrecognizedOptionError reports a settings value that is not part of the
// fixed vocabulary for its key.
type UnrecognizedOptionError struct {
	Key   string
	Value string
}

func (e *UnrecognizedOptionError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("setting %q not implemented", e.Value)
	}
	return fmt.Sprintf("setting %s: %q not implemented", e.Key, e.Value)
}

// MissingSettingError reports a required key absent from the settings mapping.
type MissingSettingError struct {
	Key string
}

func (e *MissingSettingError) Error() string {
	return fmt.Sprintf("setting %s: missing", e.Key)
}

// TypeMismatchError reports a settings value of the wrong dynamic type.
type TypeMismatchError struct {
	Key  string
	Want string
	Got  any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("setting %s: want %s, got %T", e.Key, e.Want, e.Got)
}
