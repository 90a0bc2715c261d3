package chrom

import (
	"errors"
	"fmt"
)

// ConfigError reports an inconsistent or malformed input configuration.
// It is the only error kind produced by validation; the first one ends the run.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// Errorf builds a *ConfigError from a format string.
func Errorf(format string, a ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, a...)}
}

// IsConfigError reports whether err (or anything it wraps) is a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
