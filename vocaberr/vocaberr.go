// Package vocaberr carries the typed error taxonomy described by the
// tokenizer core's error-handling design: I/O failures and invariant
// violations are fatal, regex compile errors at construction are
// configuration errors, and nothing else in the core fails.
package vocaberr

import (
	"fmt"

	"github.com/pkg/errors"
)

// FatalError wraps an I/O failure or an invariant violation (a short write
// during dump, an arena allocation failure). Once returned, the lexicon or
// tokenizer that produced it must be considered corrupt and discarded.
type FatalError struct {
	Cause error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal: %v", e.Cause)
}

func (e *FatalError) Unwrap() error {
	return e.Cause
}

// Fatal wraps cause as a FatalError, attaching a stack trace via
// github.com/pkg/errors so the corrupt-state condition can be diagnosed
// after the fact rather than re-derived.
func Fatal(cause error) *FatalError {
	return &FatalError{Cause: errors.WithStack(cause)}
}

// Fatalf is Fatal with a formatted cause.
func Fatalf(format string, args ...interface{}) *FatalError {
	return Fatal(fmt.Errorf(format, args...))
}

// ConfigError wraps a regex-compile failure (or other misconfiguration)
// detected at construction time. A tokenizer is never observed half
// initialized: construction either fully succeeds or returns a ConfigError.
type ConfigError struct {
	Cause error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %v", e.Cause)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

func Config(cause error) *ConfigError {
	return &ConfigError{Cause: cause}
}

func Configf(format string, args ...interface{}) *ConfigError {
	return Config(fmt.Errorf(format, args...))
}
