package layout

import (
	"errors"
	"fmt"
)

// Exit statuses for fatal startup misconfiguration.
const (
	ExitLayers = 3
	ExitKeymap = 9
)

var (
	ErrNoSuchLayer   = errors.New("no such layer")
	ErrNoLayers      = errors.New("no layers defined")
	ErrTooManyLayers = errors.New("too many layers specified")
	ErrNoSuchKeymap  = errors.New("no such keymap defined")
	ErrMalformed     = errors.New("malformed layout")
)

// ConfigError is a startup misconfiguration carrying the process exit
// status it maps to.
type ConfigError struct {
	Code int
	Err  error
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(code int, base error, format string, args ...interface{}) error {
	return &ConfigError{Code: code, Err: fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...))}
}

// ExitCode extracts the exit status from a ConfigError chain. It returns
// fallback when err carries none.
func ExitCode(err error, fallback int) int {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Code
	}
	return fallback
}
