package airfield

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAirport is returned for an airport code missing from the registry.
	ErrUnknownAirport = errors.New("unknown airport")
	// ErrInvalidRegistry is returned when airport data fails to load or validate.
	ErrInvalidRegistry = errors.New("invalid airport registry")
)

// ConfigurationError reports a problem with static airport configuration
// or a request for an airport that is not configured.
type ConfigurationError struct {
	Airport string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Airport == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("airport %s: %v", e.Airport, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
