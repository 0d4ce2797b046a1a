package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch marks every failure to obtain a report; match it with errors.Is.
	ErrFetch = errors.New("no weather data available")
	// ErrNoProviders is returned when the service has nothing to fetch from.
	ErrNoProviders = errors.New("no weather providers configured")
)

// FetchError describes a failed report fetch. It unwraps to ErrFetch and to
// the underlying cause.
type FetchError struct {
	Airport  string
	Provider string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("fetch %s: %v", e.Airport, e.Err)
	}
	return fmt.Sprintf("fetch %s from %s: %v", e.Airport, e.Provider, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}
