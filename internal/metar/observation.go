package metar

import "errors"

const (
	// Unrestricted is the capped value used for visibility (meters) and
	// ceiling (feet) when nothing limits them.
	Unrestricted = 9999
)

var (
	// ErrMalformedReport is returned when a report carries nothing to parse.
	ErrMalformedReport = errors.New("malformed weather report")
)

// Observation is the usable subset of a single METAR.
// Wind direction is always in [0,360); 0 also means calm or variable.
type Observation struct {
	WindDirection int  `json:"windDirection"`
	WindSpeed     int  `json:"windSpeed"`
	WindGust      int  `json:"windGust,omitempty"`
	Variable      bool `json:"variable,omitempty"`
	Visibility    int  `json:"visibilityM"`
	Ceiling       int  `json:"ceilingFt"`
	CAVOK         bool `json:"cavok,omitempty"`
}

// HasCeiling reports whether a broken or overcast layer was found.
func (o Observation) HasCeiling() bool {
	return o.Ceiling < Unrestricted
}

// ArrowRotation is the direction the wind blows towards, for drawing.
func (o Observation) ArrowRotation() int {
	return (o.WindDirection + 180) % 360
}
