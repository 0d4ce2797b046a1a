package airfield

import (
	"strconv"
	"strings"
)

// RunwayID identifies one landing direction, e.g. "RWY 34L".
type RunwayID string

// Normalize upper-cases the identifier and collapses inner whitespace.
func (id RunwayID) Normalize() RunwayID {
	return RunwayID(strings.Join(strings.Fields(strings.ToUpper(string(id))), " "))
}

// Designator splits the identifier into runway number and side letter
// (L, C, R or empty). ok is false when no number is present.
func (id RunwayID) Designator() (number int, side string, ok bool) {
	s := strings.TrimSpace(strings.TrimPrefix(string(id.Normalize()), "RWY"))
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, "", false
	}
	number, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, "", false
	}
	side = s[i:]
	switch side {
	case "", "L", "C", "R":
		return number, side, true
	}
	return 0, "", false
}

// Covers reports whether the vantage target id covers runway r. Identical
// identifiers always match; a target without a side letter ("RWY 34")
// also covers every parallel runway with the same number.
func (id RunwayID) Covers(r RunwayID) bool {
	if id.Normalize() == r.Normalize() {
		return true
	}
	tn, tside, ok := id.Designator()
	if !ok || tside != "" {
		return false
	}
	rn, _, ok := r.Designator()
	return ok && rn == tn
}

// RunwayDefinition is one direction of a physical strip. The reciprocal
// direction is a separate definition with the two ends swapped.
type RunwayDefinition struct {
	ID        RunwayID `json:"id" yaml:"id" validate:"required"`
	Label     string   `json:"label,omitempty" yaml:"label"`
	Heading   float64  `json:"heading" yaml:"heading" validate:"gte=0,lt=360"`
	Threshold LatLon   `json:"threshold" yaml:"threshold"`
	FarEnd    LatLon   `json:"farEnd" yaml:"far_end"`
}

// Ends returns both ends of the strip, threshold first.
func (r RunwayDefinition) Ends() [2]LatLon {
	return [2]LatLon{r.Threshold, r.FarEnd}
}

// ApproachBearing points from the threshold out along the final approach.
func (r RunwayDefinition) ApproachBearing() float64 {
	return NormalizeHeading(r.Heading + 180)
}

// AircraftSpec is a type's maximum demonstrated crosswind.
type AircraftSpec struct {
	Name         string  `json:"name" yaml:"name" validate:"required"`
	MaxCrosswind float64 `json:"maxCrosswind" yaml:"max_crosswind" validate:"gt=0"`
}

// VantagePoint is a spotting location and the runways it is good for.
type VantagePoint struct {
	Name        string     `json:"name" yaml:"name" validate:"required"`
	Location    LatLon     `json:"location" yaml:"location"`
	Targets     []RunwayID `json:"targets" yaml:"targets"`
	Description string     `json:"description,omitempty" yaml:"description"`
}
