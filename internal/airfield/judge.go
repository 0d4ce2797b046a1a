package airfield

import "math"

// Judgment says whether one aircraft type can use a runway in the current crosswind.
type Judgment struct {
	Aircraft     string  `json:"aircraft"`
	MaxCrosswind float64 `json:"maxCrosswind"`
	Operable     bool    `json:"operable"`
}

// Judge compares the crosswind magnitude against each type's limit,
// keeping the table's order.
func Judge(crosswind float64, specs []AircraftSpec) []Judgment {
	cw := math.Abs(crosswind)
	out := make([]Judgment, 0, len(specs))
	for _, s := range specs {
		out = append(out, Judgment{
			Aircraft:     s.Name,
			MaxCrosswind: s.MaxCrosswind,
			Operable:     cw <= s.MaxCrosswind,
		})
	}
	return out
}
