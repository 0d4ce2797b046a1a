package airfield

import (
	"fmt"
	"time"

	"github.com/i474232898/aerospotter/internal/metar"
)

// Approach corridor distances from the threshold, in km.
const (
	ApproachFarKm  = 10.0
	ApproachMidKm  = 3.0
	ApproachNearKm = 0.5
)

// PhotoRating grades visibility and ceiling for photography.
type PhotoRating string

const (
	PhotoGood     PhotoRating = "good"
	PhotoMarginal PhotoRating = "marginal"
	PhotoPoor     PhotoRating = "poor"
)

// PhotoCondition is the rating plus a short explanation.
type PhotoCondition struct {
	Rating  PhotoRating `json:"rating"`
	Message string      `json:"message"`
}

// RatePhotoConditions grades an observation: poor below 5000 m or 1500 ft,
// marginal below 8000 m or 3000 ft.
func RatePhotoConditions(obs metar.Observation) PhotoCondition {
	switch {
	case obs.Ceiling < 1500:
		return PhotoCondition{Rating: PhotoPoor, Message: fmt.Sprintf("ceiling %dft", obs.Ceiling)}
	case obs.Visibility < 5000:
		return PhotoCondition{Rating: PhotoPoor, Message: "low visibility or ceiling"}
	case obs.Visibility < 8000 || obs.Ceiling < 3000:
		return PhotoCondition{Rating: PhotoMarginal, Message: "hazy or low cloud"}
	default:
		return PhotoCondition{Rating: PhotoGood, Message: "clear visibility"}
	}
}

// ApproachPath holds the points a renderer needs to draw a final approach.
type ApproachPath struct {
	Bearing        float64 `json:"bearing"`
	MarkerRotation float64 `json:"markerRotation"`
	Threshold      LatLon  `json:"threshold"`
	Far            LatLon  `json:"far"`
	Mid            LatLon  `json:"mid"`
	Near           LatLon  `json:"near"`
}

// Approach computes the corridor points out from the runway threshold.
func Approach(r RunwayDefinition) ApproachPath {
	b := r.ApproachBearing()
	return ApproachPath{
		Bearing:        b,
		MarkerRotation: r.Heading - 90,
		Threshold:      r.Threshold,
		Far:            DestinationPoint(r.Threshold, b, ApproachFarKm),
		Mid:            DestinationPoint(r.Threshold, b, ApproachMidKm),
		Near:           DestinationPoint(r.Threshold, b, ApproachNearKm),
	}
}

// RunwayState is the derived view of one runway for one observation.
type RunwayState struct {
	ID        RunwayID      `json:"id"`
	Label     string        `json:"label,omitempty"`
	Heading   float64       `json:"heading"`
	Ends      [2]LatLon     `json:"ends"`
	Headwind  float64       `json:"headwind"`
	Crosswind float64       `json:"crosswind"`
	Status    RunwayStatus  `json:"status"`
	Aircraft  []Judgment    `json:"aircraft"`
	Approach  *ApproachPath `json:"approach,omitempty"`
}

// Assessment is everything derived from one observation at one airport.
type Assessment struct {
	Airport       string            `json:"airport"`
	Name          string            `json:"name"`
	Center        LatLon            `json:"center"`
	Observation   metar.Observation `json:"observation"`
	ArrowRotation int               `json:"arrowRotation"`
	Photo         PhotoCondition    `json:"photo"`
	Policy        PolicyKind        `json:"policy"`
	LocalHour     int               `json:"localHour"`
	Active        []RunwayID        `json:"active"`
	Runways       []RunwayState     `json:"runways"`
	Vantages      []VantageScore    `json:"vantagePoints"`
}

// Engine evaluates observations against a Registry. It holds no mutable
// state, so one Engine can serve concurrent callers.
type Engine struct {
	registry *Registry
}

// NewEngine creates an Engine over reg.
func NewEngine(reg *Registry) *Engine {
	return &Engine{registry: reg}
}

// Registry returns the registry the engine was built with.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Evaluate derives runway states and vantage scores for an observation.
// at selects the local hour for time-dependent policies; a zero time means
// the hour is unknown.
func (e *Engine) Evaluate(code string, obs metar.Observation, at time.Time) (Assessment, error) {
	ap, err := e.registry.Airport(code)
	if err != nil {
		return Assessment{}, err
	}

	hour := ap.LocalHour(at)
	res := Resolve(obs, ap, hour)
	aircraft := e.registry.Aircraft()

	a := Assessment{
		Airport:       ap.Code,
		Name:          ap.Name,
		Center:        ap.Center,
		Observation:   obs,
		ArrowRotation: obs.ArrowRotation(),
		Photo:         RatePhotoConditions(obs),
		Policy:        res.Policy,
		LocalHour:     hour,
		Active:        res.Active,
		Runways:       make([]RunwayState, 0, len(ap.Runways)),
	}
	if a.Active == nil {
		a.Active = []RunwayID{}
	}

	for _, rwy := range ap.Runways {
		hw, cw := WindComponents(float64(obs.WindDirection), float64(obs.WindSpeed), rwy.Heading)
		st := RunwayState{
			ID:        rwy.ID,
			Label:     rwy.Label,
			Heading:   rwy.Heading,
			Ends:      rwy.Ends(),
			Headwind:  hw,
			Crosswind: cw,
			Status:    res.Status[rwy.ID],
			Aircraft:  Judge(cw, aircraft),
		}
		if st.Status == StatusActive {
			path := Approach(rwy)
			st.Approach = &path
		}
		a.Runways = append(a.Runways, st)
	}

	a.Vantages = Score(ap.Vantages, res.Active)
	return a, nil
}
