package airfield

import (
	"fmt"

	"github.com/i474232898/aerospotter/internal/metar"
)

// NoHour marks an evaluation without a known local time.
const NoHour = -1

// DefaultTailwindTolerance is how much tailwind (knots) an active runway
// may have before it is flagged unsafe.
const DefaultTailwindTolerance = 5.0

// PolicyKind names one of the closed set of activity policies.
type PolicyKind string

const (
	PolicyWindOnly PolicyKind = "wind-only"
	PolicyWindTime PolicyKind = "wind-time"
)

// ActivityPolicy picks the runways an airport would use for a given wind.
// The result is a candidate set; the tailwind postfilter runs afterwards.
type ActivityPolicy interface {
	Kind() PolicyKind
	Select(obs metar.Observation, runways []RunwayDefinition, localHour int) []RunwayID
}

// WindOnlyPolicy treats every runway independently: any runway without a
// tailwind is a candidate, so reciprocal pairs are both picked in calm air.
type WindOnlyPolicy struct{}

func (WindOnlyPolicy) Kind() PolicyKind { return PolicyWindOnly }

func (WindOnlyPolicy) Select(obs metar.Observation, runways []RunwayDefinition, _ int) []RunwayID {
	var out []RunwayID
	for _, rwy := range runways {
		hw, _ := WindComponents(float64(obs.WindDirection), float64(obs.WindSpeed), rwy.Heading)
		// cos() of a right angle is not exactly zero.
		if hw >= -1e-9 {
			out = append(out, rwy.ID)
		}
	}
	return out
}

// TimeWindow is an hour range [StartHour, EndHour) in airport local time.
// A window with StartHour > EndHour wraps past midnight.
type TimeWindow struct {
	Runways   []RunwayID `yaml:"runways" validate:"required,min=1"`
	StartHour int        `yaml:"start_hour" validate:"gte=0,lte=23"`
	EndHour   int        `yaml:"end_hour" validate:"gte=0,lte=24"`
}

// Contains reports whether hour falls inside the window.
func (w TimeWindow) Contains(hour int) bool {
	if hour < 0 {
		return false
	}
	if w.StartHour <= w.EndHour {
		return hour >= w.StartHour && hour < w.EndHour
	}
	return hour >= w.StartHour || hour < w.EndHour
}

// WindTimePolicy switches between fixed runway sets. Wind from 090 to 270
// inclusive counts as southerly, anything else as northerly. Under southerly
// operations the Window set replaces Southerly while the local hour is inside
// the window.
type WindTimePolicy struct {
	Northerly []RunwayID
	Southerly []RunwayID
	Window    *TimeWindow
}

func (WindTimePolicy) Kind() PolicyKind { return PolicyWindTime }

// Northerly reports whether the wind selects northerly operations.
func Northerly(obs metar.Observation) bool {
	return !(obs.WindDirection >= 90 && obs.WindDirection <= 270)
}

func (p WindTimePolicy) Select(obs metar.Observation, _ []RunwayDefinition, localHour int) []RunwayID {
	var set []RunwayID
	switch {
	case Northerly(obs):
		set = p.Northerly
	case p.Window != nil && p.Window.Contains(localHour):
		set = p.Window.Runways
	default:
		set = p.Southerly
	}
	return append([]RunwayID(nil), set...)
}

// PolicyConfig is the serialized form of a policy in airports.yaml.
type PolicyConfig struct {
	Kind      PolicyKind  `yaml:"kind" validate:"required,oneof=wind-only wind-time"`
	Northerly []RunwayID  `yaml:"northerly"`
	Southerly []RunwayID  `yaml:"southerly"`
	Window    *TimeWindow `yaml:"window"`
}

// Build turns the config into a policy, checking every named runway exists.
func (c PolicyConfig) Build(runways []RunwayDefinition) (ActivityPolicy, error) {
	switch c.Kind {
	case PolicyWindOnly:
		return WindOnlyPolicy{}, nil
	case PolicyWindTime:
		known := make(map[RunwayID]bool, len(runways))
		for _, r := range runways {
			known[r.ID.Normalize()] = true
		}
		check := func(group string, ids []RunwayID) ([]RunwayID, error) {
			if len(ids) == 0 {
				return nil, fmt.Errorf("%s runway set is empty", group)
			}
			out := make([]RunwayID, len(ids))
			for i, id := range ids {
				id = id.Normalize()
				if !known[id] {
					return nil, fmt.Errorf("%s runway %q is not defined", group, id)
				}
				out[i] = id
			}
			return out, nil
		}

		var (
			p   WindTimePolicy
			err error
		)
		if p.Northerly, err = check("northerly", c.Northerly); err != nil {
			return nil, err
		}
		if p.Southerly, err = check("southerly", c.Southerly); err != nil {
			return nil, err
		}
		if c.Window != nil {
			w := *c.Window
			if w.Runways, err = check("window", w.Runways); err != nil {
				return nil, err
			}
			p.Window = &w
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown policy kind %q", c.Kind)
	}
}

// RunwayStatus is the outcome of resolving one runway.
type RunwayStatus string

const (
	StatusActive         RunwayStatus = "active"
	StatusStandby        RunwayStatus = "standby"
	StatusUnsafeTailwind RunwayStatus = "unsafe-tailwind"
)

// Resolution records the policy pick and what survived the postfilter.
type Resolution struct {
	Policy   PolicyKind
	Selected []RunwayID
	Active   []RunwayID
	Status   map[RunwayID]RunwayStatus
}

// Resolve applies the airport's policy and then rejects any selected runway
// whose tailwind exceeds the airport's tolerance. Runways not selected are
// on standby. Results follow the airport's runway order.
func Resolve(obs metar.Observation, ap *AirportProfile, localHour int) Resolution {
	selected := make(map[RunwayID]bool)
	for _, id := range ap.Policy.Select(obs, ap.Runways, localHour) {
		selected[id.Normalize()] = true
	}

	res := Resolution{
		Policy: ap.Policy.Kind(),
		Status: make(map[RunwayID]RunwayStatus, len(ap.Runways)),
	}
	for _, rwy := range ap.Runways {
		if !selected[rwy.ID] {
			res.Status[rwy.ID] = StatusStandby
			continue
		}
		res.Selected = append(res.Selected, rwy.ID)

		hw, _ := WindComponents(float64(obs.WindDirection), float64(obs.WindSpeed), rwy.Heading)
		if hw < -ap.TailwindTolerance {
			res.Status[rwy.ID] = StatusUnsafeTailwind
			continue
		}
		res.Status[rwy.ID] = StatusActive
		res.Active = append(res.Active, rwy.ID)
	}
	return res
}

// ResolveActive returns only the active runway identifiers.
func ResolveActive(obs metar.Observation, ap *AirportProfile, localHour int) []RunwayID {
	return Resolve(obs, ap, localHour).Active
}
