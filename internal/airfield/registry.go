package airfield

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed data/airports.yaml
var defaultAirports []byte

var validate = validator.New()

// AirportProfile is the static description of one supported airport.
// Profiles are shared by every evaluation and must not be modified.
type AirportProfile struct {
	Code              string
	Name              string
	Center            LatLon
	Location          *time.Location
	Runways           []RunwayDefinition
	Vantages          []VantagePoint
	Policy            ActivityPolicy
	TailwindTolerance float64
}

// Runway looks up a runway definition by identifier.
func (ap *AirportProfile) Runway(id RunwayID) (RunwayDefinition, bool) {
	id = id.Normalize()
	for _, r := range ap.Runways {
		if r.ID == id {
			return r, true
		}
	}
	return RunwayDefinition{}, false
}

// LocalHour converts t to the airport's wall clock hour, or NoHour for a zero time.
func (ap *AirportProfile) LocalHour(t time.Time) int {
	if t.IsZero() {
		return NoHour
	}
	return t.In(ap.Location).Hour()
}

type registryFile struct {
	Aircraft []AircraftSpec `yaml:"aircraft" validate:"required,min=1,dive"`
	Airports []airportFile  `yaml:"airports" validate:"required,min=1,dive"`
}

type airportFile struct {
	Code              string             `yaml:"code" validate:"required,len=4,uppercase"`
	Name              string             `yaml:"name" validate:"required"`
	Center            LatLon             `yaml:"center"`
	TimeZone          string             `yaml:"time_zone" validate:"required"`
	TailwindTolerance *float64           `yaml:"tailwind_tolerance" validate:"omitempty,gte=0"`
	Policy            PolicyConfig       `yaml:"policy"`
	Runways           []RunwayDefinition `yaml:"runways" validate:"required,min=1,dive"`
	Vantages          []VantagePoint     `yaml:"vantage_points" validate:"dive"`
}

// Registry is the read-only set of airport profiles and the aircraft table.
type Registry struct {
	airports map[string]*AirportProfile
	order    []string
	aircraft []AircraftSpec
}

// DefaultRegistry loads the airports compiled into the binary.
func DefaultRegistry() (*Registry, error) {
	return LoadRegistry(bytes.NewReader(defaultAirports))
}

// LoadRegistryFile loads airports from a YAML file on disk.
func LoadRegistryFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigurationError{Err: fmt.Errorf("%w: %v", ErrInvalidRegistry, err)}
	}
	defer f.Close()
	return LoadRegistry(f)
}

// LoadRegistry decodes and validates airport data.
func LoadRegistry(r io.Reader) (*Registry, error) {
	var file registryFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, invalid("", err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, invalid("", err)
	}

	reg := &Registry{
		airports: make(map[string]*AirportProfile, len(file.Airports)),
		aircraft: file.Aircraft,
	}
	for _, af := range file.Airports {
		ap, err := af.profile()
		if err != nil {
			return nil, invalid(af.Code, err)
		}
		if _, dup := reg.airports[ap.Code]; dup {
			return nil, invalid(ap.Code, fmt.Errorf("defined twice"))
		}
		reg.airports[ap.Code] = ap
		reg.order = append(reg.order, ap.Code)
	}
	return reg, nil
}

func invalid(code string, err error) error {
	return &ConfigurationError{Airport: code, Err: fmt.Errorf("%w: %v", ErrInvalidRegistry, err)}
}

func (af airportFile) profile() (*AirportProfile, error) {
	loc, err := time.LoadLocation(af.TimeZone)
	if err != nil {
		return nil, err
	}

	ap := &AirportProfile{
		Code:              af.Code,
		Name:              af.Name,
		Center:            af.Center,
		Location:          loc,
		TailwindTolerance: DefaultTailwindTolerance,
	}
	if af.TailwindTolerance != nil {
		ap.TailwindTolerance = *af.TailwindTolerance
	}

	seen := make(map[RunwayID]bool)
	for _, r := range af.Runways {
		r.ID = r.ID.Normalize()
		if seen[r.ID] {
			return nil, fmt.Errorf("runway %s defined twice", r.ID)
		}
		seen[r.ID] = true
		ap.Runways = append(ap.Runways, r)
	}
	for _, vp := range af.Vantages {
		targets := make([]RunwayID, len(vp.Targets))
		for i, t := range vp.Targets {
			targets[i] = t.Normalize()
		}
		vp.Targets = targets
		ap.Vantages = append(ap.Vantages, vp)
	}

	if ap.Policy, err = af.Policy.Build(ap.Runways); err != nil {
		return nil, err
	}
	return ap, nil
}

// Airport returns the profile for code (case-insensitive).
func (r *Registry) Airport(code string) (*AirportProfile, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	ap, ok := r.airports[code]
	if !ok {
		return nil, &ConfigurationError{Airport: code, Err: ErrUnknownAirport}
	}
	return ap, nil
}

// Airports lists profiles in file order.
func (r *Registry) Airports() []*AirportProfile {
	out := make([]*AirportProfile, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.airports[code])
	}
	return out
}

// Aircraft returns a copy of the aircraft table in declared order.
func (r *Registry) Aircraft() []AircraftSpec {
	return append([]AircraftSpec(nil), r.aircraft...)
}
