package airfield

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// EarthRadiusKm is the spherical earth radius used for approach geometry.
const EarthRadiusKm = 6378.1

// LatLon is a geographic coordinate in degrees.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// UnmarshalYAML accepts the compact [lat, lon] form used by airports.yaml.
func (p *LatLon) UnmarshalYAML(node *yaml.Node) error {
	var pair []float64
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: coordinate needs [lat, lon], got %d values", node.Line, len(pair))
	}
	p.Lat, p.Lon = pair[0], pair[1]
	return nil
}

func (p LatLon) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeHeading maps any angle in degrees into [0,360).
func NormalizeHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// WindComponents splits a wind vector into components along a runway heading.
// A positive headwind blows against an aircraft using the runway; the sign of
// the crosswind only tells the side.
func WindComponents(windDir, windSpeed, runwayHeading float64) (headwind, crosswind float64) {
	angle := radians(windDir - runwayHeading)
	return windSpeed * math.Cos(angle), windSpeed * math.Sin(angle)
}

// DestinationPoint returns the point reached from origin after travelling
// distanceKm along a great circle with the given initial bearing.
// Negative distances are not meaningful.
func DestinationPoint(origin LatLon, bearingDeg, distanceKm float64) LatLon {
	brng := radians(bearingDeg)
	lat1 := radians(origin.Lat)
	lon1 := radians(origin.Lon)
	d := distanceKm / EarthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(math.Sin(brng)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	return LatLon{Lat: degrees(lat2), Lon: degrees(lon2)}
}
