// Package export turns assessments into formats map renderers consume.
package export

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/i474232898/aerospotter/internal/airfield"
	"github.com/i474232898/aerospotter/internal/metar"
	"github.com/i474232898/aerospotter/internal/weather"
)

// Feature kinds, stored in the "kind" property.
const (
	KindAirport  = "airport"
	KindRunway   = "runway"
	KindApproach = "approach"
	KindMarker   = "approach-marker"
	KindVantage  = "vantage"
)

func point(p airfield.LatLon) orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// ceiling is the lowest broken or overcast base in feet, or "-" without one.
func ceiling(obs metar.Observation) any {
	if !obs.HasCeiling() {
		return "-"
	}
	return obs.Ceiling
}

// GeoJSON builds a FeatureCollection with the airport center, every runway
// strip, approach corridors for active runways and all vantage points.
func GeoJSON(snap weather.Snapshot) *geojson.FeatureCollection {
	a := snap.Assessment
	fc := geojson.NewFeatureCollection()

	center := geojson.NewFeature(point(a.Center))
	center.Properties = geojson.Properties{
		"kind":          KindAirport,
		"airport":       a.Airport,
		"name":          a.Name,
		"snapshot":      snap.ID,
		"report":        snap.Report.Raw,
		"windDirection": a.Observation.WindDirection,
		"windSpeed":     a.Observation.WindSpeed,
		"arrowRotation": a.ArrowRotation,
		"visibility":    a.Observation.Visibility,
		"ceiling":       ceiling(a.Observation),
		"photo":         string(a.Photo.Rating),
		"photoMessage":  a.Photo.Message,
		"policy":        string(a.Policy),
		"active":        a.Active,
	}
	fc.Append(center)

	for _, rwy := range a.Runways {
		strip := geojson.NewFeature(orb.LineString{point(rwy.Ends[0]), point(rwy.Ends[1])})
		strip.Properties = geojson.Properties{
			"kind":      KindRunway,
			"id":        string(rwy.ID),
			"label":     rwy.Label,
			"status":    string(rwy.Status),
			"headwind":  rwy.Headwind,
			"crosswind": rwy.Crosswind,
			"aircraft":  rwy.Aircraft,
		}
		fc.Append(strip)

		if rwy.Approach == nil {
			continue
		}
		path := rwy.Approach
		corridor := geojson.NewFeature(orb.LineString{point(path.Threshold), point(path.Far)})
		corridor.Properties = geojson.Properties{
			"kind":    KindApproach,
			"id":      string(rwy.ID),
			"bearing": path.Bearing,
		}
		fc.Append(corridor)

		for _, m := range []struct {
			label string
			at    airfield.LatLon
		}{
			{"3km", path.Mid},
			{"0.5km", path.Near},
		} {
			marker := geojson.NewFeature(point(m.at))
			marker.Properties = geojson.Properties{
				"kind":     KindMarker,
				"id":       string(rwy.ID),
				"distance": m.label,
				"rotation": path.MarkerRotation,
			}
			fc.Append(marker)
		}
	}

	for _, v := range a.Vantages {
		spot := geojson.NewFeature(point(v.Location))
		spot.Properties = geojson.Properties{
			"kind":            KindVantage,
			"name":            v.Name,
			"description":     v.Description,
			"targets":         v.Targets,
			"highOpportunity": v.HighOpportunity,
		}
		fc.Append(spot)
	}

	return fc
}
