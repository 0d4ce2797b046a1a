package weather

import (
	"context"
)

// Provider abstracts a source of raw METAR text (e.g. NOAA, aviationweather.gov).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, airport string) (Report, error)
}

// Store is the contract the in-memory snapshot cache must satisfy.
type Store interface {
	SaveSnapshot(snapshot Snapshot)
	GetLatest(airport string) (Snapshot, error)
}
