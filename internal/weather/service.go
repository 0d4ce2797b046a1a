package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/i474232898/aerospotter/internal/airfield"
	"github.com/i474232898/aerospotter/internal/metar"
)

// Service runs the fetch, parse and evaluate pipeline and caches the results.
type Service struct {
	engine    *airfield.Engine
	store     Store
	providers []Provider
	timeout   time.Duration
	now       func() time.Time

	// refreshes collapses concurrent cache misses per airport.
	refreshes singleflight.Group
}

// NewService creates a new Service. Providers are tried in order; timeout
// bounds each provider attempt on its own, so a hung provider leaves the
// next one a full budget.
func NewService(engine *airfield.Engine, store Store, providers []Provider, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		engine:    engine,
		store:     store,
		providers: providers,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Engine returns the evaluation engine.
func (s *Service) Engine() *airfield.Engine {
	return s.engine
}

// Fetch returns the first report any provider can supply. Unknown airports
// fail before any network access.
func (s *Service) Fetch(ctx context.Context, airport string) (Report, error) {
	ap, err := s.engine.Registry().Airport(airport)
	if err != nil {
		return Report{}, err
	}
	if len(s.providers) == 0 {
		log.Printf("ERROR: No providers available to fetch weather data for %s", ap.Code)
		return Report{}, &FetchError{Airport: ap.Code, Err: ErrNoProviders}
	}

	var errs []error
	for _, p := range s.providers {
		r, err := s.fetchFrom(ctx, p, ap.Code)
		if err == nil && strings.TrimSpace(r.Raw) == "" {
			err = errors.New("empty report")
		}
		if err != nil {
			log.Printf("provider %s fetch failed for %s: %v", p.Name(), ap.Code, err)
			errs = append(errs, &FetchError{Airport: ap.Code, Provider: p.Name(), Err: err})
			continue
		}

		r.Airport = ap.Code
		r.Provider = p.Name()
		if r.FetchedAt.IsZero() {
			r.FetchedAt = s.now().UTC()
		}
		return r, nil
	}
	return Report{}, errors.Join(errs...)
}

func (s *Service) fetchFrom(ctx context.Context, p Provider, airport string) (Report, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return p.Fetch(ctx, airport)
}

// FetchBudget is the longest a Fetch can take when every provider times out.
func (s *Service) FetchBudget() time.Duration {
	return s.timeout * time.Duration(max(len(s.providers), 1))
}

// Refresh fetches, evaluates and stores a new snapshot. On failure the
// previously stored snapshot is left untouched.
func (s *Service) Refresh(ctx context.Context, airport string) (Snapshot, error) {
	log.Printf("DEBUG: Refresh called for %s with %d providers", airport, len(s.providers))

	r, err := s.Fetch(ctx, airport)
	if err != nil {
		return Snapshot{}, err
	}

	at := r.ObservedAt
	if at.IsZero() {
		at = r.FetchedAt
	}
	snap, err := s.evaluate(r, at)
	if err != nil {
		return Snapshot{}, err
	}
	s.store.SaveSnapshot(snap)
	return snap, nil
}

// Latest returns the cached snapshot, refreshing it when missing or expired.
// Concurrent callers missing the same airport share one refresh.
func (s *Service) Latest(ctx context.Context, airport string) (Snapshot, error) {
	ap, err := s.engine.Registry().Airport(airport)
	if err != nil {
		return Snapshot{}, err
	}
	if snap, err := s.store.GetLatest(ap.Code); err == nil {
		return snap, nil
	}

	v, err, _ := s.refreshes.Do(ap.Code, func() (any, error) {
		// A refresh may have landed between the miss and here.
		if snap, err := s.store.GetLatest(ap.Code); err == nil {
			return snap, nil
		}
		return s.Refresh(ctx, ap.Code)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

// Assess evaluates a report supplied by the caller. Nothing is fetched or
// stored. A zero at leaves time-of-day policies without a local hour.
func (s *Service) Assess(airport, raw string, at time.Time) (Snapshot, error) {
	r := Report{
		Airport:    strings.ToUpper(strings.TrimSpace(airport)),
		Provider:   "manual",
		Raw:        strings.TrimSpace(raw),
		ObservedAt: at,
		FetchedAt:  s.now().UTC(),
	}
	return s.evaluate(r, at)
}

func (s *Service) evaluate(r Report, at time.Time) (Snapshot, error) {
	obs, err := metar.Parse(r.Raw)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s report from %s: %w", r.Airport, r.Provider, err)
	}

	a, err := s.engine.Evaluate(r.Airport, obs, at)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		ID:         uuid.NewString(),
		Report:     r,
		Assessment: a,
	}, nil
}
