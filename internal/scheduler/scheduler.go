package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/aerospotter/internal/weather"
)

// maxParallelFetches bounds concurrent outbound fetches per run.
const maxParallelFetches = 4

// Refresher is the part of weather.Service the scheduler needs.
type Refresher interface {
	Refresh(ctx context.Context, airport string) (weather.Snapshot, error)
}

// Purger drops expired cache entries.
type Purger interface {
	Purge() int
}

// Scheduler periodically refreshes snapshots for configured airports.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	purger    Purger
	airports  []string
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. timeout bounds one airport refresh. purger
// may be nil; otherwise expired snapshots are dropped after every run.
func New(airports []string, interval, timeout time.Duration, service Refresher, purger Purger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		purger:    purger,
		airports:  airports,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.airports) == 0 {
		log.Println("scheduler: no airports configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every airport and returns how many succeeded. Failures
// are logged; the previous snapshot stays in place.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	log.Println("scheduler: running weather fetch job")

	timeout := s.timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ok := make([]bool, len(s.airports))
	var g errgroup.Group
	g.SetLimit(maxParallelFetches)
	for i, code := range s.airports {
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			if _, err := s.service.Refresh(ctx, code); err != nil {
				log.Printf("scheduler: fetch failed for %s: %v", code, err)
				return nil
			}
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	n := 0
	for _, v := range ok {
		if v {
			n++
		}
	}
	log.Printf("scheduler: completed weather fetch job (%d/%d airports)", n, len(s.airports))

	if s.purger != nil {
		if dropped := s.purger.Purge(); dropped > 0 {
			log.Printf("scheduler: purged %d expired snapshots", dropped)
		}
	}
	return n
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
