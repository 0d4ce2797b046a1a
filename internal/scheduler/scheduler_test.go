package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/aerospotter/internal/airfield"
	"github.com/i474232898/aerospotter/internal/store"
	"github.com/i474232898/aerospotter/internal/weather"
)

type fakeRefresher struct {
	mu    sync.Mutex
	seen  []string
	fails map[string]bool
}

func (f *fakeRefresher) Refresh(ctx context.Context, airport string) (weather.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, airport)
	if f.fails[airport] {
		return weather.Snapshot{}, errors.New("boom")
	}
	return weather.Snapshot{}, nil
}

type countingPurger struct {
	calls int
}

func (p *countingPurger) Purge() int {
	p.calls++
	return 0
}

func TestRunOnce(t *testing.T) {
	f := &fakeRefresher{fails: map[string]bool{"RJAA": true}}
	p := &countingPurger{}
	s := New([]string{"RJTT", "RJAA"}, time.Minute, time.Second, f, p)

	n := s.RunOnce(context.Background())
	assert.Equal(t, 1, n)
	assert.ElementsMatch(t, []string{"RJTT", "RJAA"}, f.seen)
	assert.Equal(t, 1, p.calls)
}

func TestRunOnceDropsExpiredSnapshots(t *testing.T) {
	mem := store.NewMemoryStore(time.Nanosecond)
	mem.SaveSnapshot(weather.Snapshot{Assessment: airfield.Assessment{Airport: "RJAA"}})
	time.Sleep(time.Millisecond)
	_, err := mem.GetLatest("RJAA")
	require.ErrorIs(t, err, store.ErrExpired)

	s := New([]string{"RJTT"}, time.Minute, time.Second, &fakeRefresher{}, mem)
	s.RunOnce(context.Background())

	_, err = mem.GetLatest("RJAA")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStartWithoutAirports(t *testing.T) {
	s := New(nil, time.Minute, time.Second, &fakeRefresher{}, nil)
	assert.NoError(t, s.Start())
	s.Stop()
}
