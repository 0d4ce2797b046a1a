package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hanedaFile = "2024/01/01 12:00\nRJTT 011200Z 34010KT 9999 FEW030 22/15 Q1015\n"

func TestNOAAProviderFetch(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(hanedaFile))
	}))
	defer srv.Close()

	p := NewNOAAProvider(srv.Client(), srv.URL+"/stations/", 0)
	r, err := p.Fetch(context.Background(), "RJTT")
	require.NoError(t, err)

	assert.Equal(t, "/stations/RJTT.TXT", path)
	assert.Equal(t, "RJTT 011200Z 34010KT 9999 FEW030 22/15 Q1015", r.Raw)
	assert.Equal(t, "noaa", r.Provider)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), r.ObservedAt)
	assert.False(t, r.FetchedAt.IsZero())
}

func TestNOAAProviderNoReport(t *testing.T) {
	for _, body := range []string{"", "2024/01/01 12:00", "2024/01/01 12:00\n\n  \n"} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		_, err := NewNOAAProvider(srv.Client(), srv.URL, 0).Fetch(context.Background(), "RJTT")
		assert.ErrorIs(t, err, errNoReport, "body %q", body)
		srv.Close()
	}
}

func TestNOAAProviderNotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewNOAAProvider(srv.Client(), srv.URL, 0).Fetch(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, errUnexpected)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(hanedaFile))
	}))
	defer srv.Close()

	p := NewNOAAProvider(srv.Client(), srv.URL, 1)
	p.httpCfg.Backoff.InitialInterval = time.Millisecond
	r, err := p.Fetch(context.Background(), "RJTT")
	require.NoError(t, err)
	assert.Contains(t, r.Raw, "34010KT")
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchHonoursContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewNOAAProvider(srv.Client(), srv.URL, 0).Fetch(ctx, "RJTT")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCircuitOpensAfterFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewNOAAProvider(srv.Client(), srv.URL, 0)
	var err error
	for i := 0; i < 7; i++ {
		_, err = p.Fetch(context.Background(), "RJTT")
	}
	assert.ErrorIs(t, err, errCircuitOpen)
}

func TestAviationWeatherProviderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "RJAA", r.URL.Query().Get("ids"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(`[{"icaoId":"RJAA","obsTime":1704110400,"rawOb":"RJAA 011200Z 16012KT 9999 FEW030 Q1010 "}]`))
	}))
	defer srv.Close()

	r, err := NewAviationWeatherProvider(srv.Client(), srv.URL, 0).Fetch(context.Background(), "RJAA")
	require.NoError(t, err)
	assert.Equal(t, "RJAA 011200Z 16012KT 9999 FEW030 Q1010", r.Raw)
	assert.Equal(t, time.Unix(1704110400, 0).UTC(), r.ObservedAt)
	assert.Equal(t, "aviationweather", r.Provider)
}

func TestAviationWeatherProviderEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewAviationWeatherProvider(srv.Client(), srv.URL, 0).Fetch(context.Background(), "RJAA")
	assert.ErrorIs(t, err, errNoReport)
}

func TestBuild(t *testing.T) {
	provs, err := Build(http.DefaultClient, []string{"aviationweather", " NOAA "}, Options{})
	require.NoError(t, err)
	require.Len(t, provs, 2)
	assert.Equal(t, "aviationweather", provs[0].Name())
	assert.Equal(t, "noaa", provs[1].Name())

	_, err = Build(http.DefaultClient, []string{"openweather"}, Options{})
	assert.Error(t, err)
}
