package extensibility

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestTickFunc(t *testing.T) {
	var calls int64
	src := TickFunc(func() int64 {
		calls++
		return calls * 10
	})

	if got := src.NowTicks(); got != 10 {
		t.Errorf("NowTicks = %d, want 10", got)
	}
	if got := src.NowTicks(); got != 20 {
		t.Errorf("NowTicks = %d, want 20", got)
	}
}

func TestLocalTickSource_MinuteTicks(t *testing.T) {
	src := LocalTickSource{}
	want := time.Now().Unix() / 60
	got := src.NowTicks()
	// Allow the clock to tick over between the two reads.
	if got != want && got != want+1 {
		t.Errorf("NowTicks = %d, want %d (or +1)", got, want)
	}
}

func TestLocalTickSource_CustomUnit(t *testing.T) {
	src := LocalTickSource{UnitSeconds: 1}
	want := time.Now().Unix()
	got := src.NowTicks()
	if got != want && got != want+1 {
		t.Errorf("NowTicks = %d, want %d (or +1)", got, want)
	}
}

func TestHTTPTickSource_FetchesRemoteTime(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"abbreviation":"UTC","unixtime":7200}`))
	}))
	defer server.Close()

	src := &HTTPTickSource{URL: server.URL}
	if got := src.NowTicks(); got != 120 {
		t.Errorf("NowTicks = %d, want 120 (7200s in minutes)", got)
	}
}

func TestHTTPTickSource_CustomUnit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unixtime":7200}`))
	}))
	defer server.Close()

	src := &HTTPTickSource{URL: server.URL, UnitSeconds: 1}
	if got := src.NowTicks(); got != 7200 {
		t.Errorf("NowTicks = %d, want 7200", got)
	}
}

func TestHTTPTickSource_RetriesThenSucceeds(t *testing.T) {
	var attempts atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"unixtime":600}`))
	}))
	defer server.Close()

	src := &HTTPTickSource{URL: server.URL, MaxRetries: 2}
	if got := src.NowTicks(); got != 10 {
		t.Errorf("NowTicks = %d, want 10", got)
	}
	if attempts.Load() != 2 {
		t.Errorf("server saw %d attempts, want 2", attempts.Load())
	}
}

func TestHTTPTickSource_FallsBackToLocalClock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	src := &HTTPTickSource{URL: server.URL, MaxRetries: 1, UnitSeconds: 1}
	want := time.Now().Unix()
	got := src.NowTicks()
	// The failed attempts burn some wall time before falling back.
	if got < want || got > want+5 {
		t.Errorf("NowTicks = %d, want local clock near %d", got, want)
	}
}

func TestHTTPTickSource_FallsBackOnGarbageResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	src := &HTTPTickSource{URL: server.URL, MaxRetries: 1, UnitSeconds: 1}
	want := time.Now().Unix()
	got := src.NowTicks()
	if got < want || got > want+5 {
		t.Errorf("NowTicks = %d, want local clock near %d", got, want)
	}
}
