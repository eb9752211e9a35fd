// Package extensibility provides pluggable tick-source implementations for
// the core's TickSource interface.
package extensibility

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// DefaultTimeURL serves a JSON document with a "unixtime" field (seconds
// since the Unix epoch).
const DefaultTimeURL = "http://worldtimeapi.org/api/timezone/Etc/UTC"

// TickFunc adapts a plain function to the TickSource interface.
type TickFunc func() int64

// NowTicks returns f().
func (f TickFunc) NowTicks() int64 {
	return f()
}

// LocalTickSource reads the local clock, in UnitSeconds-sized ticks since
// the Unix epoch. The zero value counts minutes.
type LocalTickSource struct {
	UnitSeconds int64 // tick size in seconds; 0 means 60 (minutes)
}

func (s LocalTickSource) unit() int64 {
	if s.UnitSeconds <= 0 {
		return 60
	}
	return s.UnitSeconds
}

// NowTicks returns the local clock reading.
func (s LocalTickSource) NowTicks() int64 {
	return time.Now().Unix() / s.unit()
}

// HTTPTickSource fetches ticks from an internet time API, falling back to
// the local clock when the fetch fails. Failures never surface to the
// caller; the automaton core expects an infallible tick source.
type HTTPTickSource struct {
	URL         string        // defaults to DefaultTimeURL
	Client      *http.Client  // defaults to a client with Timeout
	Timeout     time.Duration // per-request timeout for the default client; 0 means 10s
	MaxRetries  int           // additional attempts after the first; 0 means 2
	UnitSeconds int64         // tick size in seconds; 0 means 60 (minutes)
	Fallback    LocalTickSource
}

// timePayload is the subset of the time API response the source reads.
type timePayload struct {
	UnixTime int64 `json:"unixtime"`
}

// NowTicks fetches the remote unixtime and converts it to ticks. Each failed
// attempt backs off exponentially; after the retry budget is spent the local
// clock is used instead.
func (s *HTTPTickSource) NowTicks() int64 {
	unixTime, err := s.fetchWithBackoff()
	if err != nil {
		fallback := s.Fallback
		if fallback.UnitSeconds == 0 {
			fallback.UnitSeconds = s.UnitSeconds
		}
		return fallback.NowTicks()
	}
	unit := s.UnitSeconds
	if unit <= 0 {
		unit = 60
	}
	return unixTime / unit
}

func (s *HTTPTickSource) fetchWithBackoff() (int64, error) {
	maxRetries := s.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 2
	}
	baseDelay := 200 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * baseDelay
			time.Sleep(delay)
		}
		unixTime, err := s.fetchOnce()
		if err == nil {
			return unixTime, nil
		}
		lastErr = err
	}
	return 0, fmt.Errorf("fetch time after %d retries: %w", maxRetries, lastErr)
}

func (s *HTTPTickSource) fetchOnce() (int64, error) {
	url := s.URL
	if url == "" {
		url = DefaultTimeURL
	}
	client := s.Client
	if client == nil {
		timeout := s.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	resp, err := client.Get(url)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("read time response: %w", err)
	}
	var payload timePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("unmarshal time response: %w", err)
	}
	if payload.UnixTime == 0 {
		return 0, fmt.Errorf("time response missing unixtime")
	}
	return payload.UnixTime, nil
}
