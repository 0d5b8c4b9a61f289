package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-process counters for served requests and error responses,
// keyed by route series. Good enough for the health surface; an external
// metrics backend is out of scope.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	failures map[string]int64
}

// NewMetrics initializes empty counters.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		failures: make(map[string]int64),
	}
}

// RecordRequest counts one served request under its route series.
func (m *Metrics) RecordRequest(path, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[seriesKey(method, path, strconv.Itoa(status))]++
}

// RecordError counts one error response under its route series and wire code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[seriesKey(method, path, code)]++
}

// Totals returns the aggregate request and failure counts.
func (m *Metrics) Totals() (requests, failures int64) {
	if m == nil {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.requests {
		requests += n
	}
	for _, n := range m.failures {
		failures += n
	}
	return requests, failures
}

func seriesKey(method, path, outcome string) string {
	return method + " " + path + " " + outcome
}
