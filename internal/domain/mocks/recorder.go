package mocks

import (
	"sync"
	"time"
)

// Recorder is a mock ports.KinshipRecorder that counts observations.
type Recorder struct {
	mu      sync.Mutex
	Queries map[string]int
	Builds  []int
}

// NewRecorder creates a new mock Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Queries: make(map[string]int)}
}

// ObserveQuery counts a query under its tier.
func (r *Recorder) ObserveQuery(tier string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Queries[tier]++
}

// ObserveBuild records the roster size of a rebuild.
func (r *Recorder) ObserveBuild(members int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Builds = append(r.Builds, members)
}

// BuildCount returns the number of rebuilds observed.
func (r *Recorder) BuildCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Builds)
}

// QueryCount returns the number of queries observed for tier.
func (r *Recorder) QueryCount(tier string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Queries[tier]
}
