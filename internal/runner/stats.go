package runner

import (
	"sync"
	"time"
)

// Stats aggregates run timings per algorithm.
type Stats struct {
	mu      sync.RWMutex
	byAlgo  map[string]*timing
	started time.Time
}

type timing struct {
	count int
	total time.Duration
	min   time.Duration
	max   time.Duration
}

// AlgorithmStats is a read-only snapshot of one algorithm's timings.
type AlgorithmStats struct {
	Count int           `json:"count"`
	Avg   time.Duration `json:"avg"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
}

func NewStats() *Stats {
	return &Stats{
		byAlgo:  make(map[string]*timing),
		started: time.Now(),
	}
}

// Record adds one run's elapsed time to the algorithm's tally.
func (s *Stats) Record(algorithm string, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byAlgo[algorithm]
	if !ok {
		t = &timing{min: elapsed, max: elapsed}
		s.byAlgo[algorithm] = t
	}
	t.count++
	t.total += elapsed
	if elapsed < t.min {
		t.min = elapsed
	}
	if elapsed > t.max {
		t.max = elapsed
	}
}

// Snapshot returns the current timings keyed by algorithm name.
func (s *Stats) Snapshot() map[string]AlgorithmStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]AlgorithmStats, len(s.byAlgo))
	for name, t := range s.byAlgo {
		out[name] = AlgorithmStats{
			Count: t.count,
			Avg:   t.total / time.Duration(t.count),
			Min:   t.min,
			Max:   t.max,
		}
	}
	return out
}

// Uptime reports how long the collector has existed.
func (s *Stats) Uptime() time.Duration {
	return time.Since(s.started)
}
