// Package runner executes scoring algorithms, several at a time, over the
// same immutable concept-map pair. Runs are independent: each produces its
// own result record, and failure of one never aborts the others.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/conceptmap/cmapscore/internal/models"
	"github.com/conceptmap/cmapscore/internal/scoring"
)

// Request names one algorithm to run with its options.
type Request struct {
	Algorithm string
	Options   scoring.Options
}

// Execution is the outcome of one algorithm run. Exactly one of Result and
// Err is set.
type Execution struct {
	RunID     string
	Algorithm string
	Result    *models.ScoreResult
	Err       error
	Elapsed   time.Duration
}

// Runner dispatches scoring runs against a registry.
type Runner struct {
	registry *scoring.Registry
	log      *slog.Logger
	stats    *Stats
}

// New creates a runner. A nil logger falls back to slog.Default().
func New(registry *scoring.Registry, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{registry: registry, log: log, stats: NewStats()}
}

// Stats returns the runner's timing collector.
func (r *Runner) Stats() *Stats { return r.stats }

// RunOne executes a single algorithm run. Panics inside an algorithm are
// recovered into the execution's error so sibling runs stay unaffected.
func (r *Runner) RunOne(ctx context.Context, req Request, master, student *models.ConceptMap) Execution {
	exec := Execution{
		RunID:     uuid.New().String()[:8],
		Algorithm: req.Algorithm,
	}
	if err := ctx.Err(); err != nil {
		exec.Err = err
		return exec
	}

	algo, err := r.registry.Get(req.Algorithm)
	if err != nil {
		exec.Err = err
		return exec
	}

	start := time.Now()
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				exec.Err = fmt.Errorf("algorithm %s panicked: %v", req.Algorithm, rec)
			}
		}()
		exec.Result, exec.Err = algo.Execute(master, student, req.Options)
	}()
	exec.Elapsed = time.Since(start)
	r.stats.Record(req.Algorithm, exec.Elapsed)

	if exec.Err != nil {
		r.log.Warn("scoring run failed",
			"run_id", exec.RunID, "algorithm", req.Algorithm, "error", exec.Err)
	} else {
		r.log.Debug("scoring run completed",
			"run_id", exec.RunID, "algorithm", req.Algorithm, "elapsed", exec.Elapsed)
	}
	return exec
}

// RunAll executes the requested runs concurrently, one goroutine per
// algorithm, and returns the executions in request order. The maps are
// shared read-only across the goroutines; nothing in the engine mutates
// them.
func (r *Runner) RunAll(ctx context.Context, reqs []Request, master, student *models.ConceptMap) []Execution {
	execs := make([]Execution, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			execs[i] = r.RunOne(ctx, req, master, student)
		}(i, req)
	}
	wg.Wait()
	return execs
}
