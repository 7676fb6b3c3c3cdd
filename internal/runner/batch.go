package runner

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/conceptmap/cmapscore/internal/models"
	"github.com/conceptmap/cmapscore/internal/parser"
)

// DefaultBatchConcurrency bounds the worker pool when no explicit
// concurrency is configured.
const DefaultBatchConcurrency = 4

// FileResult holds the executions for one student file. Err is set when the
// file could not be parsed at all; the executions are empty in that case.
type FileResult struct {
	File       string
	Executions []Execution
	Err        error
}

// BatchSnapshot is a point-in-time view of a running batch, safe to poll
// from another goroutine.
type BatchSnapshot struct {
	ID        string
	Total     int
	Processed int
	Failed    int
	Current   string
	Done      bool
}

// Batch grades a directory's worth of student files against one master map.
type Batch struct {
	id     string
	runner *Runner
	log    *slog.Logger

	mu        sync.RWMutex
	total     int
	processed int
	failed    int
	current   string
	done      bool
	results   []FileResult

	finished chan struct{}
}

// StartBatch kicks off grading of the given student files against master,
// with up to concurrency files in flight at once. It returns immediately;
// poll Snapshot for progress and call Wait for the results.
func (r *Runner) StartBatch(ctx context.Context, master *models.ConceptMap, files []string, reqs []Request, concurrency int) *Batch {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	b := &Batch{
		id:       uuid.New().String()[:8],
		runner:   r,
		log:      r.log,
		total:    len(files),
		results:  make([]FileResult, len(files)),
		finished: make(chan struct{}),
	}

	go b.run(ctx, master, files, reqs, concurrency)
	return b
}

func (b *Batch) run(ctx context.Context, master *models.ConceptMap, files []string, reqs []Request, concurrency int) {
	defer close(b.finished)

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, file string) {
			defer wg.Done()
			defer func() { <-sem }()
			b.results[i] = b.gradeFile(ctx, master, file, reqs)
		}(i, file)
	}
	wg.Wait()

	b.mu.Lock()
	b.done = true
	b.current = ""
	b.mu.Unlock()
	b.log.Info("batch finished", "batch_id", b.id, "files", b.total, "failed", b.failed)
}

func (b *Batch) gradeFile(ctx context.Context, master *models.ConceptMap, file string, reqs []Request) FileResult {
	b.mu.Lock()
	b.current = file
	b.mu.Unlock()

	res := FileResult{File: file}
	student, err := parser.LoadFile(file)
	if err != nil {
		res.Err = err
		b.log.Warn("skipping unreadable student map", "batch_id", b.id, "file", file, "error", err)
	} else {
		res.Executions = b.runner.RunAll(ctx, reqs, master, student)
	}

	b.mu.Lock()
	b.processed++
	if res.Err != nil {
		b.failed++
	}
	b.mu.Unlock()
	return res
}

// ID returns the batch's short identifier.
func (b *Batch) ID() string { return b.id }

// Snapshot reports current progress.
func (b *Batch) Snapshot() BatchSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return BatchSnapshot{
		ID:        b.id,
		Total:     b.total,
		Processed: b.processed,
		Failed:    b.failed,
		Current:   b.current,
		Done:      b.done,
	}
}

// Wait blocks until every file has been graded and returns the per-file
// results in input order.
func (b *Batch) Wait() []FileResult {
	<-b.finished
	return b.results
}
