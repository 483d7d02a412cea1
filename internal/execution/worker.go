package execution

import (
	"context"
	"sync"
	"time"

	"ptx/internal/config"
	"ptx/internal/domain"
	"ptx/internal/parser"
	"ptx/internal/ui"
)

// WorkerPool manages a pool of workers for parallel case execution
type WorkerPool struct {
	config    *config.Config
	runner    *Runner
	scheduler Scheduler
	progress  *ui.ProgressBar
	parser    *parser.PHPUnitParser
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner, scheduler Scheduler, phpunitParser *parser.PHPUnitParser) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
		parser:    phpunitParser,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute runs all cases in parallel (no fail-fast)
func (wp *WorkerPool) Execute(cases []domain.TestCase) ([]domain.CaseResult, time.Duration, error) {
	return wp.ExecuteWithOptions(cases, false)
}

// ExecuteWithOptions runs cases with optional fail-fast (stop on first failure)
func (wp *WorkerPool) ExecuteWithOptions(cases []domain.TestCase, failFast bool) ([]domain.CaseResult, time.Duration, error) {
	if len(cases) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return wp.executeAll(cases)
	}
	return wp.executeFailFast(cases)
}

func (wp *WorkerPool) workerCount() int {
	n := wp.config.Processors
	if n <= 0 {
		n = 1
	}
	return n
}

// executeAll pre-partitions the cases across workers with the scheduler so
// runs distribute deterministically, then runs every batch to completion.
func (wp *WorkerPool) executeAll(cases []domain.TestCase) ([]domain.CaseResult, time.Duration, error) {
	workerCount := wp.workerCount()
	batches := wp.scheduler.Schedule(cases, workerCount)
	results := make(chan domain.CaseResult, len(cases))

	var mu sync.Mutex
	var completed, passed, failed int
	startTime := time.Now()

	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		go func(workerID int, batch []domain.TestCase) {
			defer wg.Done()
			for _, testCase := range batch {
				result := wp.runner.Run(testCase, workerID)
				results <- result

				p, f := wp.caseCounts(result)
				mu.Lock()
				completed++
				passed += p
				failed += f
				if wp.progress != nil {
					wp.progress.Update(completed, passed, failed)
				}
				mu.Unlock()
			}
		}(i+1, batch)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.CaseResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// executeFailFast pulls cases from a shared queue and stops handing out
// work after the first failure.
func (wp *WorkerPool) executeFailFast(cases []domain.TestCase) ([]domain.CaseResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := make(chan domain.TestCase, 1)
	results := make(chan domain.CaseResult, len(cases))

	go func() {
		defer close(queue)
		for _, testCase := range cases {
			select {
			case <-ctx.Done():
				return
			case queue <- testCase:
			}
		}
	}()

	var mu sync.Mutex
	var completed, passed, failed int
	var seenFailure bool
	startTime := time.Now()
	workerCount := wp.workerCount()

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for testCase := range queue {
				result := wp.runner.Run(testCase, workerID)
				mu.Lock()
				done := seenFailure
				mu.Unlock()
				if done {
					continue
				}
				results <- result

				p, f := wp.caseCounts(result)
				mu.Lock()
				completed++
				passed += p
				failed += f
				if wp.progress != nil {
					wp.progress.Update(completed, passed, failed)
				}
				if result.Status == domain.StatusFailed || result.Status == domain.StatusErrored {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.CaseResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// caseCounts turns one case result into pass/fail counts for the progress
// display. A bound case is one test; a deferred case may cover many, so
// the PHPUnit output parser is consulted when available.
func (wp *WorkerPool) caseCounts(result domain.CaseResult) (passed, failed int) {
	switch result.Status {
	case domain.StatusSkipped:
		return 0, 0
	case domain.StatusErrored:
		return 0, 1
	}
	if result.Case.Kind == domain.CaseDeferred && wp.parser != nil {
		return wp.parser.CaseCounts(result)
	}
	if result.Status == domain.StatusPassed {
		return 1, 0
	}
	return 0, 1
}
