package execution

import "ptx/internal/domain"

// Scheduler distributes test cases across workers
type Scheduler interface {
	Schedule(cases []domain.TestCase, workerCount int) [][]domain.TestCase
}

// RoundRobinScheduler deals cases out evenly across workers
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule assigns case i to worker i mod workerCount, preserving the
// expansion order within each worker's batch
func (s *RoundRobinScheduler) Schedule(cases []domain.TestCase, workerCount int) [][]domain.TestCase {
	if workerCount <= 0 {
		workerCount = 1
	}

	batches := make([][]domain.TestCase, workerCount)
	for i := range batches {
		batches[i] = make([]domain.TestCase, 0)
	}

	for i, c := range cases {
		w := i % workerCount
		batches[w] = append(batches[w], c)
	}

	return batches
}
