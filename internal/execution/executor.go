package execution

import (
	"time"

	"ptx/internal/domain"
)

// Executor executes test cases and returns their results
type Executor interface {
	Execute(cases []domain.TestCase) ([]domain.CaseResult, time.Duration, error)
}
