package domain

import "time"

// CaseStatus is the outcome of executing or reporting one test case
type CaseStatus int

const (
	// StatusPassed means PHPUnit ran the case and it succeeded
	StatusPassed CaseStatus = iota
	// StatusFailed means PHPUnit ran the case and it failed
	StatusFailed
	// StatusSkipped means the case was a skip and was never executed
	StatusSkipped
	// StatusErrored means the case was a discovery error and was never executed
	StatusErrored
)

// String returns the lowercase status name used in stored results
func (s CaseStatus) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	case StatusErrored:
		return "errored"
	}
	return "unknown"
}

// CaseResult represents the result of executing one test case
type CaseResult struct {
	Case     TestCase
	Status   CaseStatus
	Output   string        // Raw output from PHPUnit (empty for cases never run)
	Error    error         // Error if the PHPUnit invocation itself failed
	Duration time.Duration // Time taken to execute
}

// RunMeta contains metadata about a test run
type RunMeta struct {
	TotalCases      int     `json:"total_cases"`
	BoundCases      int     `json:"bound_cases"`
	DeferredCases   int     `json:"deferred_cases"`
	SkippedCases    int     `json:"skipped_cases"`
	DiscoveryErrors int     `json:"discovery_errors"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete stored structure for one run
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []TestFailure `json:"details"`
}

// MigrationResult represents the result of preparing one worker database
type MigrationResult struct {
	WorkerID int
	Success  bool
	Output   string
	Error    error
}
