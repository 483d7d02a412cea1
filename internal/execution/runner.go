package execution

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"time"

	"ptx/internal/config"
	"ptx/internal/domain"
)

// Runner executes a single test case through PHPUnit
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Run executes one case on the given worker. Skipped and discovery-error
// cases never reach PHPUnit; they are reported directly.
func (r *Runner) Run(testCase domain.TestCase, workerID int) domain.CaseResult {
	switch testCase.Kind {
	case domain.CaseSkipped:
		return domain.CaseResult{
			Case:   testCase,
			Status: domain.StatusSkipped,
			Output: "Skipped: " + testCase.SkipReason,
		}
	case domain.CaseError:
		return domain.CaseResult{
			Case:   testCase,
			Status: domain.StatusErrored,
			Output: testCase.ErrorMessage,
		}
	}

	phpunitPath := r.config.GetPHPUnitPath()
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, phpunitPath, "--filter", CaseFilter(testCase), testCase.Method.FilePath)

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, fmt.Sprintf("DB_DATABASE=%s", r.config.GetDatabaseName(workerID)))
	cmd.Dir = r.config.ProjectPath

	start := time.Now()
	output, err := cmd.CombinedOutput()
	duration := time.Since(start)

	status := domain.StatusPassed
	if err != nil {
		status = domain.StatusFailed
	}

	return domain.CaseResult{
		Case:     testCase,
		Status:   status,
		Output:   string(output),
		Error:    err,
		Duration: duration,
	}
}

// CaseFilter builds the PHPUnit --filter expression selecting exactly one
// case. A bound case pins its data set; a deferred case matches the method
// with any data set and lets PHPUnit resolve the providers at run time.
func CaseFilter(testCase domain.TestCase) string {
	name := regexp.QuoteMeta(testCase.Method.Name)
	if testCase.Kind == domain.CaseBound {
		if testCase.Row != nil && testCase.Row.Label != "" {
			return fmt.Sprintf(`/::%s with data set "%s"$/`, name, regexp.QuoteMeta(testCase.Row.Label))
		}
		return fmt.Sprintf(`/::%s with data set #%d$/`, name, testCase.DataSetIndex)
	}
	return fmt.Sprintf(`/::%s(\s+with data set .*)?$/`, name)
}
