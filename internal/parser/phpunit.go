package parser

import (
	"regexp"
	"strconv"
	"strings"

	"ptx/internal/domain"
)

// PHPUnitParser parses PHPUnit process output
type PHPUnitParser struct{}

// NewPHPUnitParser creates a new PHPUnitParser
func NewPHPUnitParser() *PHPUnitParser {
	return &PHPUnitParser{}
}

var (
	okPattern       = regexp.MustCompile(`OK\s*\(\s*(\d+)\s+tests?`)
	testsPattern    = regexp.MustCompile(`Tests:\s*(\d+)`)
	failuresPattern = regexp.MustCompile(`Failures:\s*(\d+)`)
	errorsPattern   = regexp.MustCompile(`Errors:\s*(\d+)`)
	// Failure headers look like: 1) UserTest::testCreate with data set #0
	failureHeader = regexp.MustCompile(`^\d+\)\s+(\S.*::\S+.*)$`)
)

// CaseCounts extracts passed and failed test counts from one case run.
// Deferred cases cover the whole method, so the summary line is the only
// place the real count shows up. Falls back to one test per case when the
// output is unreadable.
func (p *PHPUnitParser) CaseCounts(result domain.CaseResult) (passed, failed int) {
	output := result.Output

	if m := okPattern.FindStringSubmatch(output); len(m) >= 2 {
		total, _ := strconv.Atoi(m[1])
		return total, 0
	}

	var total, failures, errors int
	if m := testsPattern.FindStringSubmatch(output); len(m) >= 2 {
		total, _ = strconv.Atoi(m[1])
	}
	if m := failuresPattern.FindStringSubmatch(output); len(m) >= 2 {
		failures, _ = strconv.Atoi(m[1])
	}
	if m := errorsPattern.FindStringSubmatch(output); len(m) >= 2 {
		errors, _ = strconv.Atoi(m[1])
	}
	failed = failures + errors
	if total >= failed {
		passed = total - failed
	}
	if passed > 0 || failed > 0 {
		return passed, failed
	}

	if result.Status == domain.StatusPassed {
		return 1, 0
	}
	return 0, 1
}

// Failures extracts per-test failure details from a failed case run.
// PHPUnit prints one numbered block per failing test; each block starts
// with the qualified test name and ends at the next block or a blank gap.
func (p *PHPUnitParser) Failures(result domain.CaseResult) []domain.TestFailure {
	var failures []domain.TestFailure
	lines := strings.Split(result.Output, "\n")

	for i := 0; i < len(lines); i++ {
		m := failureHeader.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			continue
		}
		failure, next := p.parseBlock(m[1], lines, i+1, result.Case.Method.FilePath)
		failures = append(failures, failure)
		i = next - 1
	}

	return failures
}

// parseBlock reads one failure block starting after its header line.
// Returns the parsed failure and the index of the line after the block.
func (p *PHPUnitParser) parseBlock(name string, lines []string, start int, filePath string) (domain.TestFailure, int) {
	failure := domain.TestFailure{
		TestName:   name,
		FilePath:   filePath,
		StackTrace: []string{},
	}

	var messageLines []string
	i := start
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		if failureHeader.MatchString(trimmed) {
			break
		}
		if strings.HasPrefix(trimmed, "FAILURES!") || strings.HasPrefix(trimmed, "ERRORS!") || strings.HasPrefix(trimmed, "OK (") {
			break
		}

		// Stack frames are absolute paths with line numbers
		if strings.Contains(trimmed, ".php:") && strings.HasPrefix(trimmed, "/") {
			failure.StackTrace = append(failure.StackTrace, trimmed)
			if failure.File == "" && strings.Contains(trimmed, "tests/") {
				if file, line, ok := splitFrame(trimmed); ok {
					failure.File = file
					failure.Line = line
				}
			}
			continue
		}

		if len(messageLines) == 0 && trimmed == "" {
			continue
		}
		messageLines = append(messageLines, lines[i])
	}

	for len(messageLines) > 0 && strings.TrimSpace(messageLines[len(messageLines)-1]) == "" {
		messageLines = messageLines[:len(messageLines)-1]
	}
	failure.Message = strings.Join(messageLines, "\n")
	failure.ErrorDetails = failure.Message

	return failure, i
}

// splitFrame splits "/path/to/FooTest.php:42" into path and line
func splitFrame(frame string) (file string, line int, ok bool) {
	idx := strings.LastIndex(frame, ":")
	if idx <= 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(frame[idx+1:]))
	if err != nil {
		return "", 0, false
	}
	return frame[:idx], n, true
}
