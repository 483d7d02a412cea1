package parser

import "ptx/internal/domain"

// Parser parses PHPUnit output and extracts failures
type Parser interface {
	CaseCounts(result domain.CaseResult) (passed, failed int)
	Failures(result domain.CaseResult) []domain.TestFailure
}
