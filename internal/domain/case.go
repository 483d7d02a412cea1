package domain

import "fmt"

// CaseKind distinguishes the four test case variants the expander can produce
type CaseKind int

const (
	// CaseBound is a concrete case carrying exactly one data row
	CaseBound CaseKind = iota
	// CaseDeferred resolves its data at execution time by re-running the provider
	CaseDeferred
	// CaseSkipped is never executed; it carries the declared skip reason
	CaseSkipped
	// CaseError reports that discovery itself failed to find usable data
	CaseError
)

// String returns the lowercase kind name used in listings and stored results
func (k CaseKind) String() string {
	switch k {
	case CaseBound:
		return "bound"
	case CaseDeferred:
		return "deferred"
	case CaseSkipped:
		return "skipped"
	case CaseError:
		return "error"
	}
	return "unknown"
}

// TestCase is the unit of registration and execution. Exactly one variant's
// fields are meaningful, selected by Kind.
type TestCase struct {
	Method TestMethod
	Kind   CaseKind

	// Bound only
	Row          *DataRow
	DataSetIndex int

	// Skipped only
	SkipReason string

	// Error only
	ErrorMessage string
}

// DisplayName returns the PHPUnit-style case name. Bound cases include
// their data set, e.g. UserTest::testCreate with data set #2.
func (c TestCase) DisplayName() string {
	if c.Kind != CaseBound {
		return c.Method.DisplayName()
	}
	if c.Row != nil && c.Row.Label != "" {
		return fmt.Sprintf("%s with data set %q", c.Method.DisplayName(), c.Row.Label)
	}
	return fmt.Sprintf("%s with data set #%d", c.Method.DisplayName(), c.DataSetIndex)
}

// Runnable reports whether the case reaches PHPUnit at all. Skipped and
// error cases are reported directly without being executed.
func (c TestCase) Runnable() bool {
	return c.Kind == CaseBound || c.Kind == CaseDeferred
}
