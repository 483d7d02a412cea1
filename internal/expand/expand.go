// Package expand turns one parameterized test declaration into the ordered
// list of test cases that get registered. Data enumeration is pushed behind
// small interfaces so the provider machinery and the case representation can
// vary without touching the expansion policy itself.
package expand

import (
	"ptx/internal/domain"
)

// ProviderResolver maps a data-provider directive to the component able to
// enumerate (or decline to enumerate) its rows.
type ProviderResolver interface {
	Resolve(method domain.TestMethod, directive domain.DataProviderDirective) (ProviderCapability, error)
}

// ProviderCapability is one resolved data source for a test method.
type ProviderCapability interface {
	// CanEnumerateAhead reports whether the rows can be produced at
	// discovery time, before any test runs.
	CanEnumerateAhead() bool
	// Rows realizes the data rows in order. May fail on realization.
	Rows() ([]domain.DataRow, error)
}

// CaseFactory materializes the four test case variants. The expander never
// builds cases directly, so hosts can substitute richer case types.
type CaseFactory interface {
	Skipped(method domain.TestMethod, reason string) domain.TestCase
	Bound(method domain.TestMethod, row domain.DataRow, dataSetIndex int) domain.TestCase
	Deferred(method domain.TestMethod) domain.TestCase
	ExecutionError(method domain.TestMethod, message string) domain.TestCase
}

// Sink is a process-wide, append-only diagnostic channel. Implementations
// must be safe for concurrent Emit calls.
type Sink interface {
	Emit(message string)
}

// Options configures one expansion call.
type Options struct {
	// SkipReason marks the whole declaration as skipped when non-empty.
	// A skip short-circuits everything else, including provider data.
	SkipReason string
	// PreEnumerate enables eager enumeration at discovery time. When false
	// the method always becomes a single deferred case.
	PreEnumerate bool
}
