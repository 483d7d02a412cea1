package expand

import (
	"fmt"

	"ptx/internal/domain"
)

// Expander expands one parameterized test declaration into test cases.
// It holds no per-call state; the same instance serves every declaration.
type Expander struct {
	resolver ProviderResolver
	factory  CaseFactory
	sink     Sink
}

// NewExpander creates an Expander. The sink may be nil, in which case
// diagnostics are dropped.
func NewExpander(resolver ProviderResolver, factory CaseFactory, sink Sink) *Expander {
	return &Expander{
		resolver: resolver,
		factory:  factory,
		sink:     sink,
	}
}

// Expand produces the ordered, never-empty case list for one declaration.
//
// Priority order, first match wins:
//  1. declared skip      -> one skipped case
//  2. pre-enumerate off  -> one deferred case
//  3. eager enumeration  -> one bound case per row, declaration order
//     - a provider that cannot enumerate ahead degrades the whole method
//       to a single deferred case; rows already gathered are discarded
//     - zero rows across all providers is an authoring problem and is
//       surfaced as a single error case
//  4. any resolution or realization failure -> one diagnostic message and
//     one deferred case; no partial results survive
//
// Failures never propagate out: every path resolves to a valid case list so
// discovery of the surrounding suite is unaffected.
func (e *Expander) Expand(method domain.TestMethod, directives []domain.DataProviderDirective, opts Options) []domain.TestCase {
	if opts.SkipReason != "" {
		return []domain.TestCase{e.factory.Skipped(method, opts.SkipReason)}
	}

	if !opts.PreEnumerate {
		return []domain.TestCase{e.factory.Deferred(method)}
	}

	cases, ok := e.enumerate(method, directives)
	if !ok {
		return []domain.TestCase{e.factory.Deferred(method)}
	}

	if len(cases) == 0 {
		msg := fmt.Sprintf("No data found for %s.%s", method.ClassName, method.Name)
		return []domain.TestCase{e.factory.ExecutionError(method, msg)}
	}

	return cases
}

// enumerate attempts eager enumeration of every directive in declaration
// order. ok=false abandons the whole attempt: the caller returns a single
// deferred case instead of whatever was accumulated, otherwise the rows
// already expanded would run twice once PHPUnit re-resolves the providers.
func (e *Expander) enumerate(method domain.TestMethod, directives []domain.DataProviderDirective) (cases []domain.TestCase, ok bool) {
	index := 0
	for _, directive := range directives {
		capability, err := e.resolver.Resolve(method, directive)
		if err != nil {
			e.report(method, directive, err)
			return nil, false
		}

		if !capability.CanEnumerateAhead() {
			// Expected for providers that need the PHP runtime. Not an
			// error, so nothing is emitted to the sink.
			return nil, false
		}

		rows, err := capability.Rows()
		if err != nil {
			e.report(method, directive, err)
			return nil, false
		}

		for _, row := range rows {
			cases = append(cases, e.factory.Bound(method, row, index))
			index++
		}
	}
	return cases, true
}

// report emits one diagnostic naming the method and the failure. Emission
// problems are the sink's concern and never affect the returned case list.
func (e *Expander) report(method domain.TestMethod, directive domain.DataProviderDirective, err error) {
	if e.sink == nil {
		return
	}
	e.sink.Emit(fmt.Sprintf(
		"Failed to enumerate data for %s.%s (@%s): %v; falling back to a single deferred case",
		method.ClassName, method.Name, directive.Kind, err,
	))
}
