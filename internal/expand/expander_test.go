package expand

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ptx/internal/domain"
)

// stubCapability is a canned ProviderCapability for tests
type stubCapability struct {
	enumerable bool
	rows       []domain.DataRow
	rowsErr    error
}

func (s *stubCapability) CanEnumerateAhead() bool { return s.enumerable }

func (s *stubCapability) Rows() ([]domain.DataRow, error) {
	if s.rowsErr != nil {
		return nil, s.rowsErr
	}
	return s.rows, nil
}

// stubResolver hands out capabilities in directive order
type stubResolver struct {
	capabilities []ProviderCapability
	err          error
	calls        int
}

func (s *stubResolver) Resolve(method domain.TestMethod, directive domain.DataProviderDirective) (ProviderCapability, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.calls >= len(s.capabilities) {
		return nil, fmt.Errorf("unexpected resolve call %d", s.calls)
	}
	c := s.capabilities[s.calls]
	s.calls++
	return c, nil
}

// captureSink records emitted diagnostics
type captureSink struct {
	messages []string
}

func (c *captureSink) Emit(message string) {
	c.messages = append(c.messages, message)
}

func row(values ...any) domain.DataRow {
	return domain.DataRow{Values: values}
}

func method() domain.TestMethod {
	return domain.TestMethod{
		ClassName: "UserTest",
		Name:      "testCreate",
		FilePath:  "tests/UserTest.php",
		Params:    []string{"name", "age"},
	}
}

// directives returns n placeholder member directives; the stub resolver
// ignores their content.
func directives(n int) []domain.DataProviderDirective {
	ds := make([]domain.DataProviderDirective, n)
	for i := range ds {
		ds[i] = domain.DataProviderDirective{Kind: domain.DirectiveMember, Target: fmt.Sprintf("provider%d", i)}
	}
	return ds
}

func newTestExpander(resolver ProviderResolver, sink Sink) *Expander {
	return NewExpander(resolver, NewFactory(), sink)
}

func kinds(cases []domain.TestCase) []domain.CaseKind {
	ks := make([]domain.CaseKind, len(cases))
	for i, c := range cases {
		ks[i] = c.Kind
	}
	return ks
}

func TestExpander_SkipShortCircuitsEverything(t *testing.T) {
	tests := []struct {
		name     string
		resolver *stubResolver
		count    int
	}{
		{
			name:     "no providers",
			resolver: &stubResolver{},
			count:    0,
		},
		{
			name: "providers with data are not consulted",
			resolver: &stubResolver{capabilities: []ProviderCapability{
				&stubCapability{enumerable: true, rows: []domain.DataRow{row(1)}},
			}},
			count: 1,
		},
		{
			name:     "failing resolver is not consulted",
			resolver: &stubResolver{err: errors.New("boom")},
			count:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &captureSink{}
			e := newTestExpander(tt.resolver, sink)

			cases := e.Expand(method(), directives(tt.count), Options{
				SkipReason:   "flaky on CI",
				PreEnumerate: true,
			})

			if len(cases) != 1 {
				t.Fatalf("expected exactly one case, got %d", len(cases))
			}
			if cases[0].Kind != domain.CaseSkipped {
				t.Errorf("expected skipped case, got %s", cases[0].Kind)
			}
			if cases[0].SkipReason != "flaky on CI" {
				t.Errorf("expected skip reason to carry through, got %q", cases[0].SkipReason)
			}
			if tt.resolver.calls != 0 {
				t.Errorf("skip must not consult providers, resolver called %d times", tt.resolver.calls)
			}
			if len(sink.messages) != 0 {
				t.Errorf("skip must not emit diagnostics, got %v", sink.messages)
			}
		})
	}
}

func TestExpander_PreEnumerateOffReturnsSingleDeferred(t *testing.T) {
	resolver := &stubResolver{capabilities: []ProviderCapability{
		&stubCapability{enumerable: true, rows: []domain.DataRow{row(1), row(2)}},
	}}
	e := newTestExpander(resolver, &captureSink{})

	cases := e.Expand(method(), directives(1), Options{PreEnumerate: false})

	if len(cases) != 1 {
		t.Fatalf("expected exactly one case, got %d", len(cases))
	}
	if cases[0].Kind != domain.CaseDeferred {
		t.Errorf("expected deferred case, got %s", cases[0].Kind)
	}
	if resolver.calls != 0 {
		t.Errorf("deferred expansion must not consult providers, resolver called %d times", resolver.calls)
	}
}

func TestExpander_BoundCasesPreserveRowOrder(t *testing.T) {
	r1, r2, r3 := row("a"), row("b"), row("c")
	resolver := &stubResolver{capabilities: []ProviderCapability{
		&stubCapability{enumerable: true, rows: []domain.DataRow{r1, r2, r3}},
	}}
	e := newTestExpander(resolver, &captureSink{})

	cases := e.Expand(method(), directives(1), Options{PreEnumerate: true})

	if len(cases) != 3 {
		t.Fatalf("expected three bound cases, got %d", len(cases))
	}
	want := []domain.DataRow{r1, r2, r3}
	for i, c := range cases {
		if c.Kind != domain.CaseBound {
			t.Fatalf("case %d: expected bound, got %s", i, c.Kind)
		}
		if diff := cmp.Diff(want[i], *c.Row); diff != "" {
			t.Errorf("case %d row mismatch (-want +got):\n%s", i, diff)
		}
		if c.DataSetIndex != i {
			t.Errorf("case %d: expected data set index %d, got %d", i, i, c.DataSetIndex)
		}
	}
}

func TestExpander_MultipleProvidersKeepDeclarationOrder(t *testing.T) {
	resolver := &stubResolver{capabilities: []ProviderCapability{
		&stubCapability{enumerable: true, rows: []domain.DataRow{row(1), row(2)}},
		&stubCapability{enumerable: true, rows: nil}, // zero rows is not an error by itself
		&stubCapability{enumerable: true, rows: []domain.DataRow{row(3)}},
	}}
	e := newTestExpander(resolver, &captureSink{})

	cases := e.Expand(method(), directives(3), Options{PreEnumerate: true})

	var got []any
	for _, c := range cases {
		got = append(got, c.Row.Values[0])
	}
	if diff := cmp.Diff([]any{1, 2, 3}, got); diff != "" {
		t.Errorf("row order mismatch (-want +got):\n%s", diff)
	}
	for i, c := range cases {
		if c.DataSetIndex != i {
			t.Errorf("data set index must run across providers, case %d has %d", i, c.DataSetIndex)
		}
	}
}

func TestExpander_NonEnumerableProviderDiscardsPartialResults(t *testing.T) {
	resolver := &stubResolver{capabilities: []ProviderCapability{
		&stubCapability{enumerable: true, rows: []domain.DataRow{row(1)}},
		&stubCapability{enumerable: false},
	}}
	sink := &captureSink{}
	e := newTestExpander(resolver, sink)

	cases := e.Expand(method(), directives(2), Options{PreEnumerate: true})

	if len(cases) != 1 {
		t.Fatalf("expected exactly one case, got %d", len(cases))
	}
	if cases[0].Kind != domain.CaseDeferred {
		t.Errorf("expected deferred case, got %s", cases[0].Kind)
	}
	// A non-enumerable provider is an expected condition, not a failure
	if len(sink.messages) != 0 {
		t.Errorf("non-enumerable provider must not emit diagnostics, got %v", sink.messages)
	}
}

func TestExpander_ZeroRowsIsReportedAsErrorCase(t *testing.T) {
	tests := []struct {
		name         string
		capabilities []ProviderCapability
	}{
		{
			name: "single empty provider",
			capabilities: []ProviderCapability{
				&stubCapability{enumerable: true},
			},
		},
		{
			name: "several empty providers",
			capabilities: []ProviderCapability{
				&stubCapability{enumerable: true},
				&stubCapability{enumerable: true},
			},
		},
		{
			name:         "no providers at all",
			capabilities: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &stubResolver{capabilities: tt.capabilities}
			e := newTestExpander(resolver, &captureSink{})

			cases := e.Expand(method(), directives(len(tt.capabilities)), Options{PreEnumerate: true})

			if len(cases) != 1 {
				t.Fatalf("expected exactly one case, got %d", len(cases))
			}
			if cases[0].Kind != domain.CaseError {
				t.Fatalf("expected error case, got %s", cases[0].Kind)
			}
			if want := "No data found for UserTest.testCreate"; cases[0].ErrorMessage != want {
				t.Errorf("expected message %q, got %q", want, cases[0].ErrorMessage)
			}
		})
	}
}

func TestExpander_ResolutionFailureDegradesToDeferred(t *testing.T) {
	resolver := &stubResolver{err: errors.New("provider method not found")}
	sink := &captureSink{}
	e := newTestExpander(resolver, sink)

	cases := e.Expand(method(), directives(1), Options{PreEnumerate: true})

	if len(cases) != 1 || cases[0].Kind != domain.CaseDeferred {
		t.Fatalf("expected a single deferred case, got %v", kinds(cases))
	}
	if len(sink.messages) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(sink.messages), sink.messages)
	}
	msg := sink.messages[0]
	if !strings.Contains(msg, "UserTest.testCreate") {
		t.Errorf("diagnostic must name the method, got %q", msg)
	}
	if !strings.Contains(msg, "provider method not found") {
		t.Errorf("diagnostic must carry the failure detail, got %q", msg)
	}
}

func TestExpander_RealizationFailureDegradesToDeferred(t *testing.T) {
	resolver := &stubResolver{capabilities: []ProviderCapability{
		&stubCapability{enumerable: true, rows: []domain.DataRow{row(1)}},
		&stubCapability{enumerable: true, rowsErr: errors.New("malformed row 2")},
	}}
	sink := &captureSink{}
	e := newTestExpander(resolver, sink)

	cases := e.Expand(method(), directives(2), Options{PreEnumerate: true})

	if len(cases) != 1 || cases[0].Kind != domain.CaseDeferred {
		t.Fatalf("expected a single deferred case, got %v", kinds(cases))
	}
	if len(sink.messages) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(sink.messages), sink.messages)
	}
	if !strings.Contains(sink.messages[0], "UserTest.testCreate") {
		t.Errorf("diagnostic must name the method, got %q", sink.messages[0])
	}
}

func TestExpander_NilSinkDropsDiagnostics(t *testing.T) {
	resolver := &stubResolver{err: errors.New("boom")}
	e := newTestExpander(resolver, nil)

	cases := e.Expand(method(), directives(1), Options{PreEnumerate: true})

	if len(cases) != 1 || cases[0].Kind != domain.CaseDeferred {
		t.Fatalf("expected a single deferred case, got %v", kinds(cases))
	}
}

func TestExpander_Idempotence(t *testing.T) {
	build := func() *Expander {
		return newTestExpander(&stubResolver{capabilities: []ProviderCapability{
			&stubCapability{enumerable: true, rows: []domain.DataRow{row(1), row(2)}},
			&stubCapability{enumerable: true, rows: []domain.DataRow{row(3)}},
		}}, &captureSink{})
	}

	first := build().Expand(method(), directives(2), Options{PreEnumerate: true})
	second := build().Expand(method(), directives(2), Options{PreEnumerate: true})

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("identical inputs must expand identically (-first +second):\n%s", diff)
	}
}
