package provider

import (
	"fmt"
	"regexp"
	"strings"

	"ptx/internal/domain"
	"ptx/internal/expand"
)

// StaticRows is a capability whose rows were already realized from a
// statically readable provider method. A shape problem found during
// realization is stashed and surfaced from Rows.
type StaticRows struct {
	rows []domain.DataRow
	err  error
}

// CanEnumerateAhead is true: the rows are already in hand
func (s *StaticRows) CanEnumerateAhead() bool { return true }

// Rows returns the realized rows or the stashed realization error
func (s *StaticRows) Rows() ([]domain.DataRow, error) {
	return s.rows, s.err
}

// RuntimeRows declines ahead-of-time enumeration: the provider needs the
// PHP runtime (non-literal body, cross-class reference, side effects).
type RuntimeRows struct {
	reason string
}

// CanEnumerateAhead is false by definition
func (r *RuntimeRows) CanEnumerateAhead() bool { return false }

// Rows always fails: this capability exists to signal deferral
func (r *RuntimeRows) Rows() ([]domain.DataRow, error) {
	return nil, fmt.Errorf("rows are not available before run time: %s", r.reason)
}

// memberBodyPattern finds a named method declaration; the body is then
// extracted by brace matching from the match end.
func memberBodyPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)function\s+` + regexp.QuoteMeta(name) + `\s*\([^)]*\)\s*(?::\s*[\w|\\\[\]]+\s*)?\{`)
}

// staticMemberRows tries to read the provider method straight from the class
// source. found=false means the method is not declared in this source at all.
// A found method whose body is anything but a single literal return comes
// back as RuntimeRows.
func staticMemberRows(source, providerName string) (capability expand.ProviderCapability, found bool) {
	loc := memberBodyPattern(providerName).FindStringIndex(source)
	if loc == nil {
		return nil, false
	}

	body, ok := braceBody(source, loc[1]-1)
	if !ok {
		return &RuntimeRows{reason: fmt.Sprintf("provider %s has an unreadable body", providerName)}, true
	}

	expr, ok := singleReturnExpr(body)
	if !ok {
		return &RuntimeRows{reason: fmt.Sprintf("provider %s is not a single literal return", providerName)}, true
	}

	v, err := ParsePHPValue(expr)
	if err != nil {
		return &RuntimeRows{reason: fmt.Sprintf("provider %s: %v", providerName, err)}, true
	}

	entries, ok := v.([]Entry)
	if !ok {
		return &StaticRows{err: fmt.Errorf("provider %s must return an array of data sets, got %T", providerName, v)}, true
	}

	rows := make([]domain.DataRow, 0, len(entries))
	for n, e := range entries {
		rowEntries, ok := e.Value.([]Entry)
		if !ok {
			return &StaticRows{err: fmt.Errorf("provider %s: data set %d is not an array", providerName, n)}, true
		}
		values := make([]any, len(rowEntries))
		for i, re := range rowEntries {
			values[i] = plainValue(re.Value)
		}
		rows = append(rows, domain.DataRow{Values: values, Label: e.Key})
	}
	return &StaticRows{rows: rows}, true
}

// braceBody returns the text between the opening brace at openAt and its
// matching close brace, exclusive.
func braceBody(source string, openAt int) (string, bool) {
	depth := 0
	for i := openAt; i < len(source); i++ {
		switch source[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return source[openAt+1 : i], true
			}
		}
	}
	return "", false
}

// singleReturnExpr accepts a body of exactly one return statement and hands
// back its expression text.
func singleReturnExpr(body string) (string, bool) {
	trimmed := strings.TrimSpace(stripLineComments(body))
	if !strings.HasPrefix(trimmed, "return") {
		return "", false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "return"))
	if !strings.HasSuffix(rest, ";") {
		return "", false
	}
	expr := strings.TrimSpace(strings.TrimSuffix(rest, ";"))
	// A second statement would leave a stray ; in the middle
	if strings.Contains(expr, ";") {
		return "", false
	}
	return expr, true
}

// stripLineComments drops // and # line comments so a commented provider
// body still reads as a single return. String contents are not inspected;
// providers with comment markers inside literals fall back to the runtime.
func stripLineComments(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
