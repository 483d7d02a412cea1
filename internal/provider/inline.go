// Package provider resolves data-provider directives to row sources. Inline
// and file-backed directives can be enumerated at discovery time; member
// references can only when the provider method is a plain literal return,
// everything else is left to the PHP runtime.
package provider

import (
	"encoding/json"
	"fmt"

	"ptx/internal/domain"
)

// InlineRows enumerates rows written directly in the declaration
// (@testWith JSON lines or #[TestWith] PHP literals).
type InlineRows struct {
	raw    []string
	syntax domain.RowSyntax
}

// NewInlineRows creates the capability for an inline directive
func NewInlineRows(raw []string, syntax domain.RowSyntax) *InlineRows {
	return &InlineRows{raw: raw, syntax: syntax}
}

// CanEnumerateAhead is always true for inline rows
func (i *InlineRows) CanEnumerateAhead() bool { return true }

// Rows parses each raw row literal. A malformed row fails the whole
// realization; the expander decides what to do with that.
func (i *InlineRows) Rows() ([]domain.DataRow, error) {
	rows := make([]domain.DataRow, 0, len(i.raw))
	for n, raw := range i.raw {
		var row domain.DataRow
		var err error
		switch i.syntax {
		case domain.RowsJSON:
			row, err = jsonRow(raw)
		case domain.RowsPHP:
			row, err = phpRow(raw)
		default:
			err = fmt.Errorf("unknown row syntax %d", i.syntax)
		}
		if err != nil {
			return nil, fmt.Errorf("inline row %d: %w", n, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func jsonRow(raw string) (domain.DataRow, error) {
	var values []any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return domain.DataRow{}, fmt.Errorf("not a JSON array: %w", err)
	}
	return domain.DataRow{Values: values}, nil
}

func phpRow(raw string) (domain.DataRow, error) {
	v, err := ParsePHPValue(raw)
	if err != nil {
		return domain.DataRow{}, err
	}
	entries, ok := v.([]Entry)
	if !ok {
		return domain.DataRow{}, fmt.Errorf("row literal must be an array, got %T", v)
	}
	values := make([]any, len(entries))
	for n, e := range entries {
		values[n] = plainValue(e.Value)
	}
	return domain.DataRow{Values: values}, nil
}
