package provider

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ptx/internal/domain"
)

// FileRows loads data rows from a CSV or JSON file referenced by a
// @dataFile directive. The path is resolved when the capability is built;
// reading and decoding happen on realization.
type FileRows struct {
	path string
}

// NewFileRows creates the capability for a file directive
func NewFileRows(path string) *FileRows {
	return &FileRows{path: path}
}

// CanEnumerateAhead is always true for file-backed rows
func (f *FileRows) CanEnumerateAhead() bool { return true }

// Rows reads and decodes the file. CSV yields one string value per column;
// JSON must be an array of arrays.
func (f *FileRows) Rows() ([]domain.DataRow, error) {
	switch ext := strings.ToLower(filepath.Ext(f.path)); ext {
	case ".csv":
		return f.csvRows()
	case ".json":
		return f.jsonRows()
	default:
		return nil, fmt.Errorf("unsupported data file extension %q (want .csv or .json)", ext)
	}
}

func (f *FileRows) csvRows() ([]domain.DataRow, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // rows may have different arities; not ours to validate
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read data file %s: %w", f.path, err)
	}

	rows := make([]domain.DataRow, 0, len(records))
	for _, record := range records {
		values := make([]any, len(record))
		for i, field := range record {
			values[i] = field
		}
		rows = append(rows, domain.DataRow{Values: values})
	}
	return rows, nil
}

func (f *FileRows) jsonRows() ([]domain.DataRow, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var raw [][]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse data file %s: %w", f.path, err)
	}

	rows := make([]domain.DataRow, 0, len(raw))
	for _, values := range raw {
		rows = append(rows, domain.DataRow{Values: values})
	}
	return rows, nil
}
