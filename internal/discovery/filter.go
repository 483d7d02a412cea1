package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters test files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the test files whose base name matches the pattern.
// Patterns support * and ? wildcards ("*UserTest.php", "*Payment*"); a
// pattern without wildcards matches as a substring.
func (f *Filter) FilterByName(tests []string, pattern string) []string {
	if pattern == "" {
		return tests
	}

	var filtered []string
	for _, test := range tests {
		if matchesName(filepath.Base(test), pattern) {
			filtered = append(filtered, test)
		}
	}
	return filtered
}

func matchesName(name, pattern string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// filepath.Match treats * as "any run of non-separator characters",
	// which already covers file names; this fallback handles patterns like
	// *Payment* where users expect loose substring semantics.
	parts := strings.Split(pattern, "*")
	hasContent := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		hasContent = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasContent
}
