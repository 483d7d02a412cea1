package discovery

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"ptx/internal/domain"
)

// Parser extracts test declarations from PHP test sources, including each
// method's data-provider directives and declaration-level skip.
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

var (
	classPattern  = regexp.MustCompile(`(?m)^\s*(?:final\s+|abstract\s+|readonly\s+)*class\s+(\w+)`)
	methodPattern = regexp.MustCompile(`^\s*(?:(?:public|protected|private|static|final)\s+)*function\s+(\w+)\s*\(([^)]*)\)`)
	paramPattern  = regexp.MustCompile(`\$(\w+)`)

	attrDataProvider = regexp.MustCompile(`#\[\s*DataProvider\(\s*['"](\w+)['"]\s*\)\s*\]`)
	attrExternal     = regexp.MustCompile(`#\[\s*DataProviderExternal\(\s*\\?([\w\\]+?)(?:::class)?\s*,\s*['"](\w+)['"]\s*\)\s*\]`)
	attrTestWith     = regexp.MustCompile(`#\[\s*TestWith\((.*)\)\s*\]`)
	attrSkip         = regexp.MustCompile(`#\[\s*Skip\(\s*['"]([^'"]*)['"]\s*\)\s*\]`)
)

// FindDeclarations finds all test method declarations in a test file. A
// method qualifies when its name starts with "test" or its docblock carries
// @test. Directive order follows source order.
func (p *Parser) FindDeclarations(filePath string) ([]domain.Declaration, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	source := string(content)

	className := ""
	if m := classPattern.FindStringSubmatch(source); len(m) > 1 {
		className = m[1]
	}

	var declarations []domain.Declaration
	pending := annotations{}
	inDocblock := false

	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)

		if inDocblock {
			pending.docblock = append(pending.docblock, trimmed)
			if strings.HasSuffix(trimmed, "*/") {
				inDocblock = false
			}
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "/**"):
			// A fresh docblock replaces whatever annotations were pending
			pending = annotations{docblock: []string{trimmed}}
			inDocblock = !strings.HasSuffix(trimmed, "*/")
			continue

		case strings.HasPrefix(trimmed, "#["):
			pending.attributes = append(pending.attributes, trimmed)
			continue

		case trimmed == "":
			continue
		}

		if m := methodPattern.FindStringSubmatch(line); m != nil {
			name, params := m[1], m[2]
			if isTestMethod(name, pending.docblock) {
				declarations = append(declarations, p.declaration(className, name, params, filePath, pending))
			}
			pending = annotations{}
			continue
		}

		// Any other code line breaks the association between the pending
		// annotations and a later method
		pending = annotations{}
	}

	return declarations, nil
}

// annotations collects the docblock and attribute lines preceding a method
type annotations struct {
	docblock   []string
	attributes []string
}

func isTestMethod(name string, docblock []string) bool {
	if strings.HasPrefix(name, "test") {
		return true
	}
	for _, line := range docblock {
		if tag, _ := docblockTag(line); tag == "test" {
			return true
		}
	}
	return false
}

func (p *Parser) declaration(className, methodName, params, filePath string, pending annotations) domain.Declaration {
	decl := domain.Declaration{
		Method: domain.TestMethod{
			ClassName: className,
			Name:      methodName,
			FilePath:  filePath,
			Params:    paramNames(params),
		},
	}

	p.applyDocblock(&decl, pending.docblock)
	p.applyAttributes(&decl, pending.attributes)
	return decl
}

// applyDocblock reads @dataProvider, @testWith, @dataFile and @skip tags.
// @testWith rows are JSON arrays, one per docblock line, starting on the
// tag's own line.
func (p *Parser) applyDocblock(decl *domain.Declaration, docblock []string) {
	var testWith *domain.DataProviderDirective

	for _, line := range docblock {
		tag, rest := docblockTag(line)

		if tag == "" && testWith != nil {
			// Continuation rows of an open @testWith block
			if body := docblockBody(line); strings.HasPrefix(body, "[") {
				testWith.InlineRows = append(testWith.InlineRows, body)
				continue
			}
		}
		if tag != "" && testWith != nil {
			decl.Directives = append(decl.Directives, *testWith)
			testWith = nil
		}

		switch tag {
		case "dataProvider":
			decl.Directives = append(decl.Directives, domain.DataProviderDirective{
				Kind:   domain.DirectiveMember,
				Target: firstWord(rest),
			})
		case "testWith":
			testWith = &domain.DataProviderDirective{
				Kind:   domain.DirectiveInline,
				Syntax: domain.RowsJSON,
			}
			if row := strings.TrimSpace(rest); strings.HasPrefix(row, "[") {
				testWith.InlineRows = append(testWith.InlineRows, row)
			}
		case "dataFile":
			decl.Directives = append(decl.Directives, domain.DataProviderDirective{
				Kind:   domain.DirectiveFile,
				Target: firstWord(rest),
			})
		case "skip":
			reason := strings.TrimSpace(rest)
			if reason == "" {
				reason = "marked skipped"
			}
			decl.SkipReason = reason
		}
	}

	if testWith != nil {
		decl.Directives = append(decl.Directives, *testWith)
	}
}

// applyAttributes reads the PHP 8 attribute forms of the same directives
func (p *Parser) applyAttributes(decl *domain.Declaration, attributes []string) {
	for _, line := range attributes {
		if m := attrDataProvider.FindStringSubmatch(line); m != nil {
			decl.Directives = append(decl.Directives, domain.DataProviderDirective{
				Kind:   domain.DirectiveMember,
				Target: m[1],
			})
			continue
		}
		if m := attrExternal.FindStringSubmatch(line); m != nil {
			decl.Directives = append(decl.Directives, domain.DataProviderDirective{
				Kind:        domain.DirectiveExternalMember,
				TargetClass: m[1],
				Target:      m[2],
			})
			continue
		}
		if m := attrTestWith.FindStringSubmatch(line); m != nil {
			decl.Directives = append(decl.Directives, domain.DataProviderDirective{
				Kind:       domain.DirectiveInline,
				InlineRows: []string{strings.TrimSpace(m[1])},
				Syntax:     domain.RowsPHP,
			})
			continue
		}
		if m := attrSkip.FindStringSubmatch(line); m != nil {
			reason := m[1]
			if reason == "" {
				reason = "marked skipped"
			}
			decl.SkipReason = reason
		}
	}
}

// docblockTag splits a docblock line into its @tag name and the remainder.
// Returns an empty tag for plain docblock lines.
func docblockTag(line string) (tag, rest string) {
	body := docblockBody(line)
	if !strings.HasPrefix(body, "@") {
		return "", ""
	}
	parts := strings.SplitN(body[1:], " ", 2)
	tag = parts[0]
	if len(parts) > 1 {
		rest = parts[1]
	}
	return tag, rest
}

// docblockBody strips the comment decoration from one docblock line
func docblockBody(line string) string {
	body := strings.TrimSpace(line)
	body = strings.TrimPrefix(body, "/**")
	body = strings.TrimSuffix(body, "*/")
	body = strings.TrimPrefix(body, "*")
	return strings.TrimSpace(body)
}

func paramNames(params string) []string {
	var names []string
	for _, m := range paramPattern.FindAllStringSubmatch(params, -1) {
		names = append(names, m[1])
	}
	return names
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
