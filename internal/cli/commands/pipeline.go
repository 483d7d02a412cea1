package commands

import (
	"ptx/internal/config"
	"ptx/internal/discovery"
	"ptx/internal/domain"
	"ptx/internal/expand"
)

// expandFiles parses every test file and expands its declarations into test
// cases, preserving file order and declaration order. Plain (unparameterized,
// unskipped) methods are included only when includePlain is set; they become
// single deferred cases since PHPUnit resolves them whole at run time.
func expandFiles(
	files []string,
	parser *discovery.Parser,
	expander *expand.Expander,
	cfg *config.Config,
	includePlain bool,
) ([]domain.TestCase, error) {
	var cases []domain.TestCase

	for _, file := range files {
		declarations, err := parser.FindDeclarations(file)
		if err != nil {
			return nil, err
		}

		for _, decl := range declarations {
			if !decl.Parameterized() && decl.SkipReason == "" {
				if includePlain {
					cases = append(cases, domain.TestCase{Method: decl.Method, Kind: domain.CaseDeferred})
				}
				continue
			}

			cases = append(cases, expander.Expand(decl.Method, decl.Directives, expand.Options{
				SkipReason:   decl.SkipReason,
				PreEnumerate: cfg.PreEnumerate,
			})...)
		}
	}

	return cases, nil
}
