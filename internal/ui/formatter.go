package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"ptx/internal/config"
	"ptx/internal/discovery"
	"ptx/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, parser *discovery.Parser) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
	}
}

// PrintCaseList prints expanded cases grouped by file and method, with a
// kind tag and a row preview for bound cases
func (f *Formatter) PrintCaseList(cases []domain.TestCase) {
	currentFile := ""
	currentMethod := ""

	for _, c := range cases {
		if c.Method.FilePath != currentFile {
			currentFile = c.Method.FilePath
			currentMethod = ""
			color.Cyan("%s", currentFile)
		}
		if c.Method.DisplayName() != currentMethod {
			currentMethod = c.Method.DisplayName()
			color.White("  %s", currentMethod)
		}

		switch c.Kind {
		case domain.CaseBound:
			fmt.Printf("    %s %s\n", color.GreenString("[bound]"), f.caseLabel(c))
		case domain.CaseDeferred:
			fmt.Printf("    %s resolved at run time\n", color.YellowString("[deferred]"))
		case domain.CaseSkipped:
			fmt.Printf("    %s %s\n", color.HiBlackString("[skipped]"), c.SkipReason)
		case domain.CaseError:
			fmt.Printf("    %s %s\n", color.RedString("[error]"), c.ErrorMessage)
		}
	}

	fmt.Println()
	f.printCaseSummary(cases)
}

func (f *Formatter) caseLabel(c domain.TestCase) string {
	label := fmt.Sprintf("data set #%d", c.DataSetIndex)
	if c.Row != nil && c.Row.Label != "" {
		label = fmt.Sprintf("data set %q", c.Row.Label)
	}
	if c.Row == nil {
		return label
	}
	preview, err := json.Marshal(c.Row.Values)
	if err != nil {
		return label
	}
	return fmt.Sprintf("%s %s", label, string(preview))
}

func (f *Formatter) printCaseSummary(cases []domain.TestCase) {
	var bound, deferred, skipped, errored int
	for _, c := range cases {
		switch c.Kind {
		case domain.CaseBound:
			bound++
		case domain.CaseDeferred:
			deferred++
		case domain.CaseSkipped:
			skipped++
		case domain.CaseError:
			errored++
		}
	}
	fmt.Printf("%d case(s): %s, %s, %s, %s\n",
		len(cases),
		color.GreenString("%d bound", bound),
		color.YellowString("%d deferred", deferred),
		color.HiBlackString("%d skipped", skipped),
		color.RedString("%d discovery error(s)", errored),
	)
}

// PrintMetaStats reads the last run from the results file and displays it
func (f *Formatter) PrintMetaStats() error {
	// Clear terminal screen
	fmt.Print("\033[2J\033[H")

	data, err := os.ReadFile(f.config.GetOutputPath())
	if err != nil {
		return fmt.Errorf("failed to read results file: %w", err)
	}

	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return fmt.Errorf("failed to parse results file: %w", err)
	}

	meta := output.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                     Test Run Statistics                        ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	rows := []struct {
		label string
		value string
		paint *color.Color
	}{
		{"Total Cases", fmt.Sprintf("%d", meta.TotalCases), color.New(color.FgWhite)},
		{"Bound Cases", fmt.Sprintf("%d", meta.BoundCases), color.New(color.FgWhite)},
		{"Deferred Cases", fmt.Sprintf("%d", meta.DeferredCases), color.New(color.FgYellow)},
		{"Skipped Cases", fmt.Sprintf("%d", meta.SkippedCases), color.New(color.FgHiBlack)},
		{"Discovery Errors", fmt.Sprintf("%d", meta.DiscoveryErrors), color.New(color.FgRed)},
		{"Passed", fmt.Sprintf("%d", meta.PassedCases), color.New(color.FgGreen)},
		{"Failed", fmt.Sprintf("%d", meta.FailedCases), color.New(color.FgRed)},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), color.New(color.FgWhite)},
		{"Workers", fmt.Sprintf("%d", meta.Workers), color.New(color.FgWhite)},
		{"Timestamp", meta.Timestamp, color.New(color.FgWhite)},
	}

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Printf("│ %-31s │ ", row.label)
		row.paint.Printf("%-27s", row.value)
		fmt.Println(" │")
		if i < len(rows)-1 {
			fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.FailedCases == 0 {
		color.Green("✓ All cases passed!")
	} else {
		color.Red("✗ %d case(s) failed", meta.FailedCases)
		fmt.Println()
		f.printFailuresByFile(output.Details)
	}

	return nil
}

// printFailuresByFile groups failure details under their file path
func (f *Formatter) printFailuresByFile(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	byFile := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		byFile[failure.FilePath] = append(byFile[failure.FilePath], failure)
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		color.Yellow("%s", file)
		for _, failure := range byFile[file] {
			color.Red("  ✗ %s", failure.TestName)
			if failure.File != "" {
				color.HiBlack("      %s:%d", failure.File, failure.Line)
			}
		}
	}
}

// PrintTestList prints discovered test files; with theories=true it prints
// each file's theory declarations and their directives instead
func (f *Formatter) PrintTestList(tests []string, theories bool) error {
	if !theories {
		for _, test := range tests {
			fmt.Println(test)
		}
		color.Green("\n✓ Found %d test file(s)", len(tests))
		return nil
	}

	var files, methods, parameterized int
	for _, test := range tests {
		declarations, err := f.parser.FindDeclarations(test)
		if err != nil {
			return err
		}
		files++
		color.Cyan("%s", test)
		for _, decl := range declarations {
			methods++
			line := "  " + decl.Method.DisplayName()
			if decl.SkipReason != "" {
				line += color.HiBlackString(" (skip: %s)", decl.SkipReason)
			}
			if decl.Parameterized() {
				parameterized++
				line += " " + color.YellowString("[%s]", directiveSummary(decl.Directives))
			}
			fmt.Println(line)
		}
	}

	color.Green("\n✓ %d file(s), %d test method(s), %d parameterized", files, methods, parameterized)
	return nil
}

func directiveSummary(directives []domain.DataProviderDirective) string {
	parts := make([]string, len(directives))
	for i, d := range directives {
		if d.Target != "" {
			parts[i] = fmt.Sprintf("@%s %s", d.Kind, d.Target)
		} else {
			parts[i] = fmt.Sprintf("@%s (%d row(s))", d.Kind, len(d.InlineRows))
		}
	}
	return strings.Join(parts, ", ")
}
