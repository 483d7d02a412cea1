package commands

import (
	"ptx/internal/config"
	"ptx/internal/discovery"
	"ptx/internal/expand"
	"ptx/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ExpandCommand handles the expand command
type ExpandCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	parser    *discovery.Parser
	expander  *expand.Expander
	formatter *ui.Formatter
}

// NewExpandCommand creates a new ExpandCommand
func NewExpandCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	parser *discovery.Parser,
	expander *expand.Expander,
	formatter *ui.Formatter,
) *ExpandCommand {
	return &ExpandCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		parser:    parser,
		expander:  expander,
		formatter: formatter,
	}
}

// Execute runs the command
func (ec *ExpandCommand) Execute(cmd *cobra.Command, args []string) error {
	tests, err := ec.scanner.Scan(ec.config.GetTestPath())
	if err != nil {
		return err
	}

	tests = ec.filter.FilterByName(tests, ec.config.Flags.NameFilter)
	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	cases, err := expandFiles(tests, ec.parser, ec.expander, ec.config, false)
	if err != nil {
		return err
	}

	if len(cases) == 0 {
		color.Yellow("No parameterized tests found")
		return nil
	}

	ec.formatter.PrintCaseList(cases)
	return nil
}
