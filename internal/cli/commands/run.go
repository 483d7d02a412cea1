package commands

import (
	"fmt"

	"ptx/internal/config"
	"ptx/internal/discovery"
	"ptx/internal/domain"
	"ptx/internal/execution"
	"ptx/internal/expand"
	"ptx/internal/migration"
	"ptx/internal/parser"
	"ptx/internal/storage"
	"ptx/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	parser    *discovery.Parser
	expander  *expand.Expander
	executor  *execution.WorkerPool
	phpunit   *parser.PHPUnitParser
	storage   storage.Storage
	formatter *ui.Formatter
	migrator  migration.Migrator
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	declarationParser *discovery.Parser,
	expander *expand.Expander,
	executor *execution.WorkerPool,
	phpunit *parser.PHPUnitParser,
	st storage.Storage,
	formatter *ui.Formatter,
	migrator migration.Migrator,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		parser:    declarationParser,
		expander:  expander,
		executor:  executor,
		phpunit:   phpunit,
		storage:   st,
		formatter: formatter,
		migrator:  migrator,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Run migrations if flag is set
	if rc.config.Flags.Migrate {
		if err := rc.migrator.Run(rc.config.Processors, rc.config.Flags.NoFresh); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println()
	}

	// Discover tests
	tests, err := rc.scanner.Scan(rc.config.GetTestPath())
	if err != nil {
		return err
	}

	tests = rc.filter.FilterByName(tests, rc.config.Flags.NameFilter)
	if len(tests) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	// Expand declarations into individual cases
	cases, err := expandFiles(tests, rc.parser, rc.expander, rc.config, true)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		color.Yellow("No test cases to execute")
		return nil
	}

	// Create and set progress bar
	progressBar := ui.NewProgressBar(len(cases))
	rc.executor.SetProgress(progressBar)

	// Execute cases
	results, duration, err := rc.executor.ExecuteWithOptions(cases, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	// Collect failures
	var failures []domain.TestFailure
	for _, result := range results {
		switch result.Status {
		case domain.StatusFailed:
			failures = append(failures, rc.phpunit.Failures(result)...)
		case domain.StatusErrored:
			failures = append(failures, domain.TestFailure{
				TestName: result.Case.DisplayName(),
				FilePath: result.Case.Method.FilePath,
				Message:  result.Case.ErrorMessage,
			})
		}
	}

	// Save results
	if err := rc.storage.Save(results, failures, duration, rc.config.Processors); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	// Print stats
	return rc.formatter.PrintMetaStats()
}
