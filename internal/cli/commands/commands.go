package commands

import (
	"os"

	"ptx/internal/cli"
	"ptx/internal/config"
	"ptx/internal/discovery"
	"ptx/internal/execution"
	"ptx/internal/expand"
	"ptx/internal/migration"
	"ptx/internal/parser"
	"ptx/internal/provider"
	"ptx/internal/sink"
	"ptx/internal/storage"
	"ptx/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Expand  *ExpandCommand
	Run     *RunCommand
	List    *ListCommand
	Migrate *MigrateCommand
	Faills  *FaillsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	declarationParser := discovery.NewParser()
	expander := expand.NewExpander(provider.NewResolver(), expand.NewFactory(), sink.NewWriter(os.Stderr))
	runner := execution.NewRunner(cfg)
	scheduler := execution.NewRoundRobinScheduler()
	phpunitParser := parser.NewPHPUnitParser()
	executor := execution.NewWorkerPool(cfg, runner, scheduler, phpunitParser)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, declarationParser)
	dbManager := migration.NewDatabaseManager(cfg)
	migrator := migration.NewLaravelMigrator(cfg, dbManager)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Expand:  NewExpandCommand(cfg, scanner, filter, declarationParser, expander, formatter),
		Run:     NewRunCommand(cfg, scanner, filter, declarationParser, expander, executor, phpunitParser, jsonStorage, formatter, migrator),
		List:    NewListCommand(cfg, scanner, filter, formatter),
		Migrate: NewMigrateCommand(cfg, migrator),
		Faills:  NewFaillsCommand(cfg, jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.ApplyFlags(flags.ToConfigFlags())
		return nil
	}

	// Expand command
	expandCmd := &cobra.Command{
		Use:     "expand",
		Short:   "Expand parameterized tests into test cases",
		Long:    "Discover parameterized PHPUnit tests and print the test cases each declaration expands into, without executing anything",
		RunE:    c.Expand.Execute,
		PreRunE: applyFlags,
	}
	expandCmd.Flags().BoolVarP(&flags.Deferred, "defer", "d", false, "Skip data pre-enumeration and expand every declaration into a single run-time case")
	expandCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*UserTest.php' or '*Payment*')")
	expandCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	rootCmd.AddCommand(expandCmd)

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Expand and run PHPUnit tests in parallel",
		Long:    "Discover PHPUnit tests, expand parameterized ones into individual cases, and execute them using parallel workers",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 4, "Number of processors to use")
	runCmd.Flags().BoolVarP(&flags.Deferred, "defer", "d", false, "Skip data pre-enumeration and run each theory as a single case")
	runCmd.Flags().BoolVarP(&flags.Migrate, "migrate", "m", false, "Run migrations before executing tests")
	runCmd.Flags().BoolVar(&flags.NoFresh, "no-fresh", false, "Run migrations without fresh (only pending migrations)")
	runCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*UserTest.php' or '*Payment*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered tests",
		Long:    "Scan and list all PHPUnit test files without executing them",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*UserTest.php' or '*Payment*')")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	listCmd.Flags().BoolVar(&flags.Theories, "theories", false, "List parameterized test declarations instead of test files")
	rootCmd.AddCommand(listCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:     "migrate",
		Short:   "Run database migrations for all test databases",
		Long:    "Execute migrations in parallel for all test databases used by workers",
		RunE:    c.Migrate.Execute,
		PreRunE: applyFlags,
	}
	migrateCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 4, "Number of processors/workers to use")
	migrateCmd.Flags().BoolVar(&flags.NoFresh, "no-fresh", false, "Run migrations without fresh (only pending migrations)")
	rootCmd.AddCommand(migrateCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:   "faills",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last test run in an interactive viewer",
		RunE:  c.Faills.Execute,
	}
	rootCmd.AddCommand(faillsCmd)
}
