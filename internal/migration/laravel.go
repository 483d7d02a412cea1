package migration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"ptx/internal/config"
	"ptx/internal/domain"
)

// LaravelMigrator runs `php artisan migrate` against every worker database
// in parallel so integration theories start from identical schemas.
type LaravelMigrator struct {
	config          *config.Config
	databaseManager *DatabaseManager
}

// NewLaravelMigrator creates a new LaravelMigrator
func NewLaravelMigrator(cfg *config.Config, dbManager *DatabaseManager) *LaravelMigrator {
	return &LaravelMigrator{
		config:          cfg,
		databaseManager: dbManager,
	}
}

// Run ensures the worker databases exist, then migrates them in parallel.
// noFresh runs only pending migrations instead of rebuilding from scratch.
func (lm *LaravelMigrator) Run(workerCount int, noFresh bool) error {
	workers, err := lm.databaseManager.EnsureDatabases(workerCount)
	if err != nil {
		return fmt.Errorf("failed to prepare databases: %w", err)
	}
	if len(workers) == 0 {
		return fmt.Errorf("no test databases available")
	}

	color.Cyan("Migrating %d worker database(s)...", len(workers))

	bar := progressbar.NewOptions(len(workers),
		progressbar.OptionSetDescription(color.CyanString("Migrating")),
		progressbar.OptionSetWidth(50),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	results := make(chan domain.MigrationResult, len(workers))
	startTime := time.Now()

	var wg sync.WaitGroup
	for _, workerID := range workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			results <- lm.migrateWorker(id, noFresh)
			bar.Add(1)
		}(workerID)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var failed []domain.MigrationResult
	for result := range results {
		if !result.Success {
			failed = append(failed, result)
		}
	}
	bar.Finish()

	fmt.Print("\n")
	if len(failed) > 0 {
		color.Red("✗ Migration failed for %d worker(s)", len(failed))
		for _, result := range failed {
			color.Red("  Worker %d (DB: %s): %v", result.WorkerID, lm.config.GetDatabaseName(result.WorkerID), result.Error)
		}
		return fmt.Errorf("migration failed for %d worker(s)", len(failed))
	}

	color.Green("✓ Migrations completed for all %d worker(s)", len(workers))
	color.White("Duration: %s", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// migrateWorker runs artisan against one worker's database
func (lm *LaravelMigrator) migrateWorker(workerID int, noFresh bool) domain.MigrationResult {
	projectPath, err := filepath.Abs(lm.config.ProjectPath)
	if err != nil {
		return domain.MigrationResult{
			WorkerID: workerID,
			Error:    fmt.Errorf("failed to resolve project path: %w", err),
		}
	}

	migrateCmd := "migrate:fresh"
	if noFresh {
		migrateCmd = "migrate"
	}

	cmd := exec.CommandContext(context.Background(), "php", filepath.Join(projectPath, "artisan"), migrateCmd, "--env=testing", "--force")
	cmd.Env = append(os.Environ(), fmt.Sprintf("DB_DATABASE=%s", lm.config.GetDatabaseName(workerID)))
	cmd.Dir = projectPath

	output, err := cmd.CombinedOutput()
	return domain.MigrationResult{
		WorkerID: workerID,
		Success:  err == nil,
		Output:   string(output),
		Error:    err,
	}
}
