package migration

// Migrator prepares the per-worker test databases
type Migrator interface {
	Run(workerCount int, noFresh bool) error
}
