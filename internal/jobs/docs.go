// Package jobs provides scheduled background tasks for the quotation engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the rate-shopping service.
//
// # Available Jobs
//
// 1. SnapshotRefreshJob - Reloads the reference tables (locations, carriers,
// rate tables, service bindings, vehicles) and atomically swaps in a freshly
// indexed snapshot for the pricing pipeline to read
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the reference repository
//	jobManager := jobs.NewJobManager(referenceRepo, "0 */5 * * * *", logger)
//
//	// Start all jobs (performs the initial synchronous load)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The refresh spec uses the six-field cron format with a seconds column.
// Reference data changes on back-office cadence, so the default refresh is
// every few minutes rather than every second.
//
// # Error Handling
//
// A failed refresh keeps the previous snapshot in service and is retried on
// the next tick. Only the initial load is fatal, since there is nothing to
// fall back to.
package jobs
