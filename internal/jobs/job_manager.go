package jobs

import (
	"fmt"
	"log/slog"

	"freightquote/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	snapshotRefreshJob *SnapshotRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	referenceRepo ports.ReferenceRepository,
	refreshCronSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		snapshotRefreshJob: NewSnapshotRefreshJob(referenceRepo, refreshCronSpec, logger),
	}
}

// SnapshotProvider exposes the refresh job as the provider the application
// layer reads snapshots from.
func (jm *JobManager) SnapshotProvider() ports.SnapshotProvider {
	return jm.snapshotRefreshJob
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.snapshotRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start snapshot refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.snapshotRefreshJob.Stop()
}
