package jobs

import (
	"context"
	"sync/atomic"

	"log/slog"

	"freightquote/internal/core/domain/services"
	"freightquote/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// SnapshotRefreshJob periodically reloads the five reference tables and swaps
// a freshly indexed ReferenceSet into place. Readers keep whatever snapshot
// they already hold; the swap is a single atomic pointer store, so quotation
// requests never see a half-loaded set.
//
// The job doubles as the SnapshotProvider the query and command handlers are
// wired against.
type SnapshotRefreshJob struct {
	repo     ports.ReferenceRepository
	cron     *cron.Cron
	cronSpec string
	logger   *slog.Logger

	current atomic.Pointer[services.ReferenceSet]
}

// NewSnapshotRefreshJob creates a job reloading reference data on the given
// cron spec (with seconds field, per the scheduler configuration).
func NewSnapshotRefreshJob(
	repo ports.ReferenceRepository,
	cronSpec string,
	logger *slog.Logger,
) *SnapshotRefreshJob {
	return &SnapshotRefreshJob{
		repo:     repo,
		cron:     cron.New(cron.WithSeconds()),
		cronSpec: cronSpec,
		logger:   logger.With("component", "snapshot_refresh_job"),
	}
}

// Snapshot returns the reference set loaded by the most recent successful
// refresh. Returns an empty set if Start has never succeeded, so callers can
// always price; they just get no-coverage outcomes.
func (j *SnapshotRefreshJob) Snapshot() *services.ReferenceSet {
	if refs := j.current.Load(); refs != nil {
		return refs
	}
	return services.NewReferenceSet(nil, nil, nil, nil, nil)
}

// Start performs an initial synchronous load, then schedules periodic
// refreshes. The initial load is mandatory: serving quotes before any
// reference data exists would report no coverage for everything.
func (j *SnapshotRefreshJob) Start() error {
	ctx := context.Background()

	if err := j.Refresh(ctx); err != nil {
		return err
	}

	_, err := j.cron.AddFunc(j.cronSpec, func() {
		refreshCtx := context.Background()
		if err := j.Refresh(refreshCtx); err != nil {
			// Keep serving the previous snapshot; the next tick retries.
			j.logger.ErrorContext(refreshCtx, "Reference snapshot refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Snapshot refresh job started", "spec", j.cronSpec)
	return nil
}

// Stop stops the scheduled refreshes. The last loaded snapshot stays available.
func (j *SnapshotRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job stopped")
}

// Refresh loads all reference tables and atomically publishes the new set.
func (j *SnapshotRefreshJob) Refresh(ctx context.Context) error {
	locations, err := j.repo.GetAllLocations(ctx)
	if err != nil {
		return err
	}

	carriers, err := j.repo.GetAllCarriers(ctx)
	if err != nil {
		return err
	}

	tables, err := j.repo.GetAllRateTables(ctx)
	if err != nil {
		return err
	}

	bindings, err := j.repo.GetAllServiceBindings(ctx)
	if err != nil {
		return err
	}

	vehicles, err := j.repo.GetAllVehicles(ctx)
	if err != nil {
		return err
	}

	refs := services.NewReferenceSet(locations, carriers, tables, bindings, vehicles)
	j.current.Store(refs)

	j.logger.InfoContext(ctx, "Reference snapshot refreshed",
		"locations", len(locations),
		"carriers", len(carriers),
		"rate_tables", len(tables),
		"service_bindings", len(bindings),
		"vehicles", len(vehicles),
	)
	return nil
}
