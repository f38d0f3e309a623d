package jobs

import (
	"fmt"
	"log/slog"

	"quickdrop/internal/core/application/usecases/queries"
	"quickdrop/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dashboardStatsJob *DashboardStatsJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	statsHandler queries.GetDashboardStatsQueryHandler,
	bus ports.EventBus,
	statsSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dashboardStatsJob: NewDashboardStatsJob(statsHandler, bus, statsSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dashboardStatsJob.Start(); err != nil {
		return fmt.Errorf("failed to start dashboard stats job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dashboardStatsJob.Stop()
}
