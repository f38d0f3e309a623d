package jobs

import (
	"context"
	"log/slog"
	"time"

	"quickdrop/internal/core/application/usecases/queries"
	"quickdrop/internal/core/domain/events"
	"quickdrop/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DashboardStatsJob periodically counts orders per lifecycle stage and
// broadcasts the snapshot to the admin topic, so every connected dashboard
// stays current without polling the REST API.
type DashboardStatsJob struct {
	handler queries.GetDashboardStatsQueryHandler
	bus     ports.EventBus
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDashboardStatsJob creates a job that broadcasts dashboard stats on the
// given cron spec (with seconds field).
func NewDashboardStatsJob(
	handler queries.GetDashboardStatsQueryHandler,
	bus ports.EventBus,
	spec string,
	logger *slog.Logger,
) *DashboardStatsJob {
	return &DashboardStatsJob{
		handler: handler,
		bus:     bus,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dashboard_stats_job"),
	}
}

// Start begins the periodic broadcast.
func (j *DashboardStatsJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		stats, err := j.handler.Handle(ctx, queries.NewGetDashboardStatsQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Dashboard stats job failed", "error", err)
			return
		}

		j.bus.Publish(ports.TopicAdmin, events.DashboardStats{
			Total:      stats.Total,
			Claimable:  stats.Claimable,
			Active:     stats.Active,
			Delivered:  stats.Delivered,
			Cancelled:  stats.Cancelled,
			ObservedAt: time.Now(),
		})
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dashboard stats job started", "spec", j.spec)
	return nil
}

// Stop stops the broadcast.
func (j *DashboardStatsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dashboard stats job stopped")
}
