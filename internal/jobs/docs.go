// Package jobs provides scheduled background tasks for the coordinator.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DashboardStatsJob - Periodically counts orders per lifecycle stage and
// broadcasts the snapshot to the admin topic.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(statsHandler, bus, "*/5 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The cron spec uses the six-field form with a seconds column. The default
// configuration broadcasts stats every five seconds; dashboards stay current
// without polling the REST API.
package jobs
