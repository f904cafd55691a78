// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order tracking service.
//
// # Available Jobs
//
// 1. OrderSyncJob - Runs every five minutes to ingest started sales orders from inFlow
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(syncOrdersHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sync job uses the cron expression "*/5 * * * *", matching the polling
// cadence the upstream API comfortably sustains.
//
// # Error Handling
//
// Sync failures are logged and the next run proceeds on schedule; a failed
// fetch never leaves partial state because each run commits per order.
package jobs
