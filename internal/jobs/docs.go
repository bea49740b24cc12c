// Package jobs provides scheduled background tasks for the freight system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OverdueShipmentJob - Runs every 10 minutes and logs Shipping orders
// whose onboard confirmation is 48 hours old or more, so senders can be
// nudged to mark them failed. The job is read-only: marking an overdue
// shipment as failed stays an explicit sender action.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(overdueFinder, clock, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
