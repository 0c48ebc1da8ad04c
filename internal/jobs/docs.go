// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// 1. PoolReportJob - logs the unassigned order pool and the number of open
// batches on a configurable schedule (POOL_REPORT_SCHEDULE)
//
// Assignment itself is never scheduled: couriers request their batches.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(poolStatsHandler, "0 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed report is logged and the next run proceeds as scheduled
// - An invalid schedule fails StartAll
package jobs
