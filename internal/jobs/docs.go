// Package jobs provides scheduled background tasks for the restaurant service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and only touch the notification hub; order state is never changed
// in the background.
//
// # Available Jobs
//
// 1. ObserverHeartbeatJob - pings websocket observers (default every 30s) and drops dead connections
// 2. HubStatsJob - logs observer counts and dropped events (default every minute)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(notificationHub, jobs.Schedules{
//		Heartbeat: cfg.HubPingSchedule,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - An invalid schedule fails StartAll; jobs already started are stopped again
// - Ping failures are handled by the hub, which detaches the connection
package jobs
