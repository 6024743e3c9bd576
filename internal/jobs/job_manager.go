package jobs

import (
	"fmt"
	"log/slog"
)

// Observers is what the background jobs need from the notification hub.
type Observers interface {
	Pinger
	StatsSource
}

// Schedules holds the cron expressions of the jobs. Empty values use the defaults.
type Schedules struct {
	Heartbeat string
	Stats     string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	heartbeatJob *ObserverHeartbeatJob
	statsJob     *HubStatsJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(observers Observers, schedules Schedules, logger *slog.Logger) *JobManager {
	return &JobManager{
		heartbeatJob: NewObserverHeartbeatJob(observers, schedules.Heartbeat, logger),
		statsJob:     NewHubStatsJob(observers, schedules.Stats, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.heartbeatJob.Start(); err != nil {
		return fmt.Errorf("failed to start observer heartbeat job: %w", err)
	}

	if err := jm.statsJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.heartbeatJob.Stop()
		return fmt.Errorf("failed to start hub stats job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.statsJob.Stop()
	jm.heartbeatJob.Stop()
}
