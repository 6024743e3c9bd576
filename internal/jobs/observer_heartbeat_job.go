package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultHeartbeatSchedule pings push observers every 30 seconds.
const DefaultHeartbeatSchedule = "*/30 * * * * *"

// Pinger sends a control ping to every push observer, dropping dead ones.
type Pinger interface {
	Ping()
}

// ObserverHeartbeatJob keeps websocket observers alive and prunes the ones
// whose connection silently went away.
type ObserverHeartbeatJob struct {
	pinger   Pinger
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewObserverHeartbeatJob creates the job. An empty schedule falls back to
// DefaultHeartbeatSchedule; schedules use the six-field cron syntax.
func NewObserverHeartbeatJob(pinger Pinger, schedule string, logger *slog.Logger) *ObserverHeartbeatJob {
	if schedule == "" {
		schedule = DefaultHeartbeatSchedule
	}
	return &ObserverHeartbeatJob{
		pinger:   pinger,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "observer_heartbeat_job"),
	}
}

// Start registers the ping and starts the scheduler.
func (j *ObserverHeartbeatJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.pinger.Ping); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Observer heartbeat job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running ping to finish.
func (j *ObserverHeartbeatJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Observer heartbeat job stopped")
}
