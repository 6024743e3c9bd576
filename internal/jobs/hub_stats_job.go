package jobs

import (
	"context"
	"log/slog"

	"restaurant/internal/adapters/out/hub"

	"github.com/robfig/cron/v3"
)

// DefaultStatsSchedule reports hub statistics once a minute.
const DefaultStatsSchedule = "0 * * * * *"

// StatsSource exposes notification hub statistics.
type StatsSource interface {
	Stats() hub.Stats
}

// HubStatsJob logs observer counts and, as a warning, events dropped since
// the previous report.
type HubStatsJob struct {
	source      StatsSource
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
	lastDropped uint64
}

func NewHubStatsJob(source StatsSource, schedule string, logger *slog.Logger) *HubStatsJob {
	if schedule == "" {
		schedule = DefaultStatsSchedule
	}
	return &HubStatsJob{
		source:   source,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "hub_stats_job"),
	}
}

func (j *HubStatsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Report); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Hub stats job started", "schedule", j.schedule)
	return nil
}

// Report logs one snapshot. Runs never overlap.
func (j *HubStatsJob) Report() {
	ctx := context.Background()
	stats := j.source.Stats()

	j.logger.InfoContext(ctx, "Notification hub stats",
		"queue_observers", stats.QueueObservers,
		"push_observers", stats.PushObservers,
		"pending", stats.Pending,
	)

	if dropped := stats.Dropped - j.lastDropped; dropped > 0 {
		j.logger.WarnContext(ctx, "Notification hub dropped events", "dropped", dropped, "total_dropped", stats.Dropped)
	}
	j.lastDropped = stats.Dropped
}

func (j *HubStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Hub stats job stopped")
}
