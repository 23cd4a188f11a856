package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/vaulta/vaulta/internal/jobs"
)

const warmupUserLimit = 20

// RecentUsers lists the ids of the most recently active users.
type RecentUsers interface {
	RecentUserIDs(ctx context.Context, limit int) ([]string, error)
}

// Warmer pre-loads one user's collection into its in-process cache.
type Warmer func(ctx context.Context, userID string) error

// CacheWarmupJob pre-loads the hottest users' collections, so the
// first dashboard request after a deploy or a cache expiry is served
// warm. One cold collection does not abort the rest of the sweep.
type CacheWarmupJob struct {
	recent  RecentUsers
	warmers []Warmer
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

// NewCacheWarmupJob constructs the handler.
func NewCacheWarmupJob(recent RecentUsers, warmers []Warmer, logger *slog.Logger, metrics *jobmetrics.Metrics) *CacheWarmupJob {
	return &CacheWarmupJob{recent: recent, warmers: warmers, logger: logger, metrics: metrics}
}

// Handle fulfils the asynq.HandlerFunc contract.
func (j *CacheWarmupJob) Handle(ctx context.Context, task *asynq.Task) error {
	tracker := j.metrics.Track("cache_warmup")

	ids, err := j.recent.RecentUserIDs(ctx, warmupUserLimit)
	if err != nil {
		j.logger.Error("list recent users failed", "error", err)
		return tracker.End(err)
	}

	for _, id := range ids {
		for _, warm := range j.warmers {
			if err := warm(ctx, id); err != nil {
				j.logger.Warn("cache warmup failed", "error", err, "userID", id)
			}
		}
	}
	return tracker.End(nil)
}
