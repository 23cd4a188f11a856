package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/vaulta/vaulta/internal/activities"
	jobmetrics "github.com/vaulta/vaulta/internal/jobs"
)

// ActivityLogJob persists queued activity entries.
type ActivityLogJob struct {
	repo    activities.Repository
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

// NewActivityLogJob constructs the handler.
func NewActivityLogJob(repo activities.Repository, logger *slog.Logger, metrics *jobmetrics.Metrics) *ActivityLogJob {
	return &ActivityLogJob{repo: repo, logger: logger, metrics: metrics}
}

// Handle fulfils the asynq.HandlerFunc contract.
func (j *ActivityLogJob) Handle(ctx context.Context, task *asynq.Task) error {
	tracker := j.metrics.Track("activity_log")

	var payload ActivityLogPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		_ = tracker.End(err)
		return asynq.SkipRetry
	}
	if payload.UserID == "" || payload.ActionName == "" {
		_ = tracker.End(nil)
		return asynq.SkipRetry
	}

	err := j.repo.Insert(ctx, activities.Activity{
		UserID:     payload.UserID,
		Email:      payload.Email,
		ActionName: payload.ActionName,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		j.logger.Error("persist activity failed", "error", err, "action", payload.ActionName)
		return tracker.End(err)
	}
	return tracker.End(nil)
}
