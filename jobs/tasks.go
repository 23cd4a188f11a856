package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// QueueWarmup carries periodic cache warmup tasks. The web process
	// consumes it, since the list caches live in its memory.
	QueueWarmup = "warmup"
	// TaskTypeActivityLog records a user action in the activity feed.
	TaskTypeActivityLog = "activity:log"
	// TaskTypeCacheWarmup pre-loads hot user collections.
	TaskTypeCacheWarmup = "cache:warmup"
)

// ActivityLogPayload describes one entry of the activity feed.
type ActivityLogPayload struct {
	UserID     string `json:"userID"`
	Email      string `json:"email"`
	ActionName string `json:"actionName"`
}

// NewActivityLogTask constructs an Asynq task.
func NewActivityLogTask(payload ActivityLogPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeActivityLog, data), nil
}

// NewCacheWarmupTask constructs the periodic warmup task.
func NewCacheWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskTypeCacheWarmup, nil)
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) (*Client, error) {
	client := asynq.NewClient(redisOpts)
	return &Client{client: client}, nil
}

// Log enqueues an activity-log task. It satisfies the activity logger
// used by the HTTP handlers, so recording an action never blocks a
// request on a database write.
func (c *Client) Log(ctx context.Context, userID, email, action string) error {
	task, err := NewActivityLogTask(ActivityLogPayload{
		UserID:     userID,
		Email:      email,
		ActionName: action,
	})
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
