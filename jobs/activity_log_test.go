package jobs

import (
	"context"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"

	"github.com/vaulta/vaulta/internal/activities"
	_ "github.com/vaulta/vaulta/testing"
)

type fakeActivityRepo struct {
	inserted []activities.Activity
	err      error
}

func (f *fakeActivityRepo) Insert(ctx context.Context, activity activities.Activity) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, activity)
	return nil
}

func (f *fakeActivityRepo) List(ctx context.Context, userID string, limit, offset int) ([]activities.Activity, int, error) {
	return nil, 0, nil
}

func (f *fakeActivityRepo) RecentUserIDs(ctx context.Context, limit int) ([]string, error) {
	return nil, nil
}

func TestHandlePersistsActivity(t *testing.T) {
	repo := &fakeActivityRepo{}
	job := NewActivityLogJob(repo, slog.Default(), nil)

	task, err := NewActivityLogTask(ActivityLogPayload{
		UserID:     "u1",
		Email:      "mel@test.local",
		ActionName: activities.ActionSendMoney,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := job.Handle(context.Background(), task); err != nil {
		t.Fatal(err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.inserted))
	}
	got := repo.inserted[0]
	if got.UserID != "u1" || got.ActionName != activities.ActionSendMoney || got.Email != "mel@test.local" {
		t.Fatalf("unexpected activity: %+v", got)
	}
}

func TestHandleSkipsMalformedPayload(t *testing.T) {
	repo := &fakeActivityRepo{}
	job := NewActivityLogJob(repo, slog.Default(), nil)

	task := asynq.NewTask(TaskTypeActivityLog, []byte("{not json"))
	if err := job.Handle(context.Background(), task); err != asynq.SkipRetry {
		t.Fatalf("expected SkipRetry, got %v", err)
	}

	empty := asynq.NewTask(TaskTypeActivityLog, []byte(`{"userID":"","actionName":""}`))
	if err := job.Handle(context.Background(), empty); err != asynq.SkipRetry {
		t.Fatalf("expected SkipRetry for empty payload, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatal("malformed payloads must not insert")
	}
}
