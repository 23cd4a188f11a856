package activities

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaulta/vaulta/internal/querycache"
	"github.com/vaulta/vaulta/internal/shared"
)

type fakeRepo struct {
	rows  []Activity
	loads int
}

func (f *fakeRepo) Insert(ctx context.Context, activity Activity) error {
	f.rows = append([]Activity{activity}, f.rows...)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, userID string, limit, offset int) ([]Activity, int, error) {
	f.loads++
	if offset >= len(f.rows) {
		return nil, len(f.rows), nil
	}
	end := offset + limit
	if end > len(f.rows) {
		end = len(f.rows)
	}
	return append([]Activity(nil), f.rows[offset:end]...), len(f.rows), nil
}

func (f *fakeRepo) RecentUserIDs(ctx context.Context, limit int) ([]string, error) {
	return nil, nil
}

func seedActivities(n int) []Activity {
	rows := make([]Activity, 0, n)
	for i := 0; i < n; i++ {
		action := ActionSendMoney
		if i%2 == 0 {
			action = ActionAddProduct
		}
		rows = append(rows, Activity{
			ID:         fmt.Sprintf("a-%d", i),
			UserID:     "u1",
			ActionName: action,
			Email:      "mel@test.local",
			CreatedAt:  time.Now().Add(-time.Duration(i) * time.Minute),
		})
	}
	return rows
}

func TestListPaginatesOnTheServer(t *testing.T) {
	repo := &fakeRepo{rows: seedActivities(23)}
	service := NewService(repo, querycache.New[PageData](time.Minute))

	resp, err := service.List(context.Background(), "u1", shared.ListQuery{Page: 2, PageSize: 10})
	require.NoError(t, err)

	assert.Len(t, resp.Result, 10)
	assert.Equal(t, 3, resp.TotalPage)
	assert.Equal(t, []string{"1", "2", "3"}, resp.Window)
	assert.Equal(t, "a-10", resp.Result[0].ID)
}

func TestListCachesPerPage(t *testing.T) {
	repo := &fakeRepo{rows: seedActivities(23)}
	service := NewService(repo, querycache.New[PageData](time.Minute))

	for i := 0; i < 3; i++ {
		_, err := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, repo.loads, "repeat reads of one page must hit the cache")

	_, err := service.List(context.Background(), "u1", shared.ListQuery{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.loads, "a different page is a different cache key")
}

func TestListFiltersWithinThePage(t *testing.T) {
	repo := &fakeRepo{rows: seedActivities(8)}
	service := NewService(repo, querycache.New[PageData](time.Minute))

	resp, err := service.List(context.Background(), "u1", shared.ListQuery{
		Keyword:  "send_money",
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Result)
	for _, row := range resp.Result {
		assert.Equal(t, ActionSendMoney, row.ActionName)
	}
	// The total keeps counting the whole collection, not the filtered view.
	assert.Equal(t, 1, resp.TotalPage)
}

func TestInvalidateDropsEveryPage(t *testing.T) {
	repo := &fakeRepo{rows: seedActivities(23)}
	service := NewService(repo, querycache.New[PageData](time.Minute))

	_, err := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	_, err = service.List(context.Background(), "u1", shared.ListQuery{Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, 2, repo.loads)

	service.Invalidate()
	_, err = service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, repo.loads)
}

type fakeLogger struct {
	calls int
	err   error
}

func (f *fakeLogger) Log(ctx context.Context, userID, email, action string) error {
	if f.err != nil {
		return f.err
	}
	f.calls++
	return nil
}

func TestLoggingBustsCachedPages(t *testing.T) {
	repo := &fakeRepo{rows: seedActivities(5)}
	service := NewService(repo, querycache.New[PageData](time.Minute))
	logger := &fakeLogger{}
	wrapped := WithInvalidation(logger, service)

	_, err := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, 1, repo.loads)

	require.NoError(t, wrapped.Log(context.Background(), "u1", "mel@test.local", ActionSendMoney))
	assert.Equal(t, 1, logger.calls)

	_, err = service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.loads, "a logged action must drop the cached pages")

	logger.err = errors.New("queue down")
	require.Error(t, wrapped.Log(context.Background(), "u1", "mel@test.local", ActionSendMoney))

	_, err = service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.loads, "a failed enqueue must keep the cached pages")
}
