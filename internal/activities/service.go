package activities

import (
	"context"
	"fmt"

	"github.com/vaulta/vaulta/internal/listing"
	"github.com/vaulta/vaulta/internal/querycache"
	"github.com/vaulta/vaulta/internal/shared"
)

var searchFields = []listing.StringField[Activity]{
	func(a Activity) string { return a.ActionName },
	func(a Activity) string { return a.Email },
}

var sortFields = listing.SortFields[Activity]{
	Strings: map[string]listing.StringField[Activity]{
		"action": func(a Activity) string { return a.ActionName },
		"email":  func(a Activity) string { return a.Email },
		"date":   func(a Activity) string { return a.CreatedAt.Format("2006-01-02 15:04:05") },
	},
}

// PageData is the cached unit: one server page plus the collection total
// it was counted against.
type PageData struct {
	Rows  []Activity
	Total int
}

// ListResponse is the server-paginated activity page.
type ListResponse struct {
	Result    []Activity `json:"result"`
	TotalPage int        `json:"totalPage"`
	Window    []string   `json:"window"`
}

// Service serves the recent-activity listing. Records are written by
// the worker, so this side is read-only.
type Service struct {
	repo  Repository
	cache *querycache.Cache[PageData]
}

// NewService constructs the activities service.
func NewService(repo Repository, cache *querycache.Cache[PageData]) *Service {
	return &Service{repo: repo, cache: cache}
}

func cacheKey(userID string, page, pageSize int) string {
	return fmt.Sprintf("activities:%s:%d:%d", userID, page, pageSize)
}

// List returns one server page of activities, with keyword matching and
// sorting applied to the fetched page.
func (s *Service) List(ctx context.Context, userID string, query shared.ListQuery) (*ListResponse, error) {
	key := cacheKey(userID, query.Page, query.PageSize)

	data, err := s.cache.Fetch(ctx, key, func(ctx context.Context) (PageData, error) {
		rows, total, err := s.repo.List(ctx, userID, query.PageSize, (query.Page-1)*query.PageSize)
		if err != nil {
			return PageData{}, err
		}
		return PageData{Rows: rows, Total: total}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	shaped := listing.Filter(data.Rows, query.Keyword, searchFields)
	if query.SortField != "" {
		shaped = listing.Sort(shaped, query.SortField, query.SortDirection, sortFields)
	}
	if shaped == nil {
		shaped = []Activity{}
	}

	pagination := shared.NewPagination(query.Page, query.PageSize, data.Total)
	return &ListResponse{
		Result:    shaped,
		TotalPage: pagination.TotalPages,
		Window:    pagination.Window(),
	}, nil
}

// Invalidate drops every cached page so the next list request refetches.
func (s *Service) Invalidate() {
	s.cache.Bust()
}

type invalidatingLogger struct {
	next    shared.ActivityLogger
	service *Service
}

// WithInvalidation wraps an activity logger so the cached pages drop as
// soon as an action is enqueued. The worker inserts the row out of
// process, so without the bust the feed would only converge by TTL.
func WithInvalidation(next shared.ActivityLogger, service *Service) shared.ActivityLogger {
	return &invalidatingLogger{next: next, service: service}
}

func (l *invalidatingLogger) Log(ctx context.Context, userID, email, action string) error {
	if err := l.next.Log(ctx, userID, email, action); err != nil {
		return err
	}
	l.service.Invalidate()
	return nil
}
