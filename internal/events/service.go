package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vaulta/vaulta/internal/querycache"
)

// Service serves the cached event collection. The calendar renders the
// whole collection at once, so there is no list shaping here, only the
// same patch-on-mutation discipline the tables use.
type Service struct {
	repo  Repository
	cache *querycache.Cache[[]Event]
}

// NewService constructs the events service.
func NewService(repo Repository, cache *querycache.Cache[[]Event]) *Service {
	return &Service{repo: repo, cache: cache}
}

func cacheKey(userID string) string {
	return "events:" + userID
}

// List returns every event for the user.
func (s *Service) List(ctx context.Context, userID string) ([]Event, error) {
	collection, err := s.cache.Fetch(ctx, cacheKey(userID), func(ctx context.Context) ([]Event, error) {
		return s.repo.List(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	return collection, nil
}

// Create stores a new event and prepends it to the cached collection.
func (s *Service) Create(ctx context.Context, userID string, req CreateEventRequest) (*Event, error) {
	event := Event{
		ID:        uuid.NewString(),
		UserID:    userID,
		EventName: req.EventName,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.cache.Patch(cacheKey(userID), func(collection []Event) []Event {
		return append([]Event{event}, collection...)
	})
	return &event, nil
}

// Update applies a partial edit and replaces the record in the cached
// collection by id.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateEventRequest) (*Event, error) {
	existing, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	if req.EventName != nil {
		existing.EventName = *req.EventName
	}
	if req.StartTime != nil {
		existing.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		existing.EndTime = *req.EndTime
	}

	if err := s.repo.Update(ctx, *existing); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.cache.Patch(cacheKey(userID), func(collection []Event) []Event {
		updated := make([]Event, len(collection))
		for i, item := range collection {
			if item.ID == id {
				updated[i] = *existing
			} else {
				updated[i] = item
			}
		}
		return updated
	})
	return existing, nil
}

// Delete removes the event and drops it from the cached collection.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.cache.Patch(cacheKey(userID), func(collection []Event) []Event {
		remaining := make([]Event, 0, len(collection))
		for _, item := range collection {
			if item.ID != id {
				remaining = append(remaining, item)
			}
		}
		return remaining
	})
	return nil
}
