package events

import "time"

// CreateEventRequest carries a new calendar event.
type CreateEventRequest struct {
	EventName string    `json:"eventName" validate:"required,max=200"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
}

// UpdateEventRequest carries a partial event edit.
type UpdateEventRequest struct {
	EventName *string    `json:"eventName,omitempty" validate:"omitempty,max=200"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
}
