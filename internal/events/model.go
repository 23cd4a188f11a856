package events

import "time"

// Event is a calendar entry on the dashboard.
type Event struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userID"`
	EventName string    `json:"eventName"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
