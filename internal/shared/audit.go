package shared

import "context"

// ActivityLogger records user actions feeding the recent-activities
// listing. Implementations must not block the request path.
type ActivityLogger interface {
	Log(ctx context.Context, userID, email, action string) error
}

// NopActivityLogger discards every record.
type NopActivityLogger struct{}

// Log implements ActivityLogger.
func (NopActivityLogger) Log(context.Context, string, string, string) error { return nil }
