package resources

import (
	"context"
	"log/slog"
)

// Notifier shows a notice to the local participant only
type Notifier interface {
	Error(ctx context.Context, message string)
}

// LogNotifier writes notices to the structured log
type LogNotifier struct{}

// Error logs the notice at error level
func (LogNotifier) Error(ctx context.Context, message string) {
	slog.ErrorContext(ctx, "Notification", "message", message)
}
