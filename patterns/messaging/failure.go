package messaging

import (
	"context"
	"github.com/google/uuid"
	"log/slog"
)

// Failure describes an error returned by, or a panic raised in, an asynchronous callback.
// These never reach the publisher, since it doesn't wait for asynchronous callbacks.
type Failure struct {
	Message      string    // Message is the name of the message being delivered.
	Key          string    // Key is a readable form of the subscription's routing key.
	Subscription uuid.UUID // Subscription identifies the failed subscription.
	Err          error     // Err wraps ErrCallbackPanic if the callback panicked.
}

// FailureHandler observes asynchronous callback failures.
// It's called on the goroutine that ran the callback, after the subscription's next invocation has been allowed to start.
type FailureHandler func(failure Failure)

// LogFailures returns a [FailureHandler] that logs each failure at error level.
func LogFailures(logger *slog.Logger) FailureHandler {
	if logger == nil {
		panic("nil logger")
	}
	return func(failure Failure) {
		logger.LogAttrs(context.Background(), slog.LevelError, "Asynchronous subscriber failed",
			slog.String("message", failure.Message),
			slog.String("key", failure.Key),
			slog.String("subscription", failure.Subscription.String()),
			slog.Any("error", failure.Err),
		)
	}
}
