package logging

import (
	"context"
	"errors"
	"log/slog"
)

var errNoHandlers = errors.New("no handlers to merge")

var _ slog.Handler = (*handlerJoiner)(nil)

type handlerJoiner struct {
	handlers []slog.Handler
}

func (h *handlerJoiner) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *handlerJoiner) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		errs = append(errs, handler.Handle(ctx, record.Clone()))
	}
	return errors.Join(errs...)
}

func (h *handlerJoiner) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(handler slog.Handler) slog.Handler {
		return handler.WithAttrs(attrs)
	})
}

func (h *handlerJoiner) WithGroup(name string) slog.Handler {
	return h.derive(func(handler slog.Handler) slog.Handler {
		return handler.WithGroup(name)
	})
}

// derive returns a new joiner, leaving h unchanged.
func (h *handlerJoiner) derive(fn func(slog.Handler) slog.Handler) slog.Handler {
	derived := &handlerJoiner{handlers: make([]slog.Handler, len(h.handlers))}
	for i, handler := range h.handlers {
		derived.handlers[i] = fn(handler)
	}
	return derived
}

// MergeHandlers combines handlers so every record is passed to each of them that is enabled for its level.
func MergeHandlers(handlers ...slog.Handler) slog.Handler {
	switch len(handlers) {
	case 0:
		panic(errNoHandlers)
	case 1:
		return handlers[0]
	}
	return &handlerJoiner{handlers: handlers}
}
