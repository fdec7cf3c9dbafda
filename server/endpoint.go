package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/saylorsolutions/httpnotifier/notification"
	"github.com/saylorsolutions/httpnotifier/patterns/messaging"
	"log/slog"
	"net/http"
)

var (
	ErrServerError = errors.New("server error")
)

// Query parameters accepted by the [Endpoint].
const (
	ParamID      = "id"
	ParamTitle   = "title"
	ParamMessage = "message"
	ParamType    = "type"
)

// Endpoint receives notifications over HTTP and publishes them on the bus, with itself as the sender.
// All parameters are optional, and any combination of them is accepted.
type Endpoint struct {
	bus    *messaging.Bus
	logger *slog.Logger
}

// NewEndpoint creates an [Endpoint] that publishes to bus.
func NewEndpoint(bus *messaging.Bus, logger *slog.Logger) *Endpoint {
	if bus == nil {
		panic("nil bus")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Endpoint{bus: bus, logger: logger}
}

func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	errHandler(e.logger, e.send)(w, r)
}

func (e *Endpoint) send(w http.ResponseWriter, r *http.Request) error {
	// Malformed pairs are dropped, and every well-formed one is still parsed.
	if err := r.ParseForm(); err != nil {
		e.logger.LogAttrs(r.Context(), slog.LevelDebug, "Ignoring malformed parameters", slog.Any("error", err))
	}
	body := notification.ComposeBody(r.Form.Get(ParamTitle), r.Form.Get(ParamType), r.Form.Get(ParamMessage))
	e.logger.LogAttrs(r.Context(), slog.LevelDebug, "Notification received",
		slog.Bool("hasID", len(r.Form.Get(ParamID)) > 0),
		slog.Int("length", len(body)),
	)
	if err := messaging.Send(e.bus, e, notification.MessageName, notification.Message{Text: body}); err != nil {
		return fmt.Errorf("%w: %v", ErrServerError, err)
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

type errHandlerFunc = func(w http.ResponseWriter, r *http.Request) error

// errHandler logs a returned error and responds with a 500.
func errHandler(logger *slog.Logger, handler errHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handler(w, r)
		if err == nil {
			return
		}
		logger.LogAttrs(context.WithoutCancel(r.Context()), slog.LevelError, "Failed to handle request",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
