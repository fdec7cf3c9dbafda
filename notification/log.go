package notification

import (
	"errors"
	"fmt"
	"github.com/saylorsolutions/httpnotifier/patterns/messaging"
	"github.com/saylorsolutions/httpnotifier/syncx"
	"io"
	"strings"
	"sync"
	"time"
)

// TimestampFormat is the local, sortable timestamp format used for [Log] lines.
const TimestampFormat = "2006-01-02T15:04:05"

// LogOption configures a [Log].
type LogOption func(l *Log) error

// WithClock overrides the clock used to timestamp lines.
func WithClock(now func() time.Time) LogOption {
	return func(l *Log) error {
		if now == nil {
			return errors.New("nil clock")
		}
		l.now = now
		return nil
	}
}

// WithMirror writes every appended line to w as well, followed by a newline.
// Write errors are ignored.
func WithMirror(w io.Writer) LogOption {
	return func(l *Log) error {
		if w == nil {
			return errors.New("nil mirror writer")
		}
		l.mirror = w
		return nil
	}
}

// Log is an append-only text log of received notifications.
// It subscribes to [MessageName] on creation, and must be closed to unsubscribe.
// The bus doesn't keep a Log alive, so the caller must hold a reference for as long as it should receive messages.
type Log struct {
	bus    *messaging.Bus
	now    func() time.Time
	mirror io.Writer

	mux   sync.RWMutex
	lines []string
}

// NewLog creates a [Log] and subscribes it to notifications on bus.
func NewLog(bus *messaging.Bus, opts ...LogOption) (*Log, error) {
	l := &Log{
		bus: bus,
		now: time.Now,
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	if err := messaging.Subscribe(bus, l, MessageName, (*Log).receive); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Log) receive(msg Message) error {
	l.Append(fmt.Sprintf("%s - %s", l.now().Format(TimestampFormat), msg.Text))
	return nil
}

// Append adds a line to the log.
// This is also used for notices from the application itself.
func (l *Log) Append(line string) {
	syncx.LockFunc(&l.mux, func() {
		l.lines = append(l.lines, line)
		if l.mirror != nil {
			_, _ = io.WriteString(l.mirror, line+"\n")
		}
	})
}

// Lines returns a copy of every line in the log.
func (l *Log) Lines() []string {
	return syncx.RLockFuncT(&l.mux, func() []string {
		cp := make([]string, len(l.lines))
		copy(cp, l.lines)
		return cp
	})
}

// String returns the log text, with lines separated by newlines.
func (l *Log) String() string {
	return syncx.RLockFuncT(&l.mux, func() string {
		return strings.Join(l.lines, "\n")
	})
}

// Close unsubscribes the [Log] from notifications.
// Lines remain readable after Close.
func (l *Log) Close() error {
	return messaging.Unsubscribe[Message](l.bus, l, MessageName)
}
