package messaging

import (
	"errors"
	"github.com/saylorsolutions/httpnotifier/syncx"
	"sync"
	"time"
)

var (
	instanceBus *Bus
	initOnce    sync.Once
)

// Instance returns the process-wide default [Bus], creating it on first use.
// Components that can be given a [Bus] explicitly should prefer that, since it keeps them testable in isolation.
func Instance() *Bus {
	initOnce.Do(func() {
		instanceBus = NewBus()
	})
	return instanceBus
}

// InitInstance creates the default [Bus] with the given options.
// This only has an effect if called before the first use of [Instance], and returns true if it did.
func InitInstance(opts ...Option) bool {
	var initialized bool
	initOnce.Do(func() {
		instanceBus = NewBus(opts...)
		initialized = true
	})
	return initialized
}

// Option configures a [Bus].
type Option func(b *Bus) error

// WithFailureHandler sets the [FailureHandler] that receives errors and panics from asynchronous callbacks.
func WithFailureHandler(handler FailureHandler) Option {
	return func(b *Bus) error {
		if handler == nil {
			return errors.New("nil failure handler")
		}
		b.onFailure = handler
		return nil
	}
}

// Bus routes messages from senders to subscribers.
// A Bus must be created with [NewBus] or retrieved with [Instance].
type Bus struct {
	routes    registry
	inflight  tracker
	onFailure FailureHandler
}

// NewBus creates a new, empty [Bus].
// Panics if an [Option] returns an error, since that indicates a programming error.
func NewBus(opts ...Option) *Bus {
	b := new(Bus)
	for _, opt := range opts {
		if err := opt(b); err != nil {
			panic("invalid bus option: " + err.Error())
		}
	}
	return b
}

// Len returns the number of registered subscriptions, including ones that are no longer live but haven't been removed yet.
func (b *Bus) Len() int {
	return b.routes.len()
}

// Prune removes every subscription whose subscriber has been collected, and returns how many were removed.
// This isn't required for correctness, since dead subscriptions are skipped at dispatch.
func (b *Bus) Prune() int {
	return b.routes.prune()
}

// AwaitIdle waits until no asynchronous callbacks are queued or running, or until the timeout elapses.
// Returns true if the [Bus] became idle.
// This is intended for shutdown and tests. It says nothing about which publish an asynchronous callback belonged to.
func (b *Bus) AwaitIdle(timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-b.inflight.idle():
		return true
	case <-timer.C:
		return false
	}
}

func (b *Bus) reportFailure(sub *subscription, err error) {
	if b.onFailure == nil {
		return
	}
	b.onFailure(Failure{
		Message:      sub.key.name,
		Key:          sub.key.String(),
		Subscription: sub.id,
		Err:          err,
	})
}

// tracker counts asynchronous invocations that haven't finished yet.
type tracker struct {
	mux     sync.Mutex
	pending int
	idleCh  chan struct{}
}

var closedCh = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func (t *tracker) add() {
	syncx.LockFunc(&t.mux, func() {
		if t.pending == 0 {
			t.idleCh = make(chan struct{})
		}
		t.pending++
	})
}

func (t *tracker) done() {
	syncx.LockFunc(&t.mux, func() {
		t.pending--
		if t.pending == 0 {
			close(t.idleCh)
		}
	})
}

func (t *tracker) idle() <-chan struct{} {
	return syncx.LockFuncT(&t.mux, func() <-chan struct{} {
		if t.pending == 0 {
			return closedCh
		}
		return t.idleCh
	})
}
