package messaging

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/saylorsolutions/httpnotifier/syncx"
	"sync/atomic"
	"weak"
)

// Handler is a callback for a generic subscription.
// The live subscriber is passed in so the callback doesn't need to capture it.
type Handler[S, A any] func(subscriber *S, args A) error

// SenderHandler is a callback for a subscription scoped to a sender type T.
type SenderHandler[S, T, A any] func(subscriber *S, sender T, args A) error

// SubscribeOption changes how a subscription is invoked.
type SubscribeOption func(sub *subscription)

// Async makes a subscription's callback run on its own goroutine instead of the publisher's.
// Invocations of the same subscription never overlap, and run in the order they were sent.
func Async() SubscribeOption {
	return func(sub *subscription) {
		sub.async = true
	}
}

type subscription struct {
	id    uuid.UUID
	key   routingKey
	async bool
	gate  syncx.Gate

	alive func() bool
	owns  func(subscriber any) bool
	bound atomic.Pointer[binding]
}

// binding holds everything a subscription references besides its subscriber.
// It's dropped on disposal, so a source held by a filter can be collected.
type binding struct {
	accepts func(sender any) bool
	call    func(sender, args any) error
}

func newSubscription[S any](subscriber *S, key routingKey, opts []SubscribeOption) (*subscription, weak.Pointer[S]) {
	handle := weak.Make(subscriber)
	sub := &subscription{
		id:  uuid.New(),
		key: key,
		alive: func() bool {
			return handle.Value() != nil
		},
		owns: func(candidate any) bool {
			ptr, ok := candidate.(*S)
			return ok && ptr != nil && weak.Make(ptr) == handle
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(sub)
		}
	}
	return sub, handle
}

// bind sets the callback, and the sender filter if not nil.
func (s *subscription) bind(call func(sender, args any) error, accepts func(sender any) bool) {
	s.bound.Store(&binding{accepts: accepts, call: call})
}

func payload[A any](args any) A {
	val, _ := args.(A)
	return val
}

// active reports whether the subscription may still be invoked.
func (s *subscription) active() bool {
	return s.bound.Load() != nil && s.alive()
}

func (s *subscription) dispose() {
	s.bound.Store(nil)
}

// current returns the binding if the subscription is still active.
func (s *subscription) current() *binding {
	bound := s.bound.Load()
	if bound == nil || !s.alive() {
		return nil
	}
	return bound
}

// deliver invokes the callback if the subscription is still live and accepts the sender.
// Async subscriptions take their place in line on the calling goroutine, so queued invocations keep send order.
func (s *subscription) deliver(b *Bus, sender, args any) error {
	bound := s.current()
	if bound == nil || (bound.accepts != nil && !bound.accepts(sender)) {
		return nil
	}
	if !s.async {
		return bound.call(sender, args)
	}
	ticket := s.gate.Reserve()
	b.inflight.add()
	go func() {
		defer b.inflight.done()
		err := func() error {
			ticket.Await()
			defer ticket.Release()
			// Disposal while queued drops the invocation.
			bound := s.current()
			if bound == nil {
				return nil
			}
			return safeCall(bound.call, sender, args)
		}()
		if err != nil {
			b.reportFailure(s, err)
		}
	}()
	return nil
}

func safeCall(call func(sender, args any) error, sender, args any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCallbackPanic, r)
		}
	}()
	return call(sender, args)
}
