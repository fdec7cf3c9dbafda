package messaging

import (
	"reflect"
)

// Subscribe registers fn to receive every message with the given name and payload type A, regardless of sender.
// The sender is never passed to a generic subscription.
//
// The subscriber is held weakly, and determines how long the subscription lasts.
// The same subscriber may subscribe more than once to the same message, and each callback will be invoked.
func Subscribe[S, A any](b *Bus, subscriber *S, name string, fn Handler[S, A], opts ...SubscribeOption) error {
	if err := validateSubscribe(b, subscriber, name, fn == nil); err != nil {
		return err
	}
	sub, handle := newSubscription(subscriber, genericKey[A](name), opts)
	sub.bind(func(_, args any) error {
		recv := handle.Value()
		if recv == nil {
			return nil
		}
		return fn(recv, payload[A](args))
	}, nil)
	b.routes.register(sub)
	return nil
}

// SubscribeSender registers fn to receive messages with the given name and payload type A, but only from senders with the concrete type T.
// T may not be an interface type.
func SubscribeSender[S, T, A any](b *Bus, subscriber *S, name string, fn SenderHandler[S, T, A], opts ...SubscribeOption) error {
	return subscribeTyped(b, subscriber, name, fn, nil, opts)
}

// SubscribeFrom registers fn to receive messages with the given name and payload type A, but only when they're sent by source.
// Messages from any other sender are silently ignored.
// The source is held strongly for the life of the subscription.
func SubscribeFrom[S any, T comparable, A any](b *Bus, subscriber *S, name string, source T, fn SenderHandler[S, T, A], opts ...SubscribeOption) error {
	if isNil(source) {
		return invalidf("nil source")
	}
	return subscribeTyped(b, subscriber, name, fn, func(sender any) bool {
		val, ok := sender.(T)
		return ok && val == source
	}, opts)
}

func subscribeTyped[S, T, A any](b *Bus, subscriber *S, name string, fn SenderHandler[S, T, A], filter func(sender any) bool, opts []SubscribeOption) error {
	if err := validateSubscribe(b, subscriber, name, fn == nil); err != nil {
		return err
	}
	key, err := senderKey[T, A](name)
	if err != nil {
		return err
	}
	sub, handle := newSubscription(subscriber, key, opts)
	sub.bind(func(sender, args any) error {
		recv := handle.Value()
		if recv == nil {
			return nil
		}
		return fn(recv, payload[T](sender), payload[A](args))
	}, filter)
	b.routes.register(sub)
	return nil
}

func validateSubscribe[S any](b *Bus, subscriber *S, name string, nilCallback bool) error {
	if err := validateBus(b); err != nil {
		return err
	}
	if subscriber == nil {
		return invalidf("nil subscriber")
	}
	if reflect.TypeFor[S]().Size() == 0 {
		return invalidf("subscriber type %s has zero size, so its instances can't be told apart", reflect.TypeFor[S]())
	}
	if err := validateName(name); err != nil {
		return err
	}
	if nilCallback {
		return invalidf("nil callback")
	}
	return nil
}

// Unsubscribe removes the subscriber's generic subscriptions for the message name and payload type A.
// Subscriptions under the same key whose subscribers have been collected are removed as well.
// Calling this when nothing is subscribed is a no-op.
func Unsubscribe[A any](b *Bus, subscriber any, name string) error {
	if err := validateUnsubscribe(b, subscriber, name); err != nil {
		return err
	}
	b.unsubscribe(genericKey[A](name), subscriber)
	return nil
}

// UnsubscribeFrom removes the subscriber's subscriptions for the message name that are scoped to sender type T and payload type A.
// This covers both [SubscribeSender] and [SubscribeFrom].
func UnsubscribeFrom[T, A any](b *Bus, subscriber any, name string) error {
	if err := validateUnsubscribe(b, subscriber, name); err != nil {
		return err
	}
	key, err := senderKey[T, A](name)
	if err != nil {
		return err
	}
	b.unsubscribe(key, subscriber)
	return nil
}

func validateUnsubscribe(b *Bus, subscriber any, name string) error {
	if err := validateBus(b); err != nil {
		return err
	}
	if isNil(subscriber) {
		return invalidf("nil subscriber")
	}
	return validateName(name)
}

func (b *Bus) unsubscribe(key routingKey, subscriber any) {
	b.routes.remove(key, func(sub *subscription) bool {
		return sub.owns(subscriber) || !sub.active()
	})
}

// Send publishes args to every live subscription matching the message name, the sender's concrete type, and the payload type A.
//
// Typed subscriptions are delivered first with the sender, then generic subscriptions without it.
// Synchronous callbacks run before Send returns, and the first error returned by one stops delivery and is returned unmodified.
// Asynchronous callbacks are scheduled, but not awaited.
//
// The sender is required, since it's the identity used to route typed subscriptions.
func Send[A any](b *Bus, sender any, name string, args A) error {
	return b.send(sender, name, argType[A](), args)
}

// Signal publishes a message with no payload.
// It's delivered to subscriptions registered with [Empty] as their payload type.
func Signal(b *Bus, sender any, name string) error {
	return b.send(sender, name, nil, Empty{})
}

func (b *Bus) send(sender any, name string, arg reflect.Type, args any) error {
	if err := validateBus(b); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}
	if isNil(sender) {
		return invalidf("nil sender")
	}
	exact, generic := b.routes.lookup(
		routingKey{name: name, sender: reflect.TypeOf(sender), arg: arg},
		routingKey{name: name, sender: anySender, arg: arg},
	)
	for _, sub := range exact {
		if err := sub.deliver(b, sender, args); err != nil {
			return err
		}
	}
	for _, sub := range generic {
		if err := sub.deliver(b, nil, args); err != nil {
			return err
		}
	}
	return nil
}
