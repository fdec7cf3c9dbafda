package messaging

import (
	"fmt"
	"reflect"
)

// Empty is the payload type of messages that carry no arguments.
// Subscribing with Empty as the payload type matches messages published with [Signal].
type Empty struct{}

var (
	// anySender is the sender type of generic subscriptions.
	// reflect.TypeOf never returns an interface type for a runtime value, so this never collides with a concrete sender type.
	anySender = reflect.TypeFor[any]()
	emptyArgs = reflect.TypeFor[Empty]()
)

// routingKey identifies a subscription slot.
// A nil arg means the message carries no payload.
type routingKey struct {
	name   string
	sender reflect.Type
	arg    reflect.Type
}

func argType[A any]() reflect.Type {
	t := reflect.TypeFor[A]()
	if t == emptyArgs {
		return nil
	}
	return t
}

func genericKey[A any](name string) routingKey {
	return routingKey{
		name:   name,
		sender: anySender,
		arg:    argType[A](),
	}
}

func senderKey[T, A any](name string) (routingKey, error) {
	sender := reflect.TypeFor[T]()
	if sender.Kind() == reflect.Interface {
		return routingKey{}, invalidf("sender type %s must be a concrete type", sender)
	}
	return routingKey{
		name:   name,
		sender: sender,
		arg:    argType[A](),
	}, nil
}

func (k routingKey) String() string {
	sender := "*"
	if k.sender != anySender {
		sender = k.sender.String()
	}
	arg := "-"
	if k.arg != nil {
		arg = k.arg.String()
	}
	return fmt.Sprintf("%s(%s, %s)", k.name, sender, arg)
}
