/*
Package messaging provides an in-process message bus that lets components communicate by message name, without holding references to each other.

# Design Priorities

  - Subscribers should never be kept alive by the bus. A subscriber that is no longer referenced elsewhere simply stops receiving messages.
  - Publishing should never block on asynchronous subscribers.
  - Routing should be typed. A message is identified by its name, the sender's type, and the payload's type.
  - The bus should be transparent. It doesn't log, wrap, or swallow errors returned from synchronous subscribers.

# Routing

Every subscription is registered under a routing key made of the message name, a sender type, and a payload type.
Generic subscriptions ([Subscribe]) use a marker sender type that matches any sender, and never see the sender value.
Typed subscriptions ([SubscribeSender] and [SubscribeFrom]) match only senders of the exact concrete type, and receive the sender.
[SubscribeFrom] additionally filters on a single source value, so the callback fires only when that source sends.

Payload-less messages use the [Empty] payload type, and may be sent with [Signal].

Subscriptions that share a routing key are delivered in registration order.
For one call to [Send], typed matches are delivered before generic matches.
There is no ordering between different routing keys beyond that.

# Subscriber Lifetime

The bus holds subscribers with weak pointers.
Callbacks receive the live subscriber as their first parameter, so they don't need to capture it.
A callback that captures its subscriber holds it strongly, and that subscriber will never expire.
A subscriber held in a package-level variable never expires either.
Subscribers of a zero-size type are rejected, since their instances may share an address and can't be told apart.

Once a subscriber is collected, its subscriptions are skipped at dispatch.
They are physically removed by the next [Unsubscribe] or [UnsubscribeFrom] call for the same routing key, or by [Bus.Prune].
Removing a subscription drops its callback and any source passed to [SubscribeFrom].

# Synchronous and Asynchronous Delivery

By default a callback runs on the publisher's goroutine before [Send] returns.
An error returned from a synchronous callback stops delivery and is returned from [Send] unmodified, and a panic unwinds through [Send].

Passing the [Async] option runs the callback on its own goroutine.
Each subscription serializes its asynchronous invocations, so they never overlap and run in the order they were sent.
Independent subscriptions run fully concurrently.
[Send] doesn't wait for asynchronous callbacks, and never sees their errors.
To observe those errors, register a [FailureHandler] with [WithFailureHandler].
[Bus.AwaitIdle] may be used during shutdown to let in-flight asynchronous callbacks finish.

# Bus Initialization

Use [Instance] for the process-wide default [Bus], or [NewBus] for an isolated instance that can be passed to components explicitly.
[InitInstance] configures the default [Bus] once, before its first use.
*/
package messaging
