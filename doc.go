/*
Package httpnotifier is a local emulator for an HTTP notification service.

Notifications sent to the endpoint are published on an in-process message bus ([messaging]), and every subscriber interested in them receives a copy.
The command in cmd/httpnotifier serves the endpoint and prints a timestamped log of what it received, and can also send test notifications to it.

The bus in patterns/messaging is useful on its own, and routes by message name, sender type, and payload type without keeping subscribers alive.

[messaging]: https://pkg.go.dev/github.com/saylorsolutions/httpnotifier/patterns/messaging
*/
package httpnotifier
