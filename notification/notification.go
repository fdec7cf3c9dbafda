// Package notification defines the notification message carried on the bus, and the components that produce and consume it.
package notification

import (
	"strings"
)

const (
	// MessageName is the bus message name used for notifications.
	MessageName = "NotificationMessage"
	// NoMessageText is the body used when a notification has no title, type, or message.
	NoMessageText = "(No message text)"

	AlarmUnsecuredType = "Alarm - Unsecured"
	AlarmSecuredType   = "Alarm - Secured"
)

// Message is the payload of a [MessageName] message.
type Message struct {
	Text string
}

// ComposeBody builds a notification body from whichever of title, kind, and message aren't blank.
// Each is trimmed and placed on its own line, in that order.
// If all are blank, then [NoMessageText] is returned.
func ComposeBody(title, kind, message string) string {
	lines := make([]string, 0, 3)
	for _, part := range []string{title, kind, message} {
		part = strings.TrimSpace(part)
		if len(part) == 0 {
			continue
		}
		lines = append(lines, part)
	}
	if len(lines) == 0 {
		return NoMessageText
	}
	return strings.Join(lines, "\n")
}
