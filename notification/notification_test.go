package notification

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestComposeBody(t *testing.T) {
	tests := map[string]struct {
		title, kind, message string
		expected             string
	}{
		"Title and message": {
			title:    "Basement Alarm",
			message:  "Door open",
			expected: "Basement Alarm\nDoor open",
		},
		"All fields": {
			title:    "Basement Alarm Notification",
			kind:     AlarmUnsecuredType,
			message:  "Basement door is OPEN!",
			expected: "Basement Alarm Notification\nAlarm - Unsecured\nBasement door is OPEN!",
		},
		"Fields are trimmed": {
			title:    "  Garage \t",
			kind:     "\n" + AlarmSecuredType + " ",
			expected: "Garage\nAlarm - Secured",
		},
		"Blank type is skipped": {
			title:    "Basement Alarm",
			kind:     "   ",
			message:  "Door open",
			expected: "Basement Alarm\nDoor open",
		},
		"Message only": {
			message:  "Hello",
			expected: "Hello",
		},
		"All blank": {
			title:    " ",
			kind:     "",
			message:  "\t",
			expected: NoMessageText,
		},
		"All empty": {
			expected: "(No message text)",
		},
	}
	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComposeBody(tc.title, tc.kind, tc.message))
		})
	}
}
