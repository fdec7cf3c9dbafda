package notification

import (
	"github.com/saylorsolutions/httpnotifier/patterns/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

type testSender struct {
	name string
}

func testClock() func() time.Time {
	ts := time.Date(2026, time.October, 15, 8, 30, 0, 0, time.Local)
	return func() time.Time {
		return ts
	}
}

func TestLog_Receive(t *testing.T) {
	var mirror strings.Builder
	bus := messaging.NewBus()
	log, err := NewLog(bus, WithClock(testClock()), WithMirror(&mirror))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, log.Close())
	}()

	body := ComposeBody("Basement Alarm", "", "Door open")
	require.NoError(t, messaging.Send(bus, &testSender{}, MessageName, Message{Text: body}))

	lines := log.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "2026-10-15T08:30:00 - Basement Alarm\nDoor open", lines[0])
	assert.Equal(t, lines[0]+"\n", mirror.String())

	require.NoError(t, messaging.Send(bus, &testSender{}, MessageName, Message{Text: ComposeBody("", "", "")}))
	assert.Equal(t, "2026-10-15T08:30:00 - Basement Alarm\nDoor open\n2026-10-15T08:30:00 - (No message text)", log.String())
}

func TestLog_Append(t *testing.T) {
	log, err := NewLog(messaging.NewBus())
	require.NoError(t, err)
	defer func() {
		_ = log.Close()
	}()
	assert.Empty(t, log.String())
	log.Append("API listening on :5020")
	log.Append("second")
	assert.Equal(t, "API listening on :5020\nsecond", log.String())
}

func TestLog_Close(t *testing.T) {
	bus := messaging.NewBus()
	log, err := NewLog(bus, WithClock(testClock()))
	require.NoError(t, err)
	assert.Equal(t, 1, bus.Len())

	require.NoError(t, log.Close())
	assert.Equal(t, 0, bus.Len())
	require.NoError(t, messaging.Send(bus, &testSender{}, MessageName, Message{Text: "ignored"}))
	assert.Empty(t, log.Lines())
	assert.NoError(t, log.Close(), "Closing twice should be safe")
}

func TestLog_OtherMessages(t *testing.T) {
	bus := messaging.NewBus()
	log, err := NewLog(bus)
	require.NoError(t, err)
	defer func() {
		_ = log.Close()
	}()
	require.NoError(t, messaging.Send(bus, &testSender{}, "SomethingElse", Message{Text: "ignored"}))
	require.NoError(t, messaging.Send(bus, &testSender{}, MessageName, "wrong payload type"))
	assert.Empty(t, log.Lines())
}

func TestNewLog_InvalidOptions(t *testing.T) {
	bus := messaging.NewBus()
	_, err := NewLog(bus, WithClock(nil))
	assert.Error(t, err)
	_, err = NewLog(bus, WithMirror(nil))
	assert.Error(t, err)
	_, err = NewLog(nil)
	assert.ErrorIs(t, err, messaging.ErrInvalidArgument)
	assert.Equal(t, 0, bus.Len())
}
