package main

import (
	"bytes"
	"context"
	"github.com/saylorsolutions/httpnotifier/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mux sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.buf.String()
}

func testCLI() (*cli.CommandSet, *syncBuffer, *syncBuffer) {
	var stdout, stderr syncBuffer
	return newCLI(&stdout, &stderr), &stdout, &stderr
}

func TestRun_Usage(t *testing.T) {
	for _, args := range [][]string{nil, {"--help"}} {
		a, _, stderr := testCLI()
		assert.NoError(t, a.Exec(context.Background(), args))
		assert.Contains(t, stderr.String(), "serve")
		assert.Contains(t, stderr.String(), "send")
	}

	a, _, stderr := testCLI()
	assert.NoError(t, a.Exec(context.Background(), []string{"send", "-h"}))
	assert.Contains(t, stderr.String(), "--max-tries")
}

func TestRun_UnknownCommand(t *testing.T) {
	a, _, _ := testCLI()
	assert.ErrorIs(t, a.Exec(context.Background(), []string{"listen"}), cli.ErrUnknownCommand)
}

func TestRun_UnexpectedArgs(t *testing.T) {
	for _, command := range []string{"serve", "send"} {
		a, _, stderr := testCLI()
		err := a.Exec(context.Background(), []string{command, "extra"})
		assert.ErrorIs(t, err, &cli.UsageError{})
		assert.Contains(t, stderr.String(), "unexpected arguments: [extra]")
		assert.Contains(t, stderr.String(), "httpnotifier "+command+" [FLAGS...]")
	}
}

func TestSend(t *testing.T) {
	queries := make(chan url.Values, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries <- r.URL.Query()
	}))
	defer srv.Close()

	a, _, stderr := testCLI()
	err := a.Exec(context.Background(), []string{"send", "--url", srv.URL, "--id", "API_KEY_HERE", "-m", "Garage door is OPEN!"})
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "Notification Sent!")

	q := <-queries
	assert.Equal(t, "API_KEY_HERE", q.Get("id"))
	assert.Equal(t, "Basement Alarm Notification", q.Get("title"))
	assert.Equal(t, "Garage door is OPEN!", q.Get("message"))
	assert.Equal(t, "Alarm - Unsecured", q.Get("type"))
}

func TestSend_InvalidFlag(t *testing.T) {
	a, _, _ := testCLI()
	err := a.Exec(context.Background(), []string{"send", "--max-tries", "0"})
	assert.Error(t, err)
}

var apiPattern = regexp.MustCompile(`Notification API: (http://\S+)/send`)

func TestServeAndSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	server, stdout, _ := testCLI()
	served := make(chan error, 1)
	go func() {
		served <- server.Exec(ctx, []string{"serve", "--addr", "127.0.0.1:0", "--shutdown-timeout", "2s"})
	}()

	var base string
	require.Eventually(t, func() bool {
		match := apiPattern.FindStringSubmatch(stdout.String())
		if match == nil {
			return false
		}
		base = match[1]
		return true
	}, 5*time.Second, 10*time.Millisecond)

	sender, _, _ := testCLI()
	require.NoError(t, sender.Exec(ctx, []string{"send", "--url", base, "--type", ""}))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2} - Basement Alarm Notification$`, lines[1])
	assert.Equal(t, "Basement door is OPEN!", lines[2])

	cancel()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve didn't stop after the context was cancelled")
	}
}
