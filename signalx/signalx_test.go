//go:build unix

package signalx

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"syscall"
	"testing"
	"time"
)

func TestSignalExitCtx(t *testing.T) {
	exitCodes := make(chan int, 1)
	prevExit := exit
	exit = func(code int) {
		exitCodes <- code
	}
	t.Cleanup(func() {
		exit = prevExit
	})

	ctx, stop := SignalExitCtx(context.Background(), syscall.SIGUSR1)
	defer stop()
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("Context should have been cancelled by the first signal")
	}

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))
	select {
	case code := <-exitCodes:
		assert.Equal(t, 1, code)
	case <-time.After(time.Second):
		t.Fatal("The second signal should have exited")
	}
}

func TestSignalExitCtx_Stop(t *testing.T) {
	ctx, stop := SignalExitCtx(context.Background(), syscall.SIGUSR2)
	assert.NoError(t, ctx.Err())
	stop()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.NotPanics(t, assert.PanicTestFunc(stop), "Stop should be safe to call again")
}

func TestSignalExitCtx_NoSignals(t *testing.T) {
	assert.Panics(t, func() {
		SignalExitCtx(context.Background())
	})
}
