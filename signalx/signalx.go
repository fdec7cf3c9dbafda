// Package signalx ties process signals to context cancellation.
package signalx

import (
	"context"
	"os"
	"os/signal"
	"sync"
)

var exit = os.Exit

// SignalExitCtx sets up a context that is cancelled when any of the given signals is received.
// If a second signal is received, then the process exits with a non-zero code.
// The returned stop function cancels the context, and stops listening for signals.
func SignalExitCtx(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	if len(signals) == 0 {
		panic("no signals passed to SignalExitCtx")
	}
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, signals...)

	var (
		stopOnce sync.Once
		stopped  = make(chan struct{})
	)
	stop := func() {
		stopOnce.Do(func() {
			signal.Stop(sigs)
			close(stopped)
			cancel()
		})
	}
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-stopped:
			return
		}
		select {
		case <-sigs:
			exit(1)
		case <-stopped:
		}
	}()
	return ctx, stop
}
