package syncx

import (
	"sync"
)

// Gate is a single-permit lock that hands out its permit in reservation order.
//
// Unlike a [sync.Mutex], the place in line is taken with [Gate.Reserve], which never blocks.
// This allows a caller to queue work in a known order on its own goroutine, and have other goroutines wait for their turn.
// The zero value is an open Gate.
type Gate struct {
	mux     sync.Mutex
	held    bool
	waiters []chan struct{}
}

// Ticket is a place in line for a [Gate].
// Every Ticket must be released exactly once, whether or not it was awaited.
type Ticket struct {
	gate    *Gate
	ready   chan struct{}
	release sync.Once
}

// Reserve takes the next place in line without blocking.
// If the Gate is open, then the returned [Ticket] holds the permit immediately.
func (g *Gate) Reserve() *Ticket {
	t := &Ticket{gate: g, ready: make(chan struct{})}
	LockFunc(&g.mux, func() {
		if !g.held {
			g.held = true
			close(t.ready)
			return
		}
		g.waiters = append(g.waiters, t.ready)
	})
	return t
}

// Waiting returns the number of tickets queued behind the current permit holder.
func (g *Gate) Waiting() int {
	return LockFuncT(&g.mux, func() int {
		return len(g.waiters)
	})
}

// Await blocks until this [Ticket] holds the permit.
func (t *Ticket) Await() {
	<-t.ready
}

// Ready returns a channel that is closed once this [Ticket] holds the permit.
func (t *Ticket) Ready() <-chan struct{} {
	return t.ready
}

// Release passes the permit to the next ticket in line, or opens the [Gate] if none are waiting.
// Releasing a ticket that doesn't hold the permit yet waits for it first, so the order of the line is preserved.
// Only the first call has any effect.
func (t *Ticket) Release() {
	t.release.Do(func() {
		<-t.ready
		g := t.gate
		LockFunc(&g.mux, func() {
			if len(g.waiters) == 0 {
				g.held = false
				return
			}
			next := g.waiters[0]
			g.waiters[0] = nil
			g.waiters = g.waiters[1:]
			close(next)
		})
	})
}
