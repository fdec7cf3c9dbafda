package messaging

import (
	"github.com/saylorsolutions/httpnotifier/syncx"
	"sync"
)

// registry maps routing keys to subscriptions in registration order.
// The lock is only held to read or change the map, never while a callback runs.
type registry struct {
	mux    sync.RWMutex
	routes map[routingKey][]*subscription
}

func (r *registry) register(sub *subscription) {
	syncx.LockFunc(&r.mux, func() {
		if r.routes == nil {
			r.routes = map[routingKey][]*subscription{}
		}
		r.routes[sub.key] = append(r.routes[sub.key], sub)
	})
}

// lookup returns copies of the subscriptions registered under both keys, taken under the same lock.
func (r *registry) lookup(exact, generic routingKey) (exactSubs, genericSubs []*subscription) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.snapshot(exact), r.snapshot(generic)
}

func (r *registry) snapshot(key routingKey) []*subscription {
	subs := r.routes[key]
	if len(subs) == 0 {
		return nil
	}
	cp := make([]*subscription, len(subs))
	copy(cp, subs)
	return cp
}

// remove disposes and removes every subscription under key that matches.
// The key is dropped once no subscriptions remain.
func (r *registry) remove(key routingKey, match func(sub *subscription) bool) int {
	return syncx.LockFuncT(&r.mux, func() int {
		subs, ok := r.routes[key]
		if !ok {
			return 0
		}
		kept, removed := partition(subs, match)
		if len(kept) == 0 {
			delete(r.routes, key)
		} else {
			r.routes[key] = kept
		}
		return removed
	})
}

// prune removes every subscription that is no longer active, across all keys.
func (r *registry) prune() int {
	return syncx.LockFuncT(&r.mux, func() int {
		var total int
		for key, subs := range r.routes {
			kept, removed := partition(subs, func(sub *subscription) bool {
				return !sub.active()
			})
			total += removed
			if len(kept) == 0 {
				delete(r.routes, key)
				continue
			}
			r.routes[key] = kept
		}
		return total
	})
}

func (r *registry) len() int {
	return syncx.RLockFuncT(&r.mux, func() int {
		var count int
		for _, subs := range r.routes {
			count += len(subs)
		}
		return count
	})
}

func (r *registry) keys() int {
	return syncx.RLockFuncT(&r.mux, func() int {
		return len(r.routes)
	})
}

// partition disposes matching subscriptions, and returns a new slice with the rest.
// A new slice is always built so snapshots taken earlier are never changed.
func partition(subs []*subscription, match func(sub *subscription) bool) ([]*subscription, int) {
	kept := make([]*subscription, 0, len(subs))
	var removed int
	for _, sub := range subs {
		if match(sub) {
			sub.dispose()
			removed++
			continue
		}
		kept = append(kept, sub)
	}
	return kept, removed
}
