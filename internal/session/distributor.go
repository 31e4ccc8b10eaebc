package session

import (
	"context"
	"sync"
)

// Distributor publishes session snapshots to every subscribed consumer.
// One instance lives for the whole application; it never mutates the
// session itself. Broadcasts are synchronous: every subscriber has seen
// the new snapshot before the mutating call returns.
type Distributor struct {
	mu          sync.Mutex
	current     Session
	subscribers map[int]func(Session)
	nextID      int
}

// NewDistributor starts with a Loading snapshot until the first publish.
func NewDistributor() *Distributor {
	return &Distributor{
		current:     Session{State: StateLoading},
		subscribers: map[int]func(Session){},
	}
}

// Subscribe registers fn for future broadcasts and immediately delivers
// the current snapshot so a late-mounting consumer is never stale. The
// returned function cancels the subscription.
func (d *Distributor) Subscribe(fn func(Session)) func() {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.subscribers[id] = fn
	current := d.current
	d.mu.Unlock()

	fn(current)

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.subscribers, id)
	}
}

// Publish replaces the current snapshot and notifies all subscribers.
func (d *Distributor) Publish(s Session) {
	d.mu.Lock()
	d.current = s
	fns := make([]func(Session), 0, len(d.subscribers))
	for _, fn := range d.subscribers {
		fns = append(fns, fn)
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// Current returns the latest published snapshot.
func (d *Distributor) Current() Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

type ctxKey struct{}

// NewContext scopes the distributor to a context subtree, the explicit
// replacement for an ambient provider.
func NewContext(ctx context.Context, d *Distributor) context.Context {
	return context.WithValue(ctx, ctxKey{}, d)
}

// FromContext returns the scoped distributor. Reading session state
// outside the session scope is a programming error, so it panics rather
// than limping along with a nil provider.
func FromContext(ctx context.Context) *Distributor {
	d, ok := ctx.Value(ctxKey{}).(*Distributor)
	if !ok || d == nil {
		panic("session: no distributor in context; handler mounted outside the session scope")
	}
	return d
}
