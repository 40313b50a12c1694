package event

import "sync"

// Handler processes a single published event. A non-nil error aborts the
// remaining handlers for that publish and is returned to the publisher.
type Handler func(Event) error

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	kind Kind
	all  bool
	id   uint64
}

type subscriber struct {
	id uint64
	fn Handler
}

// Bus is a synchronous publish/subscribe dispatcher. Handlers run in
// registration order, in the publisher's goroutine, before Publish returns.
// Exact-kind and wildcard handlers live in independent registries; both fire
// for a matching publish, exact handlers first.
type Bus struct {
	mu       sync.Mutex
	nextID   uint64
	exact    map[Kind][]subscriber
	wildcard []subscriber
}

func NewBus() *Bus {
	return &Bus{exact: make(map[Kind][]subscriber)}
}

// Subscribe registers fn for events of exactly the given kind.
func (b *Bus) Subscribe(kind Kind, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.exact[kind] = append(b.exact[kind], subscriber{id: b.nextID, fn: fn})
	return Subscription{kind: kind, id: b.nextID}
}

// SubscribeAll registers fn for every published event.
func (b *Bus) SubscribeAll(fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.wildcard = append(b.wildcard, subscriber{id: b.nextID, fn: fn})
	return Subscription{all: true, id: b.nextID}
}

// Unsubscribe removes a previously registered handler. Removing an unknown
// subscription is a no-op.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub.all {
		b.wildcard = remove(b.wildcard, sub.id)
		return
	}
	b.exact[sub.kind] = remove(b.exact[sub.kind], sub.id)
}

// Publish dispatches ev to all exact subscribers of its kind, then to all
// wildcard subscribers. The first handler error stops dispatch and is
// returned as-is; no queuing, no recovery. Handlers may publish, subscribe
// or unsubscribe reentrantly — the in-flight dispatch uses the registry as
// it was when Publish was called.
func (b *Bus) Publish(ev Event) error {
	b.mu.Lock()
	subs := make([]subscriber, 0, len(b.exact[ev.Kind()])+len(b.wildcard))
	subs = append(subs, b.exact[ev.Kind()]...)
	subs = append(subs, b.wildcard...)
	b.mu.Unlock()

	for _, s := range subs {
		if err := s.fn(ev); err != nil {
			return err
		}
	}
	return nil
}

func remove(subs []subscriber, id uint64) []subscriber {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}
