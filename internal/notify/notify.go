// Package notify provides change notification for the in-memory stores.
//
// Each store owns one Notifier. Every applied mutation bumps the version and
// is delivered to subscribers, so collaborators can either poll Version or
// react to Change values as they happen.
package notify

import "sync"

// Change describes one applied mutation.
type Change struct {
	Source  string // store that changed, e.g. "chat"
	Op      string // operation name, e.g. "add_message"
	Subject string // id the operation touched, may be empty
	Version uint64 // store version after the change
}

// Notifier tracks a version counter and a set of subscribers.
type Notifier struct {
	source string

	// deliver serializes Publish so subscribers see versions in order.
	deliver sync.Mutex

	mu      sync.Mutex
	version uint64
	nextID  int
	subs    map[int]func(Change)
}

// New creates a Notifier for the named store.
func New(source string) *Notifier {
	return &Notifier{
		source: source,
		subs:   make(map[int]func(Change)),
	}
}

// Version returns the number of changes published so far.
func (n *Notifier) Version() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.version
}

// Subscribe registers fn to receive every future change. The returned
// function removes the subscription; calling it more than once is safe.
func (n *Notifier) Subscribe(fn func(Change)) (cancel func()) {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

// Publish bumps the version and calls every subscriber. Changes are
// delivered in version order. Callers must not hold their own store lock
// while publishing, and subscribers must not publish on the same Notifier.
func (n *Notifier) Publish(op, subject string) {
	n.deliver.Lock()
	defer n.deliver.Unlock()

	n.mu.Lock()
	n.version++
	c := Change{Source: n.source, Op: op, Subject: subject, Version: n.version}
	fns := make([]func(Change), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}
