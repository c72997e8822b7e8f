// Package state provides the observable value container behind every client
// state holder (session, cart, catalogs).
//
// A Holder owns one value. Updates run under its lock and subscribers are
// called afterwards, outside the value lock, in subscription order.
// Notifications are delivered in the order the updates were applied, so the
// last value a subscriber sees is the current one. Subscribers may read the
// holder but must not update it. Values handed to readers and subscribers
// must be treated as read-only: holders replace slices wholesale instead of
// mutating them.
package state

import "sync"

type Holder[T any] struct {
	// notifyMu spans an update and its notifications.
	notifyMu sync.Mutex

	mu    sync.Mutex
	value T
	subs  []subscription[T]
	next  int
}

type subscription[T any] struct {
	id int
	fn func(T)
}

func New[T any](initial T) *Holder[T] {
	return &Holder[T]{value: initial}
}

// Get returns the current value.
func (h *Holder[T]) Get() T {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value
}

// Update applies fn to the value and notifies subscribers with the result.
func (h *Holder[T]) Update(fn func(v *T)) T {
	h.notifyMu.Lock()
	defer h.notifyMu.Unlock()

	h.mu.Lock()
	fn(&h.value)
	v := h.value
	subs := make([]subscription[T], len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
	return v
}

// Set replaces the value.
func (h *Holder[T]) Set(v T) {
	h.Update(func(cur *T) { *cur = v })
}

// Subscribe registers fn for future updates and returns a function that
// removes it.
func (h *Holder[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	id := h.next
	h.subs = append(h.subs, subscription[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, s := range h.subs {
				if s.id == id {
					h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
					return
				}
			}
		})
	}
}
