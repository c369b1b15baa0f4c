// Package events provides a synchronous publish/subscribe feed.
package events

import "sync"

// Feed delivers published values to subscribers in subscription order.
// Publish calls the handlers synchronously on the caller's goroutine.
type Feed[T any] struct {
	mu       sync.Mutex
	nextID   uint64
	handlers []subscription[T]
}

type subscription[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it.
// The returned function is idempotent.
func (f *Feed[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := f.nextID
	f.handlers = append(f.handlers, subscription[T]{id: id, fn: fn})

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, s := range f.handlers {
			if s.id == id {
				// копия среза: Publish может итерироваться по старому
				handlers := make([]subscription[T], 0, len(f.handlers)-1)
				handlers = append(handlers, f.handlers[:i]...)
				f.handlers = append(handlers, f.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every current subscriber with v.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	handlers := f.handlers
	f.mu.Unlock()

	for _, s := range handlers {
		s.fn(v)
	}
}
