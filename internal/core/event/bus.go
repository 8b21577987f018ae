// Package event fans editor notifications out to any number of observers.
package event

import (
	"reflect"
	"sync"
)

// Bus delivers events synchronously: Publish returns after every handler for
// the event type has run, in subscription order.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]any)}
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Publish calls every handler subscribed to T with ev.
func Publish[T any](b *Bus, ev T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.mu.Lock()
	hs := b.handlers[t]
	b.mu.Unlock()
	for _, h := range hs {
		// Subscribe and Publish key on the same type, so the assertion holds.
		h.(func(T))(ev)
	}
}
