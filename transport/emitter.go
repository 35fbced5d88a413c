package transport

import "sync"

// Emitter keeps the event handlers of a transport. The zero value is ready
// to use.
type Emitter struct {
	mu       sync.RWMutex
	handlers map[Event][]Handler
}

// On registers a handler for an event.
func (e *Emitter) On(event Event, handler Handler) {
	if handler == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handlers == nil {
		e.handlers = make(map[Event][]Handler)
	}
	e.handlers[event] = append(e.handlers[event], handler)
}

// Emit calls every handler registered for the event, in registration order.
func (e *Emitter) Emit(event Event, data []byte) {
	e.mu.RLock()
	handlers := append([]Handler(nil), e.handlers[event]...)
	e.mu.RUnlock()

	for _, h := range handlers {
		h(data)
	}
}

// Count returns the number of handlers registered for the event.
func (e *Emitter) Count(event Event) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers[event])
}
