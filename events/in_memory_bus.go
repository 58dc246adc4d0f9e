package events

import "sync"

type HandlerFunc func(Event) error

type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[Type][]HandlerFunc
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[Type][]HandlerFunc),
	}
}

func (b *InMemoryBus) Subscribe(eventType Type, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

func (b *InMemoryBus) Publish(evt Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, handler := range b.handlers[evt.Type] {
		if err := handler(evt); err != nil {
			return err
		}
	}

	return nil
}
