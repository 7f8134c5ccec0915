package events

import "sync"

// EventType identifies different types of events
type EventType string

// Event interface that all events must implement
type Event interface {
	Type() EventType
}

// EventHandler is a function that processes events
type EventHandler func(Event)

// SubscriptionID identifies a registered handler so it can be removed again
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler EventHandler
}

// Manager manages event subscriptions and dispatches.
// It is safe for concurrent use: generation emits from a background goroutine
// while the viewer subscribes from the main one.
type Manager struct {
	mu          sync.RWMutex
	nextID      SubscriptionID
	subscribers map[EventType][]subscription
}

// NewManager creates a new event manager
func NewManager() *Manager {
	return &Manager{
		subscribers: make(map[EventType][]subscription),
	}
}

// Subscribe registers a handler for a specific event type
func (m *Manager) Subscribe(eventType EventType, handler EventHandler) SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.subscribers[eventType] = append(m.subscribers[eventType], subscription{id: m.nextID, handler: handler})
	return m.nextID
}

// Unsubscribe removes a handler for a specific event type
func (m *Manager) Unsubscribe(eventType EventType, id SubscriptionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	subs, exists := m.subscribers[eventType]
	if !exists {
		return
	}

	kept := make([]subscription, 0, len(subs))
	for _, s := range subs {
		if s.id != id {
			kept = append(kept, s)
		}
	}

	if len(kept) == 0 {
		delete(m.subscribers, eventType)
	} else {
		m.subscribers[eventType] = kept
	}
}

// Emit dispatches an event to all subscribed handlers.
// Handlers run on the emitting goroutine, outside the lock, so they may subscribe or unsubscribe.
func (m *Manager) Emit(event Event) {
	m.mu.RLock()
	subs := m.subscribers[event.Type()]
	handlers := make([]EventHandler, len(subs))
	for i, s := range subs {
		handlers[i] = s.handler
	}
	m.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
