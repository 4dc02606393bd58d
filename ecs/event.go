package ecs

// EventType identifies different types of events
type EventType string

// Event interface that all events must implement
type Event interface {
	Type() EventType
}

// EventHandler is a function that processes events
type EventHandler func(Event)

// Subscription identifies a registered handler so it can be removed later
type Subscription struct {
	eventType EventType
	id        int
}

type subscriber struct {
	id      int
	handler EventHandler
}

// EventManager manages event subscriptions and dispatches
type EventManager struct {
	subscribers map[EventType][]subscriber
	nextID      int
}

// NewEventManager creates a new event manager
func NewEventManager() *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]subscriber),
	}
}

// Subscribe registers a handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) Subscription {
	em.nextID++
	em.subscribers[eventType] = append(em.subscribers[eventType], subscriber{id: em.nextID, handler: handler})
	return Subscription{eventType: eventType, id: em.nextID}
}

// Unsubscribe removes a handler registered with Subscribe.
// It is safe to call from inside a handler during Emit.
func (em *EventManager) Unsubscribe(sub Subscription) {
	handlers, exists := em.subscribers[sub.eventType]
	if !exists {
		return
	}

	// Build a new slice so an Emit ranging over the old one is unaffected
	newHandlers := make([]subscriber, 0, len(handlers))
	for _, s := range handlers {
		if s.id != sub.id {
			newHandlers = append(newHandlers, s)
		}
	}

	if len(newHandlers) == 0 {
		delete(em.subscribers, sub.eventType)
	} else {
		em.subscribers[sub.eventType] = newHandlers
	}
}

// Emit dispatches an event to all subscribed handlers
func (em *EventManager) Emit(event Event) {
	for _, s := range em.subscribers[event.Type()] {
		s.handler(event)
	}
}
