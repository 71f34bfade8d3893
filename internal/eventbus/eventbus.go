package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"gridview/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventDatasetLoaded     = domain.EventDatasetLoaded
	EventDatasetLoadFailed = domain.EventDatasetLoadFailed
	EventDatasetReplaced   = domain.EventDatasetReplaced
	EventSortChanged       = domain.EventSortChanged
	EventColumnResized     = domain.EventColumnResized
	EventWindowRecomputed  = domain.EventWindowRecomputed
	EventGeometryChanged   = domain.EventGeometryChanged
	EventConfigLoaded      = domain.EventConfigLoaded
	EventConfigChanged     = domain.EventConfigChanged
)

// Re-export domain event types
type DatasetLoadedEvent = domain.DatasetLoadedEvent
type DatasetLoadFailedEvent = domain.DatasetLoadFailedEvent
type DatasetReplacedEvent = domain.DatasetReplacedEvent
type SortChangedEvent = domain.SortChangedEvent
type ColumnResizedEvent = domain.ColumnResizedEvent
type WindowRecomputedEvent = domain.WindowRecomputedEvent
type GeometryChangedEvent = domain.GeometryChangedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigChangedEvent = domain.ConfigChangedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

// subscription pairs a handler with a stable id so unsubscribing removes
// exactly this handler, regardless of how the slice has shifted since
type subscription struct {
	id      int
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    int
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventWindowRecomputed:
		// Recomputed on every scroll tick, too frequent to log
	default:
		log.Printf("EventBus: publishing %s", event.Type())
	}

	select {
	case b.eventChan <- event:
	default:
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, sub := range subs {
			if sub.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Close stops the dispatcher and discards queued events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers. Handlers run
// sequentially so subscribers observe events in publish order.
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, sub := range subs {
				b.invoke(sub.handler, event)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// invoke calls a handler, recovering from panics so one bad subscriber
// cannot take down the dispatcher
func (b *bus) invoke(handler EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	handler(event)
}
