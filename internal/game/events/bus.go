package events

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type funcHandler struct {
	id      string
	handler EventHandler
}

// EventBus is a synchronous event bus implementation
type EventBus struct {
	subscribers  map[string]Subscriber
	funcHandlers map[string][]funcHandler
	mu           sync.RWMutex
	logger       zerolog.Logger
}

var _ Bus = (*EventBus)(nil)

// NewEventBus creates a new event bus instance
func NewEventBus() *EventBus {
	return NewEventBusWithLogger(log.Logger)
}

// NewEventBusWithLogger creates an event bus that logs through logger
func NewEventBusWithLogger(logger zerolog.Logger) *EventBus {
	return &EventBus{
		subscribers:  make(map[string]Subscriber),
		funcHandlers: make(map[string][]funcHandler),
		logger:       logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a new subscriber to the event bus
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers[subscriber.ID()] = subscriber
	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber from the event bus
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	delete(eb.subscribers, subscriberID)
	eb.logger.Debug().
		Str("subscriber_id", subscriberID).
		Msg("Subscriber removed from event bus")
}

// SubscribeFunc adds a function handler for specific event types and
// returns an ID for UnsubscribeFunc.
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	handlerID := eventType + "/" + uuid.NewString()
	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], funcHandler{id: handlerID, handler: handler})

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", handlerID).
		Msg("Function handler added to event bus")

	return handlerID
}

// UnsubscribeFunc removes the function handler registered under handlerID
func (eb *EventBus) UnsubscribeFunc(handlerID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for eventType, handlers := range eb.funcHandlers {
		for i, h := range handlers {
			if h.id != handlerID {
				continue
			}
			eb.funcHandlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			if len(eb.funcHandlers[eventType]) == 0 {
				delete(eb.funcHandlers, eventType)
			}
			eb.logger.Debug().
				Str("event_type", eventType).
				Str("handler_id", handlerID).
				Msg("Function handler removed from event bus")
			return
		}
	}
}

// Publish sends an event to all interested subscribers synchronously
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	eventType := event.Type()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Msg("Publishing event")

	// Notify object subscribers
	for id, subscriber := range eb.subscribers {
		if subscriber.InterestedIn(eventType) {
			// Run synchronously but catch panics to prevent one subscriber from breaking others
			func() {
				defer func() {
					if r := recover(); r != nil {
						eb.logger.Error().
							Str("subscriber_id", id).
							Str("event_type", eventType).
							Interface("panic", r).
							Msg("Subscriber panicked while handling event")
					}
				}()
				subscriber.HandleEvent(event)
			}()
		}
	}

	// Notify function handlers
	for _, h := range eb.funcHandlers[eventType] {
		func() {
			defer func() {
				if r := recover(); r != nil {
					eb.logger.Error().
						Str("event_type", eventType).
						Str("handler_id", h.id).
						Interface("panic", r).
						Msg("Function handler panicked while handling event")
				}
			}()
			h.handler(event)
		}()
	}
}

// GetSubscriberCount returns the number of subscribers for debugging
func (eb *EventBus) GetSubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// GetFuncHandlerCount returns the number of function handlers for a specific event type
func (eb *EventBus) GetFuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.funcHandlers[eventType])
}
