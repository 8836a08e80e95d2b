// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Events emitted by the physics core during a tick.
const (
	EngineStateChanged Type = "engine_state_changed"
	RCSStateChanged    Type = "rcs_state_changed"
	LandingSuccess     Type = "landing_success"
	LandingCrash       Type = "landing_crash"
	EpisodeReset       Type = "episode_reset"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler so it can be cancelled later.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registeredHandler struct {
	id uint64
	fn Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registeredHandler
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registeredHandler),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type and returns a
// subscription handle that can cancel it.
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registeredHandler{id: id, fn: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if h.id == id {
			b.handlers[eventType] = append(handlers[:i], handlers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	registered := b.handlers[event.GetType()]
	handlers := make([]registeredHandler, len(registered))
	copy(handlers, registered)
	b.mu.RUnlock()

	for _, h := range handlers {
		h.fn(event)
	}
}

// PublishAll publishes every event produced by a physics tick, in order.
func (b *Bus) PublishAll(events []Event) {
	for _, e := range events {
		b.Publish(e)
	}
}

// Specific event implementations

// EngineEvent reports a main-engine ignition, throttle change, or shutdown.
type EngineEvent struct {
	BaseEvent
	Active   bool
	Throttle float64
}

// NewEngineEvent creates a new engine state event
func NewEngineEvent(source interface{}, active bool, throttle float64) *EngineEvent {
	return &EngineEvent{
		BaseEvent: BaseEvent{
			EventType: EngineStateChanged,
			Source:    source,
		},
		Active:   active,
		Throttle: throttle,
	}
}

// RCSEvent reports reaction-control thruster activity for the tick.
type RCSEvent struct {
	BaseEvent
	Active bool
	Left   bool
	Right  bool
}

// NewRCSEvent creates a new RCS activity event
func NewRCSEvent(source interface{}, left, right bool) *RCSEvent {
	return &RCSEvent{
		BaseEvent: BaseEvent{
			EventType: RCSStateChanged,
			Source:    source,
		},
		Active: left || right,
		Left:   left,
		Right:  right,
	}
}

// LandingEvent reports a successful touchdown.
type LandingEvent struct {
	BaseEvent
	X     float64
	Speed float64
	Angle float64
}

// NewLandingEvent creates a new landing success event
func NewLandingEvent(source interface{}, x, speed, angle float64) *LandingEvent {
	return &LandingEvent{
		BaseEvent: BaseEvent{
			EventType: LandingSuccess,
			Source:    source,
		},
		X:     x,
		Speed: speed,
		Angle: angle,
	}
}

// CrashEvent reports a failed touchdown, listing every failed landing gate.
type CrashEvent struct {
	BaseEvent
	Reasons []string
	X       float64
	Speed   float64
	Angle   float64
}

// NewCrashEvent creates a new crash event
func NewCrashEvent(source interface{}, reasons []string, x, speed, angle float64) *CrashEvent {
	return &CrashEvent{
		BaseEvent: BaseEvent{
			EventType: LandingCrash,
			Source:    source,
		},
		Reasons: reasons,
		X:       x,
		Speed:   speed,
		Angle:   angle,
	}
}
