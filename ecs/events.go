package ecs

import "github.com/milk9111/jigsaw/puzzle"

// EventType names the lifecycle events scripts can hook.
type EventType string

const (
	EventInit    EventType = "init"
	EventDestroy EventType = "destroy"
	EventResolve EventType = "resolve"
	EventMerge   EventType = "merge"
	EventShuffle EventType = "shuffle"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// MergeEvent is emitted after a released node snapped to a neighbour.
type MergeEvent struct {
	Node     string
	Neighbor string
	Kind     puzzle.MergeKind
	Group    string
	// Size is the number of pieces in the resulting group.
	Size int
}

// ResolveEvent is emitted when the puzzle is complete.
type ResolveEvent struct {
	Forced bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Items returns the pending events without consuming them. Several systems
// may observe the same frame's events this way.
func (q *EventQueue) Items() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
