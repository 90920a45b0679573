package ecs

// EventKind names what happened during a tick.
type EventKind string

const (
	EventLapCompleted   EventKind = "lap_completed"
	EventRouteReplanned EventKind = "route_replanned"
	EventRouteBlocked   EventKind = "route_blocked"
	EventRaceWon        EventKind = "race_won"
)

// Event is produced by one system and read by later systems in the same tick.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// EventQueue is a FIFO cleared at the start of every tick.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns this tick's events without consuming them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Of returns this tick's events of one kind.
func (q *EventQueue) Of(kind EventKind) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Kind == kind {
			out = append(out, evt)
		}
	}
	return out
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
