package ecs

// EventQueue is a FIFO hand-off between systems within a tick.
type EventQueue[T any] struct {
	items []T
}

// Push appends events in order.
func (q *EventQueue[T]) Push(events ...T) {
	if q == nil {
		return
	}
	q.items = append(q.items, events...)
}

// Drain returns all queued events and clears the queue.
func (q *EventQueue[T]) Drain() []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued events.
func (q *EventQueue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
