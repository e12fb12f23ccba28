package service

import "sync"

// Queue is an unbounded multi-producer message queue drained by the
// single update funnel. Push is safe from command goroutines; Drain is
// called only by the owning service's Update.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
}

// Push appends msg to the queue.
func (q *Queue[T]) Push(msg T) {
	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()
}

// Drain removes and returns all queued messages in push order.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

// Len reports how many messages are queued.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
