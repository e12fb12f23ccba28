package service

import (
	"sync"
	"testing"
)

func TestQueue_PushDrainOrder(t *testing.T) {
	var q Queue[int]

	q.Push(1)
	q.Push(2)
	q.Push(3)
	if got := q.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	got := q.Drain()
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("Drain() = %v, want [1 2 3]", got)
	}
	if got := q.Drain(); len(got) != 0 {
		t.Fatalf("second Drain() = %v, want empty", got)
	}
	if got := q.Len(); got != 0 {
		t.Fatalf("Len() after drain = %d, want 0", got)
	}
}

func TestQueue_ConcurrentPush(t *testing.T) {
	var q Queue[int]
	var wg sync.WaitGroup

	const producers = 4
	const perProducer = 100
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				q.Push(j)
			}
		}()
	}
	wg.Wait()

	if got := len(q.Drain()); got != producers*perProducer {
		t.Fatalf("Drain() returned %d messages, want %d", got, producers*perProducer)
	}
}
