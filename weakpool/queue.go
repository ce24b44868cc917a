package weakpool

import (
	"sync"

	"github.com/eapache/queue"
)

// reclaimQueue receives handles from runtime cleanups. Cleanups may run in
// parallel on runtime goroutines, so the ring buffer is guarded by its own
// mutex, never held while the pool mutex is being acquired.
type reclaimQueue[T any] struct {
	mutex *sync.Mutex
	items *queue.Queue
}

func newReclaimQueue[T any]() *reclaimQueue[T] {
	return &reclaimQueue[T]{
		mutex: &sync.Mutex{},
		items: queue.New(),
	}
}

// Enqueue is the cleanup function registered for every tracked object.
func (q *reclaimQueue[T]) Enqueue(h *handle[T]) {
	q.mutex.Lock()
	q.items.Add(h)
	q.mutex.Unlock()
}

// Dequeue never blocks; ok is false when nothing is pending.
func (q *reclaimQueue[T]) Dequeue() (h *handle[T], ok bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.items.Length() == 0 {
		return nil, false
	}
	return q.items.Remove().(*handle[T]), true
}

func (q *reclaimQueue[T]) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.items.Length()
}
