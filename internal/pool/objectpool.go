package pool

import "sync"

// ObjectPool is a bounded LIFO of reusable objects. Unlike sync.Pool, it never drops
// objects on GC, and never keeps more than the queue size. Safe for concurrent use.
type ObjectPool[T any] struct {
	mu    sync.Mutex
	queue []T
	newFn func() T
}

// NewObjectPool returns a pool keeping at most queueSize idle objects. newFn constructs
// an object when there's no idle one.
func NewObjectPool[T any](queueSize int, newFn func() T) *ObjectPool[T] {
	return &ObjectPool[T]{
		queue: make([]T, 0, queueSize),
		newFn: newFn,
	}
}

func (o *ObjectPool[T]) Acquire() T {
	o.mu.Lock()
	if len(o.queue) != 0 {
		obj := o.queue[len(o.queue)-1]
		o.queue = o.queue[:len(o.queue)-1]
		o.mu.Unlock()
		return obj
	}
	o.mu.Unlock()

	return o.newFn()
}

// Release returns the object into the pool. If the pool is full, the object is dropped.
func (o *ObjectPool[T]) Release(obj T) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.queue) == cap(o.queue) {
		return
	}

	o.queue = append(o.queue, obj)
}

// Idle returns the number of objects waiting in the pool.
func (o *ObjectPool[T]) Idle() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.queue)
}
