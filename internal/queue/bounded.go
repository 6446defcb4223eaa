// Package queue provides a bounded, blocking FIFO built on
// github.com/gammazero/deque, used wherever an actor needs a producer to
// back off instead of a plain Go channel (e.g. a queue whose items are
// consumed in batches, or whose length we want to inspect for metrics).
package queue

import (
	"sync"

	"github.com/gammazero/deque"
)

// Bounded is a FIFO of capacity Cap. Push blocks while the queue is full;
// Pop blocks while it is empty. Close unblocks every waiter; Push returns
// false once closed, and Pop returns (nil, false) once closed and drained.
type Bounded struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	dq       deque.Deque
	cap      int
	closed   bool
}

// NewBounded returns a Bounded queue holding at most capacity items.
func NewBounded(capacity int) *Bounded {
	b := &Bounded{cap: capacity}
	b.notEmpty = sync.NewCond(&b.mu)
	b.notFull = sync.NewCond(&b.mu)
	return b
}

// Push waits for room then appends v. Reports false if the queue was
// closed before room became available.
func (b *Bounded) Push(v interface{}) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.dq.Len() >= b.cap && !b.closed {
		b.notFull.Wait()
	}
	if b.closed {
		return false
	}
	b.dq.PushBack(v)
	b.notEmpty.Signal()
	return true
}

// Pop waits for an item then removes and returns it. Reports false once
// the queue is closed and empty.
func (b *Bounded) Pop() (interface{}, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.dq.Len() == 0 && !b.closed {
		b.notEmpty.Wait()
	}
	if b.dq.Len() == 0 {
		return nil, false
	}
	v := b.dq.PopFront()
	b.notFull.Signal()
	return v, true
}

// Len reports the current number of queued items.
func (b *Bounded) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dq.Len()
}

// Close wakes every blocked Push/Pop. Already-queued items remain
// poppable; Pop returns false only once the queue has drained.
func (b *Bounded) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.notEmpty.Broadcast()
	b.notFull.Broadcast()
}
