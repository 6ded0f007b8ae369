package threadpool

import "sync"

const initialQueueCapacity = 64

// jobQueue is the unbounded FIFO queue shared by all workers.
//
// Producers append under the lock and never block; the circular buffer
// doubles when full. Consumers park on the cond until a job or closure
// arrives. Close rejects new pushes immediately, but Pop keeps handing out
// buffered jobs until the queue is empty, so no accepted job is lost.
type jobQueue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond

	buf        []Job // circular buffer
	head, tail int
	size       int

	closed bool
}

func newJobQueue(capacity int) *jobQueue {
	if capacity <= 0 {
		capacity = initialQueueCapacity
	}
	q := &jobQueue{buf: make([]Job, capacity)}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Push inserts a job at the tail. It returns false once the queue is
// closed, without touching the buffer.
func (q *jobQueue) Push(j Job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[q.tail] = j
	q.tail++
	if q.tail == len(q.buf) {
		q.tail = 0
	}
	q.size++
	q.notEmpty.Signal()
	return true
}

// Pop removes and returns the oldest job, blocking while the queue is
// empty and still open. It returns false only after Close, once every
// buffered job has been handed out.
func (q *jobQueue) Pop() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.size == 0 {
		if q.closed {
			return nil, false
		}
		q.notEmpty.Wait()
	}
	j := q.buf[q.head]
	q.buf[q.head] = nil
	q.head++
	if q.head == len(q.buf) {
		q.head = 0
	}
	q.size--
	return j, true
}

// Close marks end-of-stream and wakes every parked consumer.
func (q *jobQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.notEmpty.Broadcast()
}

// Len returns the number of jobs currently buffered.
func (q *jobQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// grow doubles the buffer, unrolling the ring so head restarts at zero.
func (q *jobQueue) grow() {
	next := make([]Job, len(q.buf)*2)
	n := copy(next, q.buf[q.head:])
	copy(next[n:], q.buf[:q.head])
	q.buf = next
	q.head = 0
	q.tail = q.size
}
