package threadpool

import (
	"context"
	"sync"
	"sync/atomic"

	lg "github.com/Andrej220/go-utils/zlog"
)

// State tracks the pool through its single-use lifecycle.
// There is no way back to Running once shutdown has begun.
type State int32

const (
	StateUninitialized State = iota
	StateRunning
	StateShuttingDown
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateShuttingDown:
		return "ShuttingDown"
	case StateTerminated:
		return "Terminated"
	default:
		return "Uninitialized"
	}
}

// Job is a one-shot unit of work. The pool runs it exactly once on one of
// its workers and observes no result; a caller that needs one must capture
// a reporting mechanism inside the closure.
type Job func()

// worker is the handle to one long-lived execution goroutine. done is
// closed when the goroutine returns, whatever the reason, so teardown can
// join workers in creation order without wedging on a crashed one.
type worker struct {
	id   int
	done chan struct{}
}

// Pool dispatches jobs to a fixed set of workers contending over a shared
// unbounded FIFO queue. Workers are spawned eagerly by New and live until
// the queue is closed and drained; the pool never grows and, after a job
// panic, never replaces the lost worker (see run).
type Pool struct {
	queue   *jobQueue
	workers []*worker
	opts    Options

	state         atomic.Int32
	activeWorkers atomic.Int32
	liveWorkers   atomic.Int32
	stopOnce      sync.Once
}

// New builds a pool of exactly size workers. Every worker exists and is
// draining the queue before New returns, so no submission can precede the
// consumers. A non-positive size is a configuration error and spawns
// nothing.
func New(size int, opts Options) (*Pool, error) {
	if size <= 0 {
		return nil, ErrPoolSize
	}
	opts.FillDefaults()

	p := &Pool{
		queue:   newJobQueue(opts.QueueCapacity),
		workers: make([]*worker, 0, size),
		opts:    opts,
	}
	for id := 0; id < size; id++ {
		w := &worker{id: id, done: make(chan struct{})}
		p.workers = append(p.workers, w)
		p.liveWorkers.Add(1)
		go p.run(w)
	}
	p.state.Store(int32(StateRunning))

	lg.FromContext(context.Background()).Info("pool started", lg.Int("workers", size))
	return p, nil
}

// Execute enqueues job for exactly-once execution on some worker. It never
// blocks on worker availability; the queue absorbs any backlog. Once
// shutdown has begun it returns ErrPoolClosed and the job is not accepted.
func (p *Pool) Execute(job Job) error {
	if !p.queue.Push(job) {
		return ErrPoolClosed
	}
	p.opts.Metrics.IncQueued()
	return nil
}

// Stop tears the pool down and blocks until it is fully terminated.
// Jobs queued before Stop still run; workers observe end-of-stream only
// after the queue drains. Calling Stop again just waits again.
func (p *Pool) Stop() { _ = p.Shutdown(context.Background()) }

// Shutdown closes the queue and joins every worker in creation order, so
// teardown is reproducible. If ctx expires first it returns ctx.Err();
// the workers keep draining in the background and a later Shutdown call
// can wait for them again.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() {
		p.state.Store(int32(StateShuttingDown))
		p.queue.Close()
	})

	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	p.state.Store(int32(StateTerminated))

	lg.FromContext(ctx).Info("pool terminated", lg.Int("workers", len(p.workers)))
	return nil
}

// run is the worker loop: block on the shared queue, execute, repeat.
// It returns when Pop reports closure, which happens only after every
// buffered job has been handed out.
func (p *Pool) run(w *worker) {
	defer close(w.done)
	defer p.liveWorkers.Add(-1)

	log := lg.FromContext(context.Background()).With(lg.Int("worker", w.id))

	defer func() {
		if r := recover(); r != nil {
			// An unrecovered panic would take down the whole process, not
			// just this worker. Recover converts it into the loss of one
			// worker: log, notify, exit. The pool does not respawn it, so
			// capacity degrades for the rest of the pool's lifetime.
			log.Error("worker lost to job panic", lg.Any("panic", r))
			p.reportPanic(w.id, r)
		}
	}()

	for {
		job, ok := p.queue.Pop()
		if !ok {
			log.Info("worker exiting", lg.Int("queued", p.queue.Len()))
			return
		}
		p.opts.Metrics.DecQueued()

		p.activeWorkers.Add(1)
		func() {
			defer p.activeWorkers.Add(-1)
			job()
		}()
		p.opts.Metrics.IncExecuted()
	}
}

// State reports where the pool is in its lifecycle.
func (p *Pool) State() State { return State(p.state.Load()) }

// Size reports the worker count the pool was built with.
func (p *Pool) Size() int { return len(p.workers) }

// ActiveWorkers reports how many workers are executing a job right now.
func (p *Pool) ActiveWorkers() int32 { return p.activeWorkers.Load() }

// LiveWorkers reports how many workers have not yet exited. It drops below
// Size once jobs start panicking or shutdown begins.
func (p *Pool) LiveWorkers() int32 { return p.liveWorkers.Load() }

// QueueLength reports the number of jobs waiting to be picked up.
func (p *Pool) QueueLength() int { return p.queue.Len() }
