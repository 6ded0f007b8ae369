// Package threadpool provides a fixed-size pool of workers executing
// one-shot jobs from a shared unbounded FIFO queue.
//
// Design
//
// The pool is deliberately small and predictable:
//
//   - A fixed set of workers is spawned eagerly at construction.
//   - Jobs are plain func() values, run exactly once by exactly one worker.
//   - Submission never blocks; the queue grows to absorb backlog.
//   - Jobs leave the queue in FIFO order. Completion order across workers
//     is not guaranteed, since jobs run concurrently.
//
// Teardown
//
// Stop (or the context-aware Shutdown) closes the queue and joins workers
// in creation order. Workers observe end-of-stream only after the queue
// drains, so every accepted job runs before Stop returns.
//
// Failure model
//
// A panicking job costs the pool one worker: the panic is logged and
// reported through the optional PanicHandler, then the worker exits and is
// not replaced. Pool capacity can therefore degrade over its lifetime.
// Submitting after shutdown has begun fails with ErrPoolClosed.
//
// Metrics
//
// Queueing and execution activity is reported through the MetricsPolicy
// interface. AtomicMetrics keeps counters in memory, NoopMetrics discards
// everything, and PromMetrics exports them as Prometheus collectors.
package threadpool
