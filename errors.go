package threadpool

import "errors"

var (
	// ErrPoolSize is returned by New when size is not positive.
	ErrPoolSize = errors.New("threadpool: size must be positive")

	// ErrPoolClosed is returned by Execute once shutdown has begun.
	ErrPoolClosed = errors.New("threadpool: pool closed")
)

// reportPanic forwards a job panic to the optional user handler.
// If no handler is registered, the loss is only logged by the worker.
func (p *Pool) reportPanic(workerID int, r any) {
	if p.opts.PanicHandler != nil {
		p.opts.PanicHandler(workerID, r)
	}
}
