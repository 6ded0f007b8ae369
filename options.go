package threadpool

// Options configure a Pool beyond its worker count.
//
// All zero values are replaced with sensible defaults in FillDefaults.
type Options struct {
	// QueueCapacity is the initial capacity of the job queue. The queue
	// itself is unbounded; this only sizes the first allocation.
	QueueCapacity int

	// Metrics receives queueing and execution counters.
	// Defaults to NoopMetrics.
	Metrics MetricsPolicy

	// PanicHandler observes a worker lost to a panicking job. The worker
	// is already gone when the handler runs; the pool does not replace it.
	PanicHandler func(workerID int, recovered any)
}

func (o *Options) FillDefaults() {
	if o.QueueCapacity <= 0 {
		o.QueueCapacity = initialQueueCapacity
	}
	if o.Metrics == nil {
		o.Metrics = &NoopMetrics{}
	}
}
