package threadpool_test

import (
	"runtime"
	"testing"
	"time"

	tp "github.com/ferranSanchezLlado/threadpool"
)

func newTestPool(t *testing.T, workers int) *tp.Pool {
	t.Helper()

	p, err := tp.New(workers, tp.Options{})
	if err != nil {
		t.Fatalf("New(%d): %v", workers, err)
	}
	return p
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		runtime.Gosched()
	}
	t.Fatal("condition not satisfied before timeout")
}
