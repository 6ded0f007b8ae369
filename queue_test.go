package threadpool

import (
	"testing"
	"time"
)

func TestQueueFIFO(t *testing.T) {
	q := newJobQueue(4)

	var got []int
	for i := 0; i < 10; i++ {
		i := i
		if ok := q.Push(func() { got = append(got, i) }); !ok {
			t.Fatalf("push %d rejected on open queue", i)
		}
	}
	if q.Len() != 10 {
		t.Fatalf("len = %d; want 10", q.Len())
	}

	for i := 0; i < 10; i++ {
		j, ok := q.Pop()
		if !ok {
			t.Fatalf("pop %d: queue reported closed", i)
		}
		j()
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("popped %d at position %d; want FIFO order", v, i)
		}
	}
}

func TestQueueGrowsPastInitialCapacity(t *testing.T) {
	q := newJobQueue(2)

	// Interleave a few pops so head is offset when the ring unrolls.
	executed := 0
	for i := 0; i < 3; i++ {
		q.Push(func() { executed++ })
	}
	if j, ok := q.Pop(); ok {
		j()
	}
	for i := 0; i < 100; i++ {
		q.Push(func() { executed++ })
	}

	q.Close()
	for {
		j, ok := q.Pop()
		if !ok {
			break
		}
		j()
	}
	if executed != 103 {
		t.Fatalf("executed %d jobs; want 103", executed)
	}
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := newJobQueue(0)

	done := make(chan struct{})
	go func() {
		if j, ok := q.Pop(); ok {
			j()
		}
	}()

	time.Sleep(20 * time.Millisecond)
	q.Push(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("blocked consumer never received the pushed job")
	}
}

func TestQueueCloseDrainsBeforeEndOfStream(t *testing.T) {
	q := newJobQueue(0)

	for i := 0; i < 3; i++ {
		q.Push(func() {})
	}
	q.Close()

	if ok := q.Push(func() {}); ok {
		t.Fatal("push accepted after close")
	}

	for i := 0; i < 3; i++ {
		if _, ok := q.Pop(); !ok {
			t.Fatalf("pop %d: closed before buffered jobs drained", i)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("pop returned a job from a drained, closed queue")
	}
}

func TestQueueCloseWakesBlockedConsumers(t *testing.T) {
	q := newJobQueue(0)

	released := make(chan struct{})
	go func() {
		_, ok := q.Pop()
		if !ok {
			close(released)
		}
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("blocked consumer not released by close")
	}
}
