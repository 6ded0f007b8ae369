package threadpool

import "testing"

func TestFillDefaults(t *testing.T) {
	var o Options
	o.FillDefaults()

	if o.QueueCapacity <= 0 {
		t.Fatal("expected QueueCapacity to be set by FillDefaults")
	}
	if o.Metrics == nil {
		t.Fatal("expected Metrics to be set by FillDefaults")
	}
}
