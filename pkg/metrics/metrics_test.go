package metrics_test

import (
	"github.com/brickingsoft/elastic"
	"github.com/brickingsoft/elastic/pkg/allocator"
	"github.com/brickingsoft/elastic/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"testing"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	buf, err := elastic.New(0, 8, elastic.WithObserver(m))
	if err != nil {
		t.Fatal(err)
	}
	record := make([]byte, 8)
	for i := 0; i < 100; i++ {
		if err = buf.Append(record, 1, 8); err != nil {
			t.Fatal(err)
		}
	}
	buf.Shrink(99, 8)
	buf.Free()

	grows := testutil.ToFloat64(m.Reallocations.WithLabelValues("grow"))
	if grows < 1 || grows > 10 {
		t.Errorf("grow reallocations = %v", grows)
	}
	if shrinks := testutil.ToFloat64(m.Reallocations.WithLabelValues("shrink")); shrinks != 1 {
		t.Errorf("shrink reallocations = %v, want 1", shrinks)
	}
	if released := testutil.ToFloat64(m.ReleasedBytes); released != 16 {
		t.Errorf("released bytes = %v, want 16", released)
	}
	if n := testutil.CollectAndCount(reg); n != 6 {
		t.Errorf("collected %d metrics, want 6", n)
	}
	t.Log("grow", grows)
}

func TestMetrics_Failures(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	buf, err := elastic.New(0, 1,
		elastic.WithObserver(m),
		elastic.WithAllocator(allocator.NewLimited(nil, 4)),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer buf.Free()
	if err = buf.Append([]byte("0123456789"), 10, 1); err == nil {
		t.Fatal("expected quota failure")
	}
	if failures := testutil.ToFloat64(m.ReallocateFailures); failures != 1 {
		t.Errorf("failures = %v, want 1", failures)
	}
}
