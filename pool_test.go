package elastic_test

import (
	"github.com/brickingsoft/elastic"
	"github.com/brickingsoft/elastic/pkg/allocator"
	"testing"
)

func TestPool(t *testing.T) {
	o := &countingObserver{}
	pool := elastic.NewPool(elastic.WithObserver(o))

	buf, err := pool.Get(128, 1)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Len(1) != 128 {
		t.Fatalf("len = %d, want 128", buf.Len(1))
	}
	pool.Put(buf)

	buf, err = pool.Get(100, 1)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Len(1) != 100 {
		t.Fatalf("len = %d, want 100", buf.Len(1))
	}
	// a reused buffer must not need a reallocation, a fresh one needs exactly one
	if o.reallocations > 2 {
		t.Fatalf("reallocations = %d", o.reallocations)
	}
	t.Log("reallocations", o.reallocations, "allocated", buf.Allocated())
	pool.Put(buf)

	pool.Put(nil)
	released, err := elastic.New(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	released.Free()
	pool.Put(released)
}

func TestPool_Small(t *testing.T) {
	buf, err := elastic.Acquire(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Allocated() != 16 {
		t.Fatalf("allocated = %d, want 16", buf.Allocated())
	}
	// below the smallest class, freed instead of pooled
	elastic.Release(buf)
	if buf.Allocated() != 0 {
		t.Fatalf("allocated = %d after release, want 0", buf.Allocated())
	}
}

func TestPool_Put_Foreign(t *testing.T) {
	limited := allocator.NewLimited(allocator.Heap{}, 1024)
	foreign, err := elastic.New(128, 1, elastic.WithAllocator(limited))
	if err != nil {
		t.Fatal(err)
	}
	elastic.Release(foreign)
	if foreign.Allocated() != 0 {
		t.Fatalf("allocated = %d after release, want 0", foreign.Allocated())
	}
	if limited.InUse() != 0 {
		t.Fatalf("in use = %d after release, want 0", limited.InUse())
	}

	buf, err := elastic.Acquire(100, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer elastic.Release(buf)
	if buf == foreign {
		t.Fatal("acquired a buffer built with another allocator")
	}
	if err = buf.Resize(2048, 1); err != nil {
		t.Fatal(err)
	}
}

func TestPool_Put_OtherPool(t *testing.T) {
	a := elastic.NewPool()
	b := elastic.NewPool()
	buf, err := a.Get(128, 1)
	if err != nil {
		t.Fatal(err)
	}
	b.Put(buf)
	if buf.Allocated() != 0 {
		t.Fatalf("allocated = %d after put to another pool, want 0", buf.Allocated())
	}
}

func TestPool_Overflow(t *testing.T) {
	if _, err := elastic.Acquire(1<<62, 4); !elastic.IsOverflow(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func BenchmarkPool(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf, err := elastic.Acquire(512, 8)
		if err != nil {
			b.Fatal(err)
		}
		elastic.Release(buf)
	}
}
