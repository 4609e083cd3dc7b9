package elastic

import (
	"sync/atomic"
	"testing"
)

func TestPool_Calibrate(t *testing.T) {
	pool := NewPool()
	for i := 0; i <= calibrateCallsThreshold; i++ {
		buf, err := pool.Get(128, 1)
		if err != nil {
			t.Fatal(err)
		}
		pool.Put(buf)
	}
	// every put landed in the 128 byte class
	if got := atomic.LoadUint64(&pool.maxSize); got != 4*128 {
		t.Fatalf("max size = %d, want %d", got, 4*128)
	}
	for i := range pool.calls {
		if calls := atomic.LoadUint64(&pool.calls[i]); calls != 0 {
			t.Fatalf("class %d kept %d calls after calibration", i, calls)
		}
	}

	kept, err := pool.Get(512, 1)
	if err != nil {
		t.Fatal(err)
	}
	pool.Put(kept)
	if kept.Allocated() != 512 {
		t.Fatalf("allocated = %d, want 512 kept", kept.Allocated())
	}
	if kept.Size() != 0 {
		t.Fatalf("size = %d, want a reset buffer", kept.Size())
	}

	oversized, err := pool.Get(1024, 1)
	if err != nil {
		t.Fatal(err)
	}
	pool.Put(oversized)
	if oversized.Allocated() != 0 {
		t.Fatalf("allocated = %d, want the oversized buffer freed", oversized.Allocated())
	}
}

func TestPool_Index(t *testing.T) {
	pool := NewPool()
	cases := []struct {
		n     int
		ceil  int
		floor int
	}{
		{n: 1, ceil: 0, floor: 0},
		{n: 64, ceil: 0, floor: 0},
		{n: 65, ceil: 1, floor: 0},
		{n: 128, ceil: 1, floor: 1},
		{n: 200, ceil: 2, floor: 1},
		{n: maxSize, ceil: steps - 1, floor: steps - 1},
		{n: maxSize * 2, ceil: steps - 1, floor: steps - 1},
	}
	for _, c := range cases {
		if got := pool.ceilIndex(c.n); got != c.ceil {
			t.Errorf("ceilIndex(%d) = %d, want %d", c.n, got, c.ceil)
		}
		if got := pool.floorIndex(c.n); got != c.floor {
			t.Errorf("floorIndex(%d) = %d, want %d", c.n, got, c.floor)
		}
	}
}
