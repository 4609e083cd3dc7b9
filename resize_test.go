package elastic

import (
	"math"
	"testing"
)

func TestNextAllocation(t *testing.T) {
	cases := []struct {
		alloc, nsize, want int
	}{
		{0, 0, 0},
		{0, 5, 5},
		{4, 5, 8},
		{4, 20, 20},
		{8, 8, 8},
		{8, 2, 8},
		{9, 2, 4},
		{100, 0, 0},
		{100, 1, 2},
		{100, 25, 100},
		{100, 24, 48},
		{math.MaxInt/2 + 1, math.MaxInt, math.MaxInt},
		{math.MaxInt, math.MaxInt / 4, math.MaxInt / 4 * 2},
		{math.MaxInt, math.MaxInt/4 + 1, math.MaxInt},
	}
	for _, c := range cases {
		if got := nextAllocation(c.alloc, c.nsize); got != c.want {
			t.Errorf("nextAllocation(%d, %d) = %d, want %d", c.alloc, c.nsize, got, c.want)
		}
	}
}

func TestBuffer_resize_Release(t *testing.T) {
	buf, err := New(16, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err = buf.resize(0); err != nil {
		t.Fatal(err)
	}
	if buf.b != nil || buf.alloc != 0 || buf.size != 0 {
		t.Fatalf("storage kept: alloc = %d, size = %d", buf.alloc, buf.size)
	}
}
