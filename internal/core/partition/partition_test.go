package partition

import (
	"strconv"
	"testing"
)

func TestFor_Determinism(t *testing.T) {
	// Same input must always produce the same partition.
	id := For("device-abc")
	for i := 0; i < 100; i++ {
		if got := For("device-abc"); got != id {
			t.Fatalf("For(\"device-abc\") = %d on iteration %d, want %d", got, i, id)
		}
	}
}

func TestFor_Range(t *testing.T) {
	inputs := []string{"", "a", "device-1", "device-2", "very-long-device-id-that-should-still-hash-correctly"}
	for _, s := range inputs {
		p := For(s)
		if p < 0 || p >= Count {
			t.Errorf("For(%q) = %d, want [0, %d)", s, p, Count)
		}
	}
}

func TestFor_Distribution(t *testing.T) {
	// 1000 devices over 256 buckets should touch ~248; 100 is a loose floor.
	seen := make(map[int]struct{})
	for i := 0; i < 1000; i++ {
		seen[For("device-"+strconv.Itoa(i))] = struct{}{}
	}
	if len(seen) < 100 {
		t.Errorf("only %d distinct partitions from 1000 inputs, want >= 100", len(seen))
	}
}

func TestShard(t *testing.T) {
	for _, n := range []int{1, 3, 8} {
		counts := make([]int, n)
		for i := 0; i < 500; i++ {
			id := "device-" + strconv.Itoa(i)
			s := Shard(id, n)
			if s < 0 || s >= n {
				t.Fatalf("Shard(%q, %d) = %d, out of range", id, n, s)
			}
			if s != Shard(id, n) {
				t.Fatalf("Shard(%q, %d) not stable", id, n)
			}
			counts[s]++
		}
		for i, c := range counts {
			if c == 0 {
				t.Errorf("shard %d of %d received no devices", i, n)
			}
		}
	}
}
