package huff

import (
	"math/rand"
	"testing"
)

func TestFrequenciesSmall(t *testing.T) {
	ft := ComputeFrequencies([]uint8("aaaab"), nil)
	if len(ft) != 2 || ft[0] != (FreqEntry{'a', 4}) || ft[1] != (FreqEntry{'b', 1}) {
		t.Fatalf("Bad table for aaaab: %v", ft)
	}
}

func TestFrequenciesTies(t *testing.T) {
	ft := ComputeFrequencies([]uint8("zyxzyxq"), nil)
	expected := FreqTable{{'x', 2}, {'y', 2}, {'z', 2}, {'q', 1}}
	if len(ft) != len(expected) {
		t.Fatalf("Bad table length %d, expected %d", len(ft), len(expected))
	}
	for i := range expected {
		if ft[i] != expected[i] {
			t.Fatalf("Entry %d is %v, expected %v", i, ft[i], expected[i])
		}
	}
}

func TestFrequenciesEmpty(t *testing.T) {
	if ft := ComputeFrequencies(nil, nil); len(ft) != 0 {
		t.Fatalf("Expected empty table, got %v", ft)
	}
}

func TestFrequenciesOrdering(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	scratch := make(FreqTable, 256)
	for _, size := range []int{1, 2, 17, 1000, BlockSize} {
		input := skewedBytes(r, size)
		ft := ComputeFrequencies(input, scratch)
		if len(ft) < 1 || len(ft) > 256 {
			t.Fatalf("Table has %d entries", len(ft))
		}
		for i, e := range ft {
			if e.Count == 0 {
				t.Fatalf("Zero count at entry %d", i)
			}
			if i > 0 && !(ft[i-1].Count > e.Count || ft[i-1].Count == e.Count && ft[i-1].Symbol < e.Symbol) {
				t.Fatalf("Entries %d and %d out of order: %v %v", i-1, i, ft[i-1], e)
			}
		}
		if ft.Total() != uint64(size) {
			t.Fatalf("Counts sum to %d, expected %d", ft.Total(), size)
		}
	}
}

// Bytes with a roughly exponential distribution over a small alphabet, which
// compresses well.

func skewedBytes(r *rand.Rand, n int) []uint8 {
	bs := make([]uint8, n)
	for i := range bs {
		v := r.ExpFloat64() * 6
		if v > 60 {
			v = 60
		}
		bs[i] = uint8('0' + int(v))
	}
	return bs
}
