package huff

import (
	"math/rand"
	"testing"
)

func TestDictionaryTwoLeaves(t *testing.T) {
	tree, _ := BuildTree(FreqTable{{'a', 4}, {'b', 1}})
	dict := NewDictionary()
	if !BuildDictionary(tree, dict) {
		t.Fatalf("Dictionary refused")
	}
	if dict['a'] != (Code{Bits: 1, Width: 1}) || dict['b'] != (Code{Bits: 0, Width: 1}) {
		t.Fatalf("Bad codes a=%v b=%v", dict['a'], dict['b'])
	}
	for i, e := range dict {
		if i != 'a' && i != 'b' && e.Width != 0 {
			t.Fatalf("Value %d has a code", i)
		}
	}
	if s := dict.String(); s != `('a' 1) ('b' 0) ` {
		t.Fatalf("Bad dictionary string %q", s)
	}
}

func TestDictionarySingleLeaf(t *testing.T) {
	tree, _ := BuildTree(FreqTable{{'z', 65536}})
	dict := NewDictionary()
	dict['q'] = Code{Bits: 3, Width: 2}
	if !BuildDictionary(tree, dict) {
		t.Fatalf("Dictionary refused for a single leaf")
	}
	if dict['z'].Width != 0 || dict['q'].Width != 0 {
		t.Fatalf("Expected zero widths, got z=%v q=%v", dict['z'], dict['q'])
	}
}

// Codes are written low bit first, so code a is a prefix of code b if the low
// bits of b equal a.

func TestDictionaryPrefixFree(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	ft := ComputeFrequencies(skewedBytes(r, 20000), nil)
	tree, _ := BuildTree(ft)
	dict := NewDictionary()
	if !BuildDictionary(tree, dict) {
		t.Fatalf("Dictionary refused")
	}
	for _, x := range ft {
		a := dict[x.Symbol]
		if a.Width == 0 || a.Width > MaxCodeWidth {
			t.Fatalf("Value %d has width %d", x.Symbol, a.Width)
		}
		for _, y := range ft {
			b := dict[y.Symbol]
			if x.Symbol == y.Symbol || a.Width > b.Width {
				continue
			}
			if b.Bits&((1<<a.Width)-1) == a.Bits {
				t.Fatalf("Code for %d is a prefix of code for %d", x.Symbol, y.Symbol)
			}
		}
	}
}

// A comb with leaves at depths 1..depth, the last level having two leaves.

func combTree(depth int) *Tree {
	t := &Tree{val: 0}
	for i := 1; i <= depth; i++ {
		t = &Tree{zero: &Tree{val: uint8(i)}, one: t}
	}
	return t
}

func TestDictionaryWidthLimit(t *testing.T) {
	dict := NewDictionary()
	if !BuildDictionary(combTree(MaxCodeWidth), dict) {
		t.Fatalf("Dictionary refused a tree of depth %d", MaxCodeWidth)
	}
	if dict[0].Width != MaxCodeWidth || dict[0].Bits != (1<<MaxCodeWidth)-1 {
		t.Fatalf("Deepest code is %v", dict[0])
	}
	if BuildDictionary(combTree(MaxCodeWidth+1), dict) {
		t.Fatalf("Dictionary accepted a tree of depth %d", MaxCodeWidth+1)
	}
}
