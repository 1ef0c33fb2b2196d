package huff

import (
	"fmt"

	"github.com/lars-t-hansen/huffer/heaps"
)

// The branches are either both nil or both not nil.  If not nil then this is an
// interior node and val is invalid, otherwise it's a leaf.

type Tree struct {
	zero, one *Tree
	val       uint8
}

func (t *Tree) IsLeaf() bool { return t.zero == nil }

// Symbol is only meaningful for a leaf.
func (t *Tree) Symbol() uint8 { return t.val }

func (t *Tree) Zero() *Tree { return t.zero }
func (t *Tree) One() *Tree  { return t.one }

var errEmptyTable = huffError("Can't build a Huffman tree from an empty frequency table")

// BuildTree builds a tree from a frequency table sorted in descending order by
// frequency, for non-zero frequencies only.
//
// The queue is a max-heap, so weights are negated counts: the greatest element
// is the least frequent one.  Leaves are inserted in table order, so among
// equal counts the lower byte value is extracted first.  The first of the two
// extracted elements becomes the zero branch.

func BuildTree(ft FreqTable) (*Tree, error) {
	if len(ft) == 0 {
		return nil, errEmptyTable
	}
	q := heaps.NewPriorityQueue[*Tree](len(ft))
	for _, e := range ft {
		q.Insert(-int64(e.Count), &Tree{val: e.Symbol})
	}
	for q.Len() > 1 {
		a, wa, err := q.ExtractMax()
		if err != nil {
			return nil, fmt.Errorf("building Huffman tree: %w", err)
		}
		b, wb, err := q.ExtractMax()
		if err != nil {
			return nil, fmt.Errorf("building Huffman tree: %w", err)
		}
		q.Insert(wa+wb, &Tree{zero: a, one: b})
	}
	root, _, err := q.ExtractMax()
	if err != nil {
		return nil, fmt.Errorf("building Huffman tree: %w", err)
	}
	return root, nil
}
