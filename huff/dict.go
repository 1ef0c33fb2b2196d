package huff

import (
	"fmt"
	"strings"
)

// MaxCodeWidth bounds the code length so that the packer's 64-bit window always
// has room for one more code on top of a partially filled byte.
const MaxCodeWidth = 56

// The bit string in a code is stored with bits higher in the tree toward the
// least significant bits, because that is how the decoder wants to use them:
// it masks off the low bit to branch left or right, then shifts in the higher
// bits.

type Code struct {
	Bits  uint64
	Width int
}

// The encoding dictionary is an array mapping byte values to bit strings; only
// the entries representing values that have been found in the input have
// non-zero width.  The dictionary always has length 256 though.  The exception
// is a block with a single distinct value, whose tree is a lone leaf: that
// value gets a zero-width code and costs nothing to encode.

type Dictionary []Code

func NewDictionary() Dictionary {
	return make(Dictionary, 256)
}

func (d Dictionary) String() string {
	var sb strings.Builder
	for i, e := range d {
		if e.Width > 0 {
			bits := fmt.Sprintf("%b", e.Bits+(1<<MaxCodeWidth))[MaxCodeWidth+1-e.Width : MaxCodeWidth+1]
			fmt.Fprintf(&sb, "(%q %s) ", rune(i), bits)
		}
	}
	return sb.String()
}

// BuildDictionary fills `dict` with the codes for the leaves of `tree`.  It
// returns false if some code would be wider than MaxCodeWidth, in which case the
// contents of `dict` are unspecified.

func BuildDictionary(tree *Tree, dict Dictionary) bool {
	for i := range dict {
		dict[i] = Code{}
	}
	return populateDictionary(0, 0, tree, dict)
}

func populateDictionary(width int, bits uint64, tree *Tree, dict Dictionary) bool {
	if tree.IsLeaf() {
		dict[tree.val] = Code{Bits: bits, Width: width}
		return true
	}
	if width == MaxCodeWidth {
		return false
	}
	return populateDictionary(width+1, bits, tree.zero, dict) &&
		populateDictionary(width+1, (1<<width)|bits, tree.one, dict)
}
