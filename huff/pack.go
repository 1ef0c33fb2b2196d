package huff

import "fmt"

// PackBlock processes the block and emits bits into the output block.  The bits
// are output by inserting them into a sliding window above the bits previously
// output and then writing eight bits at a time to the output.  There are always
// zeroes in the window above the pending bits, so the last partial byte, if any,
// is filled with zeroes in the high bits.  If the output block fills up we
// return failure; the input should be stored uncompressed.
//
// Returns nil for overflow and output[:N] for N output bytes.

func PackBlock(dict Dictionary, input []uint8, output []uint8) []uint8 {
	outptr := 0
	limit := len(output)
	window := uint64(0)
	width := 0
	for _, b := range input {
		e := dict[b]
		window |= e.Bits << width
		width += e.Width
		for width >= 8 {
			if outptr == limit {
				return nil
			}
			output[outptr] = uint8(window & 255)
			outptr++
			window >>= 8
			width -= 8
		}
	}
	if width > 0 {
		if outptr == limit {
			return nil
		}
		output[outptr] = uint8(window & 255)
		outptr++
	}
	return output[:outptr]
}

// UnpackBlock walks `tree` from the root for each of `count` symbols, consuming
// one bit of `input` per interior node, and writes the symbols to `output`,
// which must have room for `count` bytes.  Input bytes are shifted into the
// window above the pending bits, mirroring PackBlock.
//
// All of `input` must be consumed: the packer never emits a byte it does not
// need, so leftover bytes mean the frame is inconsistent.

func UnpackBlock(tree *Tree, count int, input []uint8, output []uint8) ([]uint8, error) {
	if count > len(output) {
		return nil, fmt.Errorf("%w: %d symbols declared, room for %d", ErrCorrupt, count, len(output))
	}
	inptr := 0
	window := uint64(0)
	width := 0
	for outptr := 0; outptr < count; outptr++ {
		t := tree
		for !t.IsLeaf() {
			if width == 0 {
				if inptr == len(input) {
					return nil, fmt.Errorf("%w: packed data exhausted after %d of %d symbols",
						ErrCorrupt, outptr, count)
				}
				window |= uint64(input[inptr]) << width
				width += 8
				inptr++
			}
			if window&1 == 0 {
				t = t.zero
			} else {
				t = t.one
			}
			window >>= 1
			width--
		}
		output[outptr] = t.val
	}
	if inptr != len(input) {
		return nil, fmt.Errorf("%w: %d unused bytes of packed data", ErrCorrupt, len(input)-inptr)
	}
	return output[:count], nil
}
