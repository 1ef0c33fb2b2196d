// Package huff is a block Huffman compressor / decompressor.
//
// Since this started as a programming exercise, it works by reading 64KB
// blocks and compressing them individually; a compressed stream consists of
// independently coded blocks.  We don't care about micro-efficiencies in
// representing the dictionary or in complicated fallback schemes.
//
// A compressed block is represented as
//
//	number of dictionary entries: u16 > 0 (max value is really 256)
//	run of dictionary entries sorted descending by frequency, then ascending by value:
//	  value: u8
//	  frequency: u32 (max value is really 65536)
//	number of encoded bytes: u32 (max value is really 65536)
//	number of bytes used for encoded bytes: u32 (max value 65536)
//	bytes, the number of which is encoded by previous field
//
// An uncompressed block is written when coding does not shrink the block, it
// is represented as
//
//	0: u16
//	number of bytes: u32 (really max 65536)
//	bytes, the number of which is encoded by previous field
//
// All integers are little-endian.  The decoder rebuilds the Huffman tree from
// the frequency table, so tree construction must be deterministic: ties in
// the priority queue are broken by insertion order.
package huff

import (
	"errors"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("huff")

// BlockSize is the largest number of input bytes in one block.
const BlockSize = 65536

// ErrCorrupt is wrapped by every error reporting a malformed compressed stream.
var ErrCorrupt = errors.New("corrupt compressed stream")

type huffError string

func (e huffError) Error() string {
	return string(e)
}
