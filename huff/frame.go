package huff

import (
	"errors"
	"fmt"
	"io"

	"github.com/op/go-logging"
)

type FrameKind int

const (
	RawFrame FrameKind = iota
	CodedFrame
)

func (k FrameKind) String() string {
	switch k {
	case RawFrame:
		return "raw"
	case CodedFrame:
		return "coded"
	default:
		return fmt.Sprintf("FrameKind(%d)", int(k))
	}
}

const metasize int = 2 /* freq table size */ +
	256*5 /* freq table max size */ +
	4 /* number of input bytes encoded */ +
	4 /* number of bytes in encoding */

// A Frame is the encoded form of one block: the header (metadata) followed by
// the payload, which is either packed codes or the block itself.

type Frame struct {
	Kind    FrameKind
	Header  []uint8
	Payload []uint8
}

func (f Frame) Len() int {
	return len(f.Header) + len(f.Payload)
}

func (f Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Header)
	total := int64(n)
	if err != nil {
		return total, err
	}
	n, err = w.Write(f.Payload)
	total += int64(n)
	return total, err
}

/////////////////////////////////////////////////////////////////////////////////////
//
// Encoder

// An Encoder owns the scratch storage for encoding blocks; the frames it returns
// share that storage and are valid until the next call to EncodeBlock.

type Encoder struct {
	outputBlock []uint8
	metaBlock   []uint8
	freqBlock   FreqTable
	dict        Dictionary
}

func NewEncoder() *Encoder {
	return &Encoder{
		outputBlock: make([]uint8, BlockSize),
		metaBlock:   make([]uint8, metasize),
		freqBlock:   make(FreqTable, 256),
		dict:        NewDictionary(),
	}
}

// EncodeBlock encodes at most BlockSize bytes of input as one frame.  The block
// is stored raw if it is empty, if its codes would be too wide, or if the packed
// codes would not be smaller than the block itself.

func (e *Encoder) EncodeBlock(input []uint8) Frame {
	if len(input) > BlockSize {
		panic(fmt.Sprintf("Block of %d bytes exceeds the block size", len(input)))
	}
	freq := ComputeFrequencies(input, e.freqBlock)
	encoded, ok := e.compressBlock(input, freq)
	metaloc := 0
	metadata := e.metaBlock
	if ok {
		metaloc = put(metadata, metaloc, 2, uint(len(freq)))
		for _, item := range freq {
			metaloc = put(metadata, metaloc, 1, uint(item.Symbol))
			metaloc = put(metadata, metaloc, 4, uint(item.Count))
		}
		metaloc = put(metadata, metaloc, 4, uint(len(input)))
		metaloc = put(metadata, metaloc, 4, uint(len(encoded)))
		return Frame{Kind: CodedFrame, Header: metadata[:metaloc], Payload: encoded}
	}
	metaloc = put(metadata, metaloc, 2, 0)
	metaloc = put(metadata, metaloc, 4, uint(len(input)))
	return Frame{Kind: RawFrame, Header: metadata[:metaloc], Payload: input}
}

func (e *Encoder) compressBlock(input []uint8, freq FreqTable) ([]uint8, bool) {
	if len(input) == 0 {
		return nil, false
	}
	tree, err := BuildTree(freq)
	if err != nil {
		log.Debugf("storing block raw: %v", err)
		return nil, false
	}
	if !BuildDictionary(tree, e.dict) {
		log.Debugf("storing %d-byte block raw: codes wider than %d bits", len(input), MaxCodeWidth)
		return nil, false
	}
	if log.IsEnabledFor(logging.DEBUG) {
		log.Debugf("dictionary for %d-byte block: %s", len(input), e.dict)
	}
	// The packed codes must be strictly shorter than the input to be worth it.
	encoded := PackBlock(e.dict, input, e.outputBlock[:len(input)-1])
	if encoded == nil {
		log.Debugf("storing %d-byte block raw: coding does not shrink it", len(input))
		return nil, false
	}
	return encoded, true
}

/////////////////////////////////////////////////////////////////////////////////////
//
// Decoder
//
// We rebuild the tree from the frequency table, which yields the same tree the
// encoder used.  We then process the input and emit bytes into the output
// block.  By construction, the block will have enough space.

type Decoder struct {
	r           io.Reader
	offset      int64
	inputBlock  []uint8
	outputBlock []uint8
	metaBlock   []uint8
	freqBlock   FreqTable
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:           r,
		inputBlock:  make([]uint8, BlockSize),
		outputBlock: make([]uint8, BlockSize),
		metaBlock:   make([]uint8, metasize),
		freqBlock:   make(FreqTable, 256),
	}
}

// InputOffset returns the number of bytes of compressed input consumed so far.

func (d *Decoder) InputOffset() int64 {
	return d.offset
}

// DecodeBlock reads one frame and returns the block it represents; the block is
// valid until the next call.  At a clean end of input it returns io.EOF.  A
// malformed or truncated frame yields an error wrapping ErrCorrupt.

func (d *Decoder) DecodeBlock() ([]uint8, FrameKind, error) {
	start := d.offset
	bytesRead, err := io.ReadFull(d.r, d.metaBlock[0:2])
	d.offset += int64(bytesRead)
	if bytesRead == 0 && err == io.EOF {
		return nil, RawFrame, io.EOF
	}
	if err != nil {
		return nil, RawFrame, d.readError(start, "frame header", err)
	}
	metaloc := 0
	freqCount := uint(0)
	freqCount, metaloc = get(d.metaBlock, metaloc, 2)
	if freqCount > 256 {
		return nil, RawFrame, corrupt(start, "frequency table has %d entries", freqCount)
	}

	numMetaBytes := 4
	if freqCount > 0 {
		numMetaBytes = int(freqCount)*5 + 4 + 4
	}
	if err := d.fill(d.metaBlock[metaloc:metaloc+numMetaBytes], start, "frame header"); err != nil {
		return nil, RawFrame, err
	}

	if freqCount == 0 {
		bytesEncoded, _ := get(d.metaBlock, metaloc, 4)
		if bytesEncoded > BlockSize {
			return nil, RawFrame, corrupt(start, "raw block of %d bytes", bytesEncoded)
		}
		input := d.inputBlock[:bytesEncoded]
		if err := d.fill(input, start, "raw block"); err != nil {
			return nil, RawFrame, err
		}
		return input, RawFrame, nil
	}

	freq := d.freqBlock[:int(freqCount)]
	for i := range freq {
		var v uint
		v, metaloc = get(d.metaBlock, metaloc, 1)
		freq[i].Symbol = uint8(v)
		v, metaloc = get(d.metaBlock, metaloc, 4)
		freq[i].Count = uint32(v)
	}
	var bytesEncoded, bytesInEncoding uint
	bytesEncoded, metaloc = get(d.metaBlock, metaloc, 4)
	bytesInEncoding, _ = get(d.metaBlock, metaloc, 4)
	if bytesEncoded > BlockSize || bytesInEncoding > BlockSize {
		return nil, CodedFrame, corrupt(start, "block of %d bytes coded in %d bytes", bytesEncoded, bytesInEncoding)
	}
	if err := checkFrequencies(freq, bytesEncoded); err != nil {
		return nil, CodedFrame, corrupt(start, "%v", err)
	}

	input := d.inputBlock[:bytesInEncoding]
	if err := d.fill(input, start, "coded block"); err != nil {
		return nil, CodedFrame, err
	}
	tree, err := BuildTree(freq)
	if err != nil {
		return nil, CodedFrame, corrupt(start, "%v", err)
	}
	decoded, err := UnpackBlock(tree, int(bytesEncoded), input, d.outputBlock)
	if err != nil {
		return nil, CodedFrame, fmt.Errorf("frame at offset %d: %w", start, err)
	}
	return decoded, CodedFrame, nil
}

// The table must be in the order the encoder produces, without repeated values
// or zero counts, and must account for every byte of the block.

func checkFrequencies(freq FreqTable, bytesEncoded uint) error {
	var seen [256]bool
	for i, e := range freq {
		if e.Count == 0 {
			return huffError(fmt.Sprintf("zero count for value %d", e.Symbol))
		}
		if seen[e.Symbol] {
			return huffError(fmt.Sprintf("value %d appears twice in frequency table", e.Symbol))
		}
		seen[e.Symbol] = true
		if i > 0 && !freq.Less(i-1, i) {
			return huffError(fmt.Sprintf("frequency table out of order at entry %d", i))
		}
	}
	if total := freq.Total(); total != uint64(bytesEncoded) {
		return huffError(fmt.Sprintf("frequencies sum to %d but block has %d bytes", total, bytesEncoded))
	}
	return nil
}

func (d *Decoder) fill(buf []uint8, start int64, what string) error {
	bytesRead, err := io.ReadFull(d.r, buf)
	d.offset += int64(bytesRead)
	if err != nil {
		return d.readError(start, what, err)
	}
	return nil
}

// End of input inside a frame is a format error; anything else is the reader's.

func (d *Decoder) readError(start int64, what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return corrupt(start, "premature EOF reading %s", what)
	}
	return fmt.Errorf("reading %s: %w", what, err)
}

func corrupt(start int64, format string, args ...any) error {
	return fmt.Errorf("%w: frame at offset %d: %s", ErrCorrupt, start, fmt.Sprintf(format, args...))
}

/////////////////////////////////////////////////////////////////////////////////////
//
// Buffer utilities

// Encode `val` of size `nbytes` little-endian into `buf` at `ptr` and return
// `ptr+nbytes`.

func put(buf []uint8, ptr int, nbytes int, val uint) int {
	for nbytes > 0 {
		buf[ptr] = uint8(val & 255)
		val >>= 8
		ptr++
		nbytes--
	}
	return ptr
}

// Decode `val` of size `nbytes` little-endian from `buf` at `ptr` and return
// `val` and `ptr+nbytes`.

func get(buf []uint8, ptr int, nbytes int) (val uint, newPtr int) {
	shift := 0
	for nbytes > 0 {
		val = val | (uint(buf[ptr]) << shift)
		shift += 8
		ptr++
		nbytes--
	}
	newPtr = ptr
	return
}
