package huff

import (
	"errors"
	"fmt"
	"io"
)

type Stats struct {
	BytesIn     int64
	BytesOut    int64
	CodedFrames int
	RawFrames   int
}

func (s *Stats) count(kind FrameKind) {
	if kind == CodedFrame {
		s.CodedFrames++
	} else {
		s.RawFrames++
	}
}

// CompressStream reads `r` in BlockSize chunks until a short or empty read and
// writes one frame per chunk to `w`.  Empty input produces empty output.

func CompressStream(r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats
	enc := NewEncoder()
	inputBlock := make([]uint8, BlockSize)
	for {
		bytesRead, err := io.ReadFull(r, inputBlock)
		if bytesRead == 0 && err == io.EOF {
			break
		}
		if err != nil && err != io.ErrUnexpectedEOF {
			return stats, fmt.Errorf("reading input: %w", err)
		}
		stats.BytesIn += int64(bytesRead)
		frame := enc.EncodeBlock(inputBlock[:bytesRead])
		stats.count(frame.Kind)
		n, werr := frame.WriteTo(w)
		stats.BytesOut += n
		if werr != nil {
			return stats, fmt.Errorf("writing output: %w", werr)
		}
		if err == io.ErrUnexpectedEOF {
			break
		}
	}
	return stats, nil
}

// DecompressStream decodes frames from `r` until end of input and writes the
// blocks to `w` in order.  Decoding stops at the first malformed frame.

func DecompressStream(r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats
	dec := NewDecoder(r)
	for {
		decoded, kind, err := dec.DecodeBlock()
		stats.BytesIn = dec.InputOffset()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}
		stats.count(kind)
		n, err := w.Write(decoded)
		stats.BytesOut += int64(n)
		if err != nil {
			return stats, fmt.Errorf("writing output: %w", err)
		}
	}
	return stats, nil
}
