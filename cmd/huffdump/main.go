// Usage: `huffdump [options] filename`
//   Without -d, reads an uncompressed file and, for each 64KB block, prints the
//     byte values in decreasing frequency order along with their code widths,
//     and the kind of frame the block would be stored as.
//   With -d, reads a compressed file and lists its frames.
//
// Options:
//   -t n  Print only the top n values of each block.  Default=16.  Zero means 'all'
//   -d    The input is compressed; list the frames

package main

import (
	"bufio"
	"flag"
	"io"
	"os"

	"github.com/lars-t-hansen/huffer/huff"
	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var log = logging.MustGetLogger("huffdump")

func main() {
	var tFlag uint
	var dFlag bool
	flag.UintVar(&tFlag, "t", 16, "Number of values to list per block")
	flag.BoolVar(&dFlag, "d", false, "List the frames of a compressed file")
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	logging.SetLevel(logging.WARNING, "")

	inputFile, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	defer inputFile.Close()
	output := bufio.NewWriter(os.Stdout)
	defer output.Flush()

	if dFlag {
		err = listFrames(inputFile, output)
	} else {
		err = analyze(inputFile, output, int(tFlag))
	}
	if err != nil {
		output.Flush()
		log.Errorf("%s: %v", flag.Arg(0), err)
		os.Exit(1)
	}
}

func analyze(r io.Reader, w io.Writer, top int) error {
	p := message.NewPrinter(language.English)
	enc := huff.NewEncoder()
	dict := huff.NewDictionary()
	freqBlock := make(huff.FreqTable, 256)
	inputBlock := make([]uint8, huff.BlockSize)
	for blockno := 0; ; blockno++ {
		bytesRead, err := io.ReadFull(r, inputBlock)
		if bytesRead == 0 && err == io.EOF {
			return nil
		}
		if err != nil && err != io.ErrUnexpectedEOF {
			return err
		}
		input := inputBlock[:bytesRead]
		freq := huff.ComputeFrequencies(input, freqBlock)
		tree, terr := huff.BuildTree(freq)
		if terr != nil {
			return terr
		}
		if !huff.BuildDictionary(tree, dict) {
			p.Fprintf(w, "block %d: %d bytes, %d values, codes too wide\n", blockno, bytesRead, len(freq))
		} else {
			var bits uint64
			for _, e := range freq {
				bits += uint64(e.Count) * uint64(dict[e.Symbol].Width)
			}
			p.Fprintf(w, "block %d: %d bytes, %d values, %d bits coded (%.2f bits/byte)\n",
				blockno, bytesRead, len(freq), bits, float64(bits)/float64(bytesRead))
		}
		frame := enc.EncodeBlock(input)
		p.Fprintf(w, "  stored as %s frame of %d bytes\n", frame.Kind, frame.Len())

		n := len(freq)
		if top > 0 && top < n {
			n = top
		}
		for _, v := range freq[:n] {
			p.Fprintf(w, "  %02x\t%d\t%d\n", v.Symbol, v.Count, dict[v.Symbol].Width)
		}
		if err == io.ErrUnexpectedEOF {
			return nil
		}
	}
}

func listFrames(r io.Reader, w io.Writer) error {
	p := message.NewPrinter(language.English)
	dec := huff.NewDecoder(bufio.NewReader(r))
	var frames, rawBytes int64
	for {
		start := dec.InputOffset()
		decoded, kind, err := dec.DecodeBlock()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		p.Fprintf(w, "%d\t%s\t%d -> %d bytes\n", start, kind, dec.InputOffset()-start, len(decoded))
		frames++
		rawBytes += int64(len(decoded))
	}
	p.Fprintf(w, "%d frames, %d bytes compressed, %d bytes uncompressed\n", frames, dec.InputOffset(), rawBytes)
	return nil
}
