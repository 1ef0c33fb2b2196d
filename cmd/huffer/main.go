// Huffman compressor / decompressor
//
// huffer compress [-o outfile] [-v] [-debug] filename
// huff [-o outfile] [-v] [-debug] filename
//   Creates outfile, or if no -o option, filename.huff
//
// huffer decompress [-o outfile] [-v] [-debug] filename.huff
// puff [-o outfile] [-v] [-debug] filename.huff
//   Creates outfile, or if no -o option, filename
//
// -v prints a summary of the work to stderr, -debug logs the dictionary and
// the storage decision for every block.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lars-t-hansen/huffer/huff"
	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var log = logging.MustGetLogger("huffer")

const suffix = ".huff"

var usage string = "Usage: huffer [compress|decompress] [-o outfilename] [-v] [-debug] infilename"

type huffError string

func (e huffError) Error() string {
	return string(e)
}

type usageError string

func (e usageError) Error() string {
	return string(e)
}

type command struct {
	isCompress  bool
	inFilename  string
	outFilename string
	verbose     bool
	debug       bool
}

func main() {
	cmd, err := parseArgs(os.Args[0], os.Args[1:])
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}
	setupLogging(cmd.debug)

	stats, err := run(cmd)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	if cmd.verbose {
		report(os.Stderr, cmd, stats)
	}
}

// Glean the operation from the program name if possible, otherwise from the
// first argument; then parse the options and the file name.

func parseArgs(progname string, args []string) (cmd command, err error) {
	var isCompress, isDecompress bool
	switch filepath.Base(progname) {
	case "huff":
		isCompress = true
	case "puff":
		isDecompress = true
	}

	if !isCompress && !isDecompress {
		if len(args) == 0 {
			return cmd, usageError(usage)
		}
		switch args[0] {
		case "compress":
			isCompress = true
		case "decompress":
			isDecompress = true
		default:
			return cmd, usageError("Unknown command " + args[0] + "\n" + usage)
		}
		args = args[1:]
	}
	cmd.isCompress = isCompress

	fs := flag.NewFlagSet("huffer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cmd.outFilename, "o", "", "Write output to `outfilename`")
	fs.BoolVar(&cmd.verbose, "v", false, "Print a summary to stderr")
	fs.BoolVar(&cmd.debug, "debug", false, "Log per-block details")
	if err := fs.Parse(args); err != nil {
		return cmd, usageError(err.Error() + "\n" + usage)
	}
	if fs.NArg() != 1 {
		return cmd, usageError(usage)
	}
	cmd.inFilename = fs.Arg(0)

	if cmd.outFilename == "" {
		if isCompress {
			cmd.outFilename = cmd.inFilename + suffix
		} else if !strings.HasSuffix(cmd.inFilename, suffix) || cmd.inFilename == suffix {
			return cmd, usageError("File to decompress must be named something" + suffix)
		} else {
			cmd.outFilename = strings.TrimSuffix(cmd.inFilename, suffix)
		}
	}
	if filepath.Clean(cmd.inFilename) == filepath.Clean(cmd.outFilename) {
		return cmd, usageError("Input and output are the same file: " + cmd.inFilename)
	}
	return cmd, nil
}

func setupLogging(debug bool) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.MustStringFormatter(`%{program}: %{level:.4s} %{message}`)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	if debug {
		leveled.SetLevel(logging.DEBUG, "")
	} else {
		leveled.SetLevel(logging.WARNING, "")
	}
	logging.SetBackend(leveled)
}

func run(cmd command) (huff.Stats, error) {
	if cmd.isCompress {
		return processFile(cmd.inFilename, cmd.outFilename, "Compressing", huff.CompressStream)
	}
	return processFile(cmd.inFilename, cmd.outFilename, "Decompressing", huff.DecompressStream)
}

// The output file is removed if processing fails, there is no partial result.

func processFile(inFilename, outFilename, verb string,
	process func(io.Reader, io.Writer) (huff.Stats, error)) (stats huff.Stats, err error) {
	inputFile, err := os.Open(inFilename)
	if err != nil {
		return stats, huffError("Opening " + inFilename + " for reading: " + err.Error())
	}
	defer inputFile.Close()

	outputFile, err := os.Create(outFilename)
	if err != nil {
		return stats, huffError("Opening " + outFilename + " for writing: " + err.Error())
	}
	defer func() {
		if err != nil {
			outputFile.Close()
			os.Remove(outFilename)
		}
	}()

	log.Debugf("%s %s to %s", verb, inFilename, outFilename)
	output := bufio.NewWriterSize(outputFile, huff.BlockSize)
	stats, err = process(bufio.NewReaderSize(inputFile, huff.BlockSize), output)
	if err != nil {
		return stats, fmt.Errorf("%s %s to %s: %w", verb, inFilename, outFilename, err)
	}
	if err = output.Flush(); err != nil {
		return stats, huffError("Writing output to " + outFilename + ": " + err.Error())
	}
	if err = outputFile.Close(); err != nil {
		return stats, huffError("Closing " + outFilename + ": " + err.Error())
	}
	return stats, nil
}

func report(w io.Writer, cmd command, stats huff.Stats) {
	p := message.NewPrinter(language.English) // For commas between thousands
	ratio := 100.0
	if stats.BytesIn > 0 {
		ratio = 100 * float64(stats.BytesOut) / float64(stats.BytesIn)
	}
	p.Fprintf(w, "%s -> %s: %d bytes in, %d bytes out (%.1f%%), %d coded and %d raw blocks\n",
		cmd.inFilename, cmd.outFilename, stats.BytesIn, stats.BytesOut, ratio,
		stats.CodedFrames, stats.RawFrames)
}
