package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/lars-t-hansen/huffer/huff"
)

func TestAnalyze(t *testing.T) {
	var out strings.Builder
	if err := analyze(strings.NewReader("aaaab"), &out, 0); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	for _, expected := range []string{
		"block 0: 5 bytes, 2 values, 5 bits coded",
		"stored as coded frame of 21 bytes",
		"  61\t4\t1\n",
		"  62\t1\t1\n",
	} {
		if !strings.Contains(s, expected) {
			t.Fatalf("Missing %q in %q", expected, s)
		}
	}
}

func TestAnalyzeTop(t *testing.T) {
	var out strings.Builder
	input := strings.Repeat("abcdefgh", 10000)
	if err := analyze(strings.NewReader(input), &out, 3); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if !strings.Contains(s, "block 1: 14,464 bytes") {
		t.Fatalf("Expected a second block in %q", s)
	}
	if strings.Count(s, "\t") != 2*2*3 {
		t.Fatalf("Expected three values per block in %q", s)
	}
}

func TestListFrames(t *testing.T) {
	input := bytes.Repeat([]uint8("mississippi "), 6000)
	var compressed bytes.Buffer
	if _, err := huff.CompressStream(bytes.NewReader(input), &compressed); err != nil {
		t.Fatal(err)
	}
	n := compressed.Len()
	var out strings.Builder
	if err := listFrames(&compressed, &out); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if !strings.HasPrefix(s, "0\tcoded\t") || !strings.Contains(s, "2 frames") {
		t.Fatalf("Bad listing %q", s)
	}
	if !strings.Contains(s, "72,000 bytes uncompressed") {
		t.Fatalf("Bad totals in %q (%d compressed)", s, n)
	}
}

func TestListFramesCorrupt(t *testing.T) {
	var out strings.Builder
	err := listFrames(bytes.NewReader([]uint8{0, 0, 9, 0, 0, 0, 'x'}), &out)
	if !errors.Is(err, huff.ErrCorrupt) {
		t.Fatalf("Expected ErrCorrupt, got %v", err)
	}
}
