package huff

import "sort"

type FreqEntry struct {
	Symbol uint8
	Count  uint32
}

type FreqTable []FreqEntry

func (ft FreqTable) Len() int { return len(ft) }
func (ft FreqTable) Less(i, j int) bool {
	return ft[i].Count > ft[j].Count || ft[i].Count == ft[j].Count && ft[i].Symbol < ft[j].Symbol
}
func (ft FreqTable) Swap(i, j int) { ft[i], ft[j] = ft[j], ft[i] }

// Return the sum of the counts, ie the length of the block the table describes.

func (ft FreqTable) Total() uint64 {
	var n uint64
	for _, e := range ft {
		n += uint64(e.Count)
	}
	return n
}

// ComputeFrequencies returns a table of (byteValue, frequency) sorted in
// descending order by frequency, for non-zero frequencies only.  Ties are
// broken by ascending byte value so the order is total.
//
// The result is a prefix of `ft`, which is used as scratch storage and must
// have room for 256 entries; if it is nil a new table is allocated.

func ComputeFrequencies(input []uint8, ft FreqTable) FreqTable {
	if cap(ft) < 256 {
		ft = make(FreqTable, 256)
	}
	ft = ft[:256]
	for i := range ft {
		ft[i].Symbol = uint8(i)
		ft[i].Count = 0
	}
	for _, b := range input {
		ft[b].Count++
	}
	sort.Stable(ft)
	i := 0
	for i < len(ft) && ft[i].Count > 0 {
		i++
	}
	return ft[:i]
}
