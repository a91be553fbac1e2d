package anvil

import (
	"fmt"
	"math/bits"
)

// bitsPerIndex returns the width of a packed palette index: the minimum
// number of bits that can address the palette, but never fewer than 4.
func bitsPerIndex(paletteLen int) int {
	n := bits.Len(uint(paletteLen - 1))
	if n < 4 {
		n = 4
	}
	return n
}

// unpackIndices expands a section's packed long array into 4096 palette
// indices. Indices never straddle a 64-bit word: when the next index would
// cross a word boundary, the remaining high bits of the current word are
// padding and reading resumes at bit 0 of the next word.
func unpackIndices(data []int64, width, paletteLen int) ([]int, error) {
	perWord := 64 / width
	needed := (sectionVolume + perWord - 1) / perWord
	if len(data) < needed {
		return nil, fmt.Errorf("%w: need %d longs for %d-bit indices, got %d",
			ErrInvalidSectionData, needed, width, len(data))
	}

	mask := uint64(1)<<width - 1
	indices := make([]int, sectionVolume)
	for i := range indices {
		word := uint64(data[i/perWord])
		shift := i % perWord * width
		index := int(word >> shift & mask)
		if index >= paletteLen {
			return nil, fmt.Errorf("%w: index %d outside palette of %d entries",
				ErrInvalidSectionData, index, paletteLen)
		}
		indices[i] = index
	}
	return indices, nil
}
