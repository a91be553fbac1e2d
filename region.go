package anvil

import (
	"encoding/binary"
	"sync"

	"github.com/willf/bitset"
)

const (
	regionWidth      = 32
	regionChunkCount = regionWidth * regionWidth // 1024
	sectorSize       = 4096
	regionHeaderSize = 2 * sectorSize
)

// Region holds the up-to-1024 chunks of one 32x32 region file. A Region is
// immutable after parsing and safe for concurrent readers.
type Region struct {
	chunks    [regionChunkCount]*Chunk
	populated *bitset.BitSet
}

// ParseRegion decodes an entire region file from its raw bytes.
//
// Errors in the 8192-byte header (buffer too short, size not a multiple of
// 4096) are fatal and no Region is produced. Errors inside an individual
// chunk payload are not: that cell reads as absent and the other 1023 decode
// normally, so a single corrupt chunk cannot take down the region.
//
// The 1024 cells decode concurrently; each goroutine owns one result slot and
// one block interner, so no locking is involved.
func ParseRegion(data []byte) (*Region, error) {
	if len(data) < regionHeaderSize {
		return nil, errInputTooShort(regionHeaderSize, len(data))
	}
	if len(data)%sectorSize != 0 {
		return nil, errInputInvalidSize(len(data))
	}

	region := &Region{populated: bitset.New(regionChunkCount)}

	var wg sync.WaitGroup
	for i := 0; i < regionChunkCount; i++ {
		location := binary.BigEndian.Uint32(data[i*4:])
		timestamp := binary.BigEndian.Uint32(data[sectorSize+i*4:])

		offset := location >> 8
		sectors := location & 0xFF
		if offset == 0 && sectors == 0 && timestamp == 0 {
			continue
		}

		start := int(offset) * sectorSize
		end := start + int(sectors)*sectorSize
		if end > len(data) {
			// Out-of-range location entry: a failure of this cell only.
			continue
		}

		wg.Add(1)
		go func(slot int, payload []byte, timestamp uint32) {
			defer wg.Done()
			chunk, err := parseChunk(payload, timestamp, newBlockInterner())
			if err != nil {
				// Corrupt chunks degrade to absent.
				return
			}
			region.chunks[slot] = chunk
		}(i, data[start:end], timestamp)
	}
	wg.Wait()

	for i, chunk := range region.chunks {
		if chunk != nil {
			region.populated.Set(uint(i))
		}
	}
	return region, nil
}

// CountChunks returns the number of present chunks.
func (r *Region) CountChunks() int {
	return int(r.populated.Count())
}

// Chunk returns the chunk at region-local coordinates, or nil if the cell is
// absent or the coordinates are outside [0,32).
func (r *Region) Chunk(x, z int) *Chunk {
	if x < 0 || x >= regionWidth || z < 0 || z >= regionWidth {
		return nil
	}
	return r.chunks[x+z*regionWidth]
}

// ChunkExists reports whether the cell at region-local coordinates holds a
// decoded chunk.
func (r *Region) ChunkExists(x, z int) bool {
	if x < 0 || x >= regionWidth || z < 0 || z >= regionWidth {
		return false
	}
	return r.populated.Test(uint(x + z*regionWidth))
}
