package anvil

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

// NBT document shapes used to synthesize chunk payloads. Separate types exist
// for the malformed variants so that a field can be genuinely absent from the
// encoded document.

type testChunk struct {
	YPos     int32         `nbt:"yPos"`
	Sections []testSection `nbt:"sections"`
}

type testSection struct {
	BlockStates testBlockStates `nbt:"block_states"`
}

type testBlockStates struct {
	Palette []testPaletteEntry `nbt:"palette"`
	Data    []int64            `nbt:"data"`
}

type testPaletteEntry struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties"`
}

type testChunkNoYPos struct {
	Sections []testSection `nbt:"sections"`
}

type testChunkBadYPos struct {
	YPos     string        `nbt:"yPos"`
	Sections []testSection `nbt:"sections"`
}

type testChunkNoSections struct {
	YPos int32 `nbt:"yPos"`
}

type testChunkBareSections struct {
	YPos     int32      `nbt:"yPos"`
	Sections []struct{} `nbt:"sections"`
}

type testChunkNoData struct {
	YPos     int32               `nbt:"yPos"`
	Sections []testSectionNoData `nbt:"sections"`
}

type testSectionNoData struct {
	BlockStates testPaletteOnly `nbt:"block_states"`
}

type testPaletteOnly struct {
	Palette []testPaletteEntry `nbt:"palette"`
}

func marshalNBT(t *testing.T, v any) []byte {
	t.Helper()
	data, err := nbt.Marshal(v)
	require.NoError(t, err)
	return data
}

// frameChunkPayload wraps an NBT document in the inner chunk framing: 4-byte
// big-endian length, compression tag, compressed body. As vanilla does, the
// declared length counts the compression tag byte.
func frameChunkPayload(t *testing.T, doc []byte, format byte) []byte {
	t.Helper()
	var body []byte
	switch format {
	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, err := w.Write(doc)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		body = buf.Bytes()
	case CompressionZlib:
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		_, err := w.Write(doc)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		body = buf.Bytes()
	default:
		body = doc
	}

	payload := make([]byte, chunkHeaderSize+len(body))
	binary.BigEndian.PutUint32(payload, uint32(len(body)+1))
	payload[4] = format
	copy(payload[chunkHeaderSize:], body)
	return payload
}

func chunkPayload(t *testing.T, doc any, format byte) []byte {
	t.Helper()
	return frameChunkPayload(t, marshalNBT(t, doc), format)
}

// packIndices is the inverse of unpackIndices: indices are packed
// little-endian within each 64-bit word and never straddle a word boundary.
func packIndices(width int, indices []int) []int64 {
	perWord := 64 / width
	out := make([]int64, (len(indices)+perWord-1)/perWord)
	for i, index := range indices {
		out[i/perWord] |= int64(uint64(index) << (i % perWord * width))
	}
	return out
}

// packedSection builds a section whose 4096 cells cycle through the palette.
func packedSection(names ...string) testSection {
	palette := make([]testPaletteEntry, len(names))
	for i, name := range names {
		palette[i] = testPaletteEntry{Name: name}
	}
	indices := make([]int, sectionVolume)
	for i := range indices {
		indices[i] = i % len(names)
	}
	return testSection{BlockStates: testBlockStates{
		Palette: palette,
		Data:    packIndices(bitsPerIndex(len(names)), indices),
	}}
}

// buildRegion assembles a region file buffer from per-cell chunk payloads,
// assigning sectors sequentially after the header. Populated cells get
// timestamp 1.
func buildRegion(t *testing.T, cells map[[2]int][]byte) []byte {
	t.Helper()
	region := make([]byte, regionHeaderSize)
	sector := 2
	for z := 0; z < regionWidth; z++ {
		for x := 0; x < regionWidth; x++ {
			payload, ok := cells[[2]int{x, z}]
			if !ok {
				continue
			}
			count := (len(payload) + sectorSize - 1) / sectorSize
			require.LessOrEqual(t, count, 255)
			i := x + z*regionWidth
			binary.BigEndian.PutUint32(region[i*4:], uint32(sector)<<8|uint32(count))
			binary.BigEndian.PutUint32(region[sectorSize+i*4:], 1)

			padded := make([]byte, count*sectorSize)
			copy(padded, payload)
			region = append(region, padded...)
			sector += count
		}
	}
	return region
}
