package anvil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTallChunk returns a chunk shaped like a post-1.18 overworld chunk:
// yPos -4 with 24 sections, each filled with a distinct marker block.
func buildTallChunk() (*Chunk, []*Block) {
	markers := make([]*Block, 24)
	sections := make([]*Section, 24)
	for i := range sections {
		markers[i] = &Block{name: "minecraft:stone"}
		var section Section
		for j := range section.blocks {
			section.blocks[j] = markers[i]
		}
		sections[i] = &section
	}
	return &Chunk{yPos: -4, sections: sections}, markers
}

func TestChunkYRange(t *testing.T) {
	chunk, _ := buildTallChunk()
	minY, maxY := chunk.YRange()
	assert.Equal(t, -64, minY)
	assert.Equal(t, 320, maxY)

	empty := &Chunk{yPos: 0}
	minY, maxY = empty.YRange()
	assert.Equal(t, 0, minY)
	assert.Equal(t, 0, maxY)
}

func TestChunkBlockLookup(t *testing.T) {
	chunk, markers := buildTallChunk()

	// Bottom of section 0 and top of section 23.
	assert.Same(t, markers[0], chunk.Block(0, -64, 0))
	assert.Same(t, markers[23], chunk.Block(0, 319, 0))

	// Section boundaries map to the right section.
	assert.Same(t, markers[0], chunk.Block(5, -49, 5))
	assert.Same(t, markers[1], chunk.Block(5, -48, 5))
	assert.Same(t, markers[4], chunk.Block(15, 15, 15))
}

func TestChunkBlockOutOfRange(t *testing.T) {
	chunk, _ := buildTallChunk()
	for _, c := range [][3]int{
		{0, -65, 0}, {0, 320, 0}, {16, 0, 0}, {0, 0, 16}, {-1, 0, 0}, {0, 0, -1},
	} {
		assert.Nil(t, chunk.Block(c[0], c[1], c[2]), "coords %v", c)
	}
}

func TestChunkSectionLookup(t *testing.T) {
	chunk, markers := buildTallChunk()

	bottom := chunk.Section(-4)
	require.NotNil(t, bottom)
	assert.Same(t, markers[0], bottom.Block(0, 0, 0))

	top := chunk.Section(19)
	require.NotNil(t, top)
	assert.Same(t, markers[23], top.Block(0, 0, 0))

	assert.Nil(t, chunk.Section(-5))
	assert.Nil(t, chunk.Section(20))
}
