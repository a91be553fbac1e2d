package anvil

const (
	sectionWidth  = 16
	sectionVolume = sectionWidth * sectionWidth * sectionWidth // 4096
)

// Section is one 16x16x16 cell of a chunk. The block array is a fixed-size
// array, never partially populated: every constructed Section holds exactly
// 4096 block references.
type Section struct {
	blocks [sectionVolume]*Block
}

// blockIndex converts local coordinates (each in [0,16)) to the linear index
// used by the packed block array: x varies fastest, then z, then y.
func blockIndex(x, y, z int) int {
	return y<<8 | z<<4 | x
}

// Block returns the block at local coordinates, or nil if any coordinate is
// outside [0,16).
func (s *Section) Block(x, y, z int) *Block {
	if x < 0 || x >= sectionWidth || y < 0 || y >= sectionWidth || z < 0 || z >= sectionWidth {
		return nil
	}
	return s.blocks[blockIndex(x, y, z)]
}

// SetBlock replaces the block at local coordinates. Out-of-bounds coordinates
// are a silent no-op; callers that need failure signaling must pre-validate.
func (s *Section) SetBlock(x, y, z int, b *Block) {
	if x < 0 || x >= sectionWidth || y < 0 || y >= sectionWidth || z < 0 || z >= sectionWidth {
		return
	}
	s.blocks[blockIndex(x, y, z)] = b
}
