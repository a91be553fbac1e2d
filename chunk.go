package anvil

// Chunk is a vertical stack of sections. Sections are ordered bottom-to-top;
// yPos is the vertical index (in 16-block sections) of the lowest one, so a
// post-1.18 overworld chunk has yPos -4 and 24 sections.
type Chunk struct {
	yPos      int32
	sections  []*Section
	timestamp uint32
}

// YPos returns the section index of the bottom of the chunk.
func (c *Chunk) YPos() int {
	return int(c.yPos)
}

// Timestamp returns the last-modified timestamp recorded for this chunk in
// the region's timestamp table (epoch seconds).
func (c *Chunk) Timestamp() uint32 {
	return c.timestamp
}

// YRange returns the half-open range [minY, maxY) of world Y coordinates
// covered by the chunk's sections.
func (c *Chunk) YRange() (minY, maxY int) {
	minY = int(c.yPos) * sectionWidth
	maxY = minY + len(c.sections)*sectionWidth
	return minY, maxY
}

// Block returns the block at chunk-local x,z and world y, or nil if x or z is
// outside [0,16) or y is outside YRange.
func (c *Chunk) Block(x, y, z int) *Block {
	minY, maxY := c.YRange()
	if x < 0 || x >= sectionWidth || z < 0 || z >= sectionWidth || y < minY || y >= maxY {
		return nil
	}
	localY := y - minY
	return c.sections[localY>>4].Block(x, localY&0xF, z)
}

// Section returns the section at vertical section index y (world units of 16
// blocks, so y == yPos addresses the bottom section), or nil if out of range.
func (c *Chunk) Section(y int) *Section {
	i := y - int(c.yPos)
	if i < 0 || i >= len(c.sections) {
		return nil
	}
	return c.sections[i]
}

// SectionCount returns the number of sections in the chunk.
func (c *Chunk) SectionCount() int {
	return len(c.sections)
}
