package anvil

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/Tnze/go-mc/nbt"
)

// chunkHeaderSize is the inner payload header: a 4-byte big-endian body
// length followed by a 1-byte compression tag.
const chunkHeaderSize = 5

// Raw NBT views of the chunk document. Every required field is held as a
// RawMessage so that a missing field and a wrongly-typed field surface the
// same way: the tag type does not match what the assembler requires.
type rawChunk struct {
	YPos     nbt.RawMessage `nbt:"yPos"`
	Sections nbt.RawMessage `nbt:"sections"`
}

type rawSection struct {
	BlockStates nbt.RawMessage `nbt:"block_states"`
}

type rawBlockStates struct {
	Palette nbt.RawMessage `nbt:"palette"`
	Data    nbt.RawMessage `nbt:"data"`
}

type rawPaletteEntry struct {
	Name       nbt.RawMessage `nbt:"Name"`
	Properties nbt.RawMessage `nbt:"Properties"`
}

// ParseChunk decodes a single chunk payload as sliced out of a region file:
// the 5-byte inner header followed by the compressed NBT document.
func ParseChunk(payload []byte) (*Chunk, error) {
	return parseChunk(payload, 0, newBlockInterner())
}

func parseChunk(payload []byte, timestamp uint32, blocks *blockInterner) (*Chunk, error) {
	if len(payload) < chunkHeaderSize {
		return nil, errInputTooShort(chunkHeaderSize, len(payload))
	}
	length := int(binary.BigEndian.Uint32(payload))
	if len(payload) < length+4 {
		return nil, errInputTooShort(length+4, len(payload))
	}

	format := payload[4]
	body := payload[chunkHeaderSize:]
	if length > len(body) {
		// Vanilla counts the compression tag byte in the declared length.
		length = len(body)
	}

	data, err := decompress(format, body[:length])
	if err != nil {
		return nil, err
	}

	var root rawChunk
	if _, err := nbt.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	yPos, err := fieldInt(root.YPos, "yPos")
	if err != nil {
		return nil, err
	}
	var rawSections []rawSection
	if err := fieldList(root.Sections, "sections", &rawSections); err != nil {
		return nil, err
	}

	sections := make([]*Section, 0, len(rawSections))
	for _, raw := range rawSections {
		section, err := parseSection(raw, blocks)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	return &Chunk{yPos: yPos, sections: sections, timestamp: timestamp}, nil
}

func parseSection(raw rawSection, blocks *blockInterner) (*Section, error) {
	var states rawBlockStates
	if err := fieldCompound(raw.BlockStates, "block_states", &states); err != nil {
		return nil, err
	}
	var rawPalette []rawPaletteEntry
	if err := fieldList(states.Palette, "palette", &rawPalette); err != nil {
		return nil, err
	}
	if len(rawPalette) == 0 || len(rawPalette) > sectionVolume {
		return nil, ErrInvalidPalette
	}

	palette := make([]*Block, len(rawPalette))
	for i, entry := range rawPalette {
		name, err := fieldString(entry.Name, "Name")
		if err != nil {
			return nil, err
		}
		var properties map[string]string
		if entry.Properties.Type == nbt.TagCompound {
			if err := entry.Properties.Unmarshal(&properties); err != nil {
				return nil, errInvalidField("Properties")
			}
		}
		palette[i] = blocks.intern(name, properties)
	}

	var section Section
	if len(palette) == 1 {
		// Single-state sections carry no index array; any data field present
		// is ignored.
		for i := range section.blocks {
			section.blocks[i] = palette[0]
		}
		return &section, nil
	}

	var data []int64
	if err := fieldLongArray(states.Data, "data", &data); err != nil {
		return nil, err
	}
	indices, err := unpackIndices(data, bitsPerIndex(len(palette)), len(palette))
	if err != nil {
		return nil, err
	}
	for i, index := range indices {
		section.blocks[i] = palette[index]
	}
	return &section, nil
}

func fieldInt(m nbt.RawMessage, name string) (int32, error) {
	if m.Type != nbt.TagInt {
		return 0, errInvalidField(name)
	}
	var v int32
	if err := m.Unmarshal(&v); err != nil {
		return 0, errInvalidField(name)
	}
	return v, nil
}

func fieldString(m nbt.RawMessage, name string) (string, error) {
	if m.Type != nbt.TagString {
		return "", errInvalidField(name)
	}
	var v string
	if err := m.Unmarshal(&v); err != nil {
		return "", errInvalidField(name)
	}
	return v, nil
}

func fieldCompound(m nbt.RawMessage, name string, v any) error {
	if m.Type != nbt.TagCompound {
		return errInvalidField(name)
	}
	if err := m.Unmarshal(v); err != nil {
		return errInvalidField(name)
	}
	return nil
}

func fieldList(m nbt.RawMessage, name string, v any) error {
	if m.Type != nbt.TagList {
		return errInvalidField(name)
	}
	if err := m.Unmarshal(v); err != nil {
		return errInvalidField(name)
	}
	return nil
}

func fieldLongArray(m nbt.RawMessage, name string, v *[]int64) error {
	if m.Type != nbt.TagLongArray {
		return errInvalidField(name)
	}
	if err := m.Unmarshal(v); err != nil {
		return errInvalidField(name)
	}
	return nil
}
