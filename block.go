package anvil

import (
	"maps"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Block is a single block state: a namespaced identifier plus optional
// key/value properties (orientation, waterlogging and so on). Blocks are
// immutable once built; one *Block is shared by every section cell that
// references the same state.
type Block struct {
	name       string
	properties map[string]string
}

func (b *Block) Name() string {
	return b.name
}

// Property returns the value of a single state property, if set.
func (b *Block) Property(name string) (string, bool) {
	v, ok := b.properties[name]
	return v, ok
}

// Properties returns a copy of the property map, nil if the state has none.
func (b *Block) Properties() map[string]string {
	return maps.Clone(b.properties)
}

// blockInterner deduplicates block states so that thousands of cells point at
// a handful of distinct *Block values. Buckets are keyed by an xxhash of the
// canonical state encoding; equality is still checked per bucket entry, so
// hash collisions only cost a comparison.
type blockInterner struct {
	buckets map[uint64][]*Block
}

func newBlockInterner() *blockInterner {
	return &blockInterner{buckets: make(map[uint64][]*Block)}
}

// intern takes ownership of properties; callers must not mutate it afterwards.
func (in *blockInterner) intern(name string, properties map[string]string) *Block {
	sum := hashBlockState(name, properties)
	for _, b := range in.buckets[sum] {
		if b.name == name && maps.Equal(b.properties, properties) {
			return b
		}
	}
	b := &Block{name: name, properties: properties}
	in.buckets[sum] = append(in.buckets[sum], b)
	return b
}

func hashBlockState(name string, properties map[string]string) uint64 {
	digest := xxhash.New()
	_, _ = digest.WriteString(name)

	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = digest.WriteString("\x00")
		_, _ = digest.WriteString(k)
		_, _ = digest.WriteString("=")
		_, _ = digest.WriteString(properties[k])
	}
	return digest.Sum64()
}
