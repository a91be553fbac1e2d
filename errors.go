package anvil

import (
	"errors"
	"fmt"
)

var (
	// ErrInputTooShort is returned when a region or chunk buffer ends before
	// the data it declares.
	ErrInputTooShort = errors.New("anvil: input too short")
	// ErrInputInvalidSize is returned when a region buffer is not a whole
	// number of 4096-byte sectors.
	ErrInputInvalidSize = errors.New("anvil: input size is not a multiple of 4096")
	// ErrUnsupportedCompression is returned for compression tags other than
	// gzip (1), zlib (2) and uncompressed (3).
	ErrUnsupportedCompression = errors.New("anvil: unsupported compression format")
	// ErrDecompressionFailed wraps codec-level stream errors.
	ErrDecompressionFailed = errors.New("anvil: failed to decompress chunk data")
	// ErrParseFailed wraps NBT document errors.
	ErrParseFailed = errors.New("anvil: failed to parse chunk")
	// ErrInvalidField is returned when a required NBT field is missing or has
	// the wrong type.
	ErrInvalidField = errors.New("anvil: field is missing or has an invalid type")
	// ErrInvalidPalette is returned for an empty or over-large block palette.
	ErrInvalidPalette = errors.New("anvil: invalid block palette")
	// ErrInvalidSectionData is returned when a section's packed index array is
	// too short or contains an index outside the palette.
	ErrInvalidSectionData = errors.New("anvil: invalid section data")
)

func errInputTooShort(expected, actual int) error {
	return fmt.Errorf("%w: expected at least %d bytes but got %d", ErrInputTooShort, expected, actual)
}

func errInputInvalidSize(actual int) error {
	return fmt.Errorf("%w: got %d bytes", ErrInputInvalidSize, actual)
}

func errInvalidField(name string) error {
	return fmt.Errorf("%w: %s", ErrInvalidField, name)
}
