package anvil

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Compression tags used by the chunk payload header. Tag 4 (LZ4) and tag 127
// (custom) exist in newer level formats but are not supported here.
const (
	CompressionGzip byte = 1
	CompressionZlib byte = 2
	CompressionNone byte = 3
)

// decompress expands a chunk body according to its compression tag. The
// result is all-or-nothing; a truncated or corrupt stream yields
// ErrDecompressionFailed and no partial output.
func decompress(format byte, data []byte) ([]byte, error) {
	var reader io.ReadCloser
	var err error
	switch format {
	case CompressionGzip:
		reader, err = gzip.NewReader(bytes.NewReader(data))
	case CompressionZlib:
		reader, err = zlib.NewReader(bytes.NewReader(data))
	case CompressionNone:
		return data, nil
	default:
		return nil, ErrUnsupportedCompression
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
	}
	defer reader.Close()

	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
	}
	return out, nil
}
