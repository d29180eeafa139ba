// Package cgfx is an example format driver for blockwire: a 3DS/Wii U
// style CGFX container with a little-endian pointer convention and an
// optional compressed blob heap.
package cgfx

import "fmt"

// BlobCodec names a compression scheme usable for the blob heap
// category. Unlike core field pointers, blob heap contents are opaque
// payloads (textures, shader binaries) that benefit from compression
// the struct layout itself never needs.
type BlobCodec uint8

const (
	BlobRaw BlobCodec = iota
	BlobZstd
	BlobXZ
)

func (c BlobCodec) String() string {
	switch c {
	case BlobRaw:
		return "raw"
	case BlobZstd:
		return "zstd"
	case BlobXZ:
		return "xz"
	default:
		return fmt.Sprintf("BlobCodec(%d)", c)
	}
}

// blobCompressor compresses and decompresses one heap's worth of blob
// bytes. Registered by codec via RegisterBlobCodec; zstd and xz are only
// registered when built with the matching build tag, the same opt-in
// shape the teacher uses for its own compression backends.
type blobCompressor struct {
	Compress   func([]byte) ([]byte, error)
	Decompress func([]byte) ([]byte, error)
}

var blobCodecs = map[BlobCodec]*blobCompressor{
	BlobRaw: {
		Compress:   func(b []byte) ([]byte, error) { return b, nil },
		Decompress: func(b []byte) ([]byte, error) { return b, nil },
	},
}

// RegisterBlobCodec installs (or replaces) the compressor for codec.
// Build-tagged files call this from an init func; tests may call it
// directly to install a fake codec.
func RegisterBlobCodec(codec BlobCodec, c *blobCompressor) {
	blobCodecs[codec] = c
}

// CompressBlob compresses buf under codec.
func CompressBlob(codec BlobCodec, buf []byte) ([]byte, error) {
	c, ok := blobCodecs[codec]
	if !ok {
		return nil, fmt.Errorf("cgfx: no compressor registered for %s (missing build tag?)", codec)
	}
	return c.Compress(buf)
}

// DecompressBlob decompresses buf, previously produced by CompressBlob
// under the same codec.
func DecompressBlob(codec BlobCodec, buf []byte) ([]byte, error) {
	c, ok := blobCodecs[codec]
	if !ok {
		return nil, fmt.Errorf("cgfx: no decompressor registered for %s (missing build tag?)", codec)
	}
	return c.Decompress(buf)
}
