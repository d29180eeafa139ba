package cgfx

import "github.com/hyliodon/blockwire"

// Blob is a boxed byte payload living in the blob heap: a texture or
// shader binary that benefits from its own compression scheme
// independent of the struct layout pointing at it. On the wire it is a
// u32 codec id, a u32 uncompressed length, a u32 compressed length, and
// the compressed bytes.
type Blob struct {
	Codec BlobCodec
	Data  []byte
}

func (b *Blob) ReadUnboxed(r blockwire.Reader, d blockwire.ReadDomain) error {
	codec, err := ReadU32(r, d)
	if err != nil {
		return err
	}
	rawLen, err := ReadU32(r, d)
	if err != nil {
		return err
	}
	compLen, err := ReadU32(r, d)
	if err != nil {
		return err
	}

	compressed := make([]byte, compLen)
	if err := blockwire.ReadExact(r, compressed); err != nil {
		return err
	}

	data, err := DecompressBlob(BlobCodec(codec), compressed)
	if err != nil {
		return err
	}
	if uint32(len(data)) != rawLen {
		return blockwire.NewDriverRefusedError("blob length mismatch")
	}

	b.Codec = BlobCodec(codec)
	b.Data = data
	return nil
}

func (b *Blob) WriteUnboxed(ctx *blockwire.WriteCtx[Category], d blockwire.WriteDomain) error {
	compressed, err := CompressBlob(b.Codec, b.Data)
	if err != nil {
		return err
	}
	if err := WriteU32(ctx, d, uint32(b.Codec)); err != nil {
		return err
	}
	if err := WriteU32(ctx, d, uint32(len(b.Data))); err != nil {
		return err
	}
	if err := WriteU32(ctx, d, uint32(len(compressed))); err != nil {
		return err
	}
	_, err = ctx.Write(compressed)
	return err
}

// WriteBoxedBlob allocates b into the blob heap and returns a token the
// caller writes into its own stream, the same pattern record generation
// uses for any boxed field.
func WriteBoxedBlob(ctx *blockwire.WriteCtx[Category], b *Blob) (blockwire.HeapToken, error) {
	return blockwire.WriteBoxedRecord[Category](ctx, categoryPtr(CatBlobs), 0, Driver{}, b)
}
