package blockwire

import "io"

// ByteBuffer is the canonical in-memory Reader/Writer: a growable byte
// slice with an independent cursor, so it can be written to, seeked
// within, and read back without a copy. HeapBlocks and the assembly
// pass's output both use one; it is also a convenient Writer for callers
// who don't need a real file.
type ByteBuffer struct {
	buf []byte
	pos int
}

// NewByteBuffer returns an empty, default-constructed ByteBuffer.
func NewByteBuffer() *ByteBuffer {
	return &ByteBuffer{}
}

// NewByteBufferFrom wraps existing bytes for reading; the cursor starts
// at 0. Writes extend or overwrite starting at the cursor, same as any
// other ByteBuffer.
func NewByteBufferFrom(b []byte) *ByteBuffer {
	return &ByteBuffer{buf: b}
}

func (b *ByteBuffer) Read(p []byte) (int, error) {
	if b.pos >= len(b.buf) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.pos:])
	b.pos += n
	return n, nil
}

func (b *ByteBuffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > len(b.buf) {
		grown := make([]byte, end)
		copy(grown, b.buf)
		b.buf = grown
	}
	copy(b.buf[b.pos:end], p)
	b.pos = end
	return len(p), nil
}

func (b *ByteBuffer) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(b.pos) + offset
	case io.SeekEnd:
		target = int64(len(b.buf)) + offset
	default:
		return 0, &Error{Kind: IoError, Offset: int64(b.pos), Cause: errInvalidWhence}
	}
	if target < 0 {
		return 0, &Error{Kind: IoError, Offset: int64(b.pos), Cause: errNegativePosition}
	}
	b.pos = int(target)
	return target, nil
}

// Bytes returns the buffer's contents. The caller must not mutate it
// while the ByteBuffer is still in use.
func (b *ByteBuffer) Bytes() []byte { return b.buf }

// Len returns the number of bytes written so far, independent of the
// cursor's current position.
func (b *ByteBuffer) Len() int { return len(b.buf) }

type bufferError string

func (e bufferError) Error() string { return string(e) }

const (
	errInvalidWhence    = bufferError("blockwire: invalid seek whence")
	errNegativePosition = bufferError("blockwire: negative seek position")
)
