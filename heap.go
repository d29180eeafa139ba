package blockwire

// relocation records that, at LocalOffset inside the owning HeapBlock's
// bytes, a placeholder was written whose final value must be derived from
// Token once Token's target block has an absolute offset.
type relocation struct {
	LocalOffset uint64
	Token       HeapToken
}

// HeapBlock is a single contiguous byte buffer plus the relocations
// recorded against it. It is the assembly unit: the final output is the
// concatenation of every block across every heap, in heap-category then
// construction order.
type HeapBlock struct {
	buf         *ByteBuffer
	relocations []relocation
}

func newHeapBlock() *HeapBlock {
	return &HeapBlock{buf: NewByteBuffer()}
}

// Bytes returns the block's raw contents, including unresolved
// placeholder bytes (assembly patches those in the output copy, not here).
func (b *HeapBlock) Bytes() []byte { return b.buf.Bytes() }

// WriteHeap is an ordered, append-only collection of blocks sharing a
// category. It always has at least one block: construction seeds it with
// a single empty block, the default write target.
type WriteHeap struct {
	blocks  []*HeapBlock
	current int
}

// NewWriteHeap returns a heap seeded with one empty block.
func NewWriteHeap() *WriteHeap {
	return &WriteHeap{blocks: []*HeapBlock{newHeapBlock()}, current: 0}
}

// Blocks returns the heap's blocks in construction order. Used by
// assembly; callers should treat the result as read-only.
func (h *WriteHeap) Blocks() []*HeapBlock { return h.blocks }

// CurWriter returns a Writer into the current block's byte buffer.
func (h *WriteHeap) CurWriter() Writer { return h.blocks[h.current].buf }

// WriteToken records a relocation at the current block's current
// position, naming token as the value to resolve there, then emits width
// zero bytes as a placeholder. width is the on-wire pointer size the
// driver uses (4 for every driver shipped with this package).
func (h *WriteHeap) WriteToken(token HeapToken, width int) error {
	blk := h.blocks[h.current]
	pos, err := Position(blk.buf)
	if err != nil {
		return err
	}
	blk.relocations = append(blk.relocations, relocation{LocalOffset: pos, Token: token})
	_, err = blk.buf.Write(make([]byte, width))
	if err != nil {
		return newIoError(int64(pos), err)
	}
	return nil
}

// AlignTo pads the current block with zero bytes until its position is a
// multiple of alignment. alignment == 0 is a no-op, not an error.
func (h *WriteHeap) AlignTo(alignment uint64) error {
	if alignment == 0 {
		return nil
	}
	blk := h.blocks[h.current]
	pos, err := Position(blk.buf)
	if err != nil {
		return err
	}
	rem := pos % alignment
	if rem == 0 {
		return nil
	}
	pad := alignment - rem
	if _, err := blk.buf.Write(make([]byte, pad)); err != nil {
		return newIoError(int64(pos), err)
	}
	return nil
}

// HeapTokenAtCurrentPos mints a token pointing at the current block's
// current position.
func (h *WriteHeap) HeapTokenAtCurrentPos(heapID uint32) (HeapToken, error) {
	blk := h.blocks[h.current]
	pos, err := Position(blk.buf)
	if err != nil {
		return HeapToken{}, err
	}
	return HeapToken{HeapID: heapID, BlockID: uint32(h.current), LocalOffset: pos}, nil
}

// SeekToNewBlock moves the heap's write head to a new block: if the
// current block is the last one, a fresh empty block is appended and
// becomes current; otherwise current advances to the existing next block.
// Either way the block is then aligned to alignment from its current end
// (not from its start — re-entering a block must not rewind it), and a
// token to the resulting position is returned.
func (h *WriteHeap) SeekToNewBlock(alignment uint64, heapID uint32) (HeapToken, error) {
	if h.current == len(h.blocks)-1 {
		h.blocks = append(h.blocks, newHeapBlock())
	}
	h.current++
	if err := h.AlignTo(alignment); err != nil {
		return HeapToken{}, err
	}
	return h.HeapTokenAtCurrentPos(heapID)
}
