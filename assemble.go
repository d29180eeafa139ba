package blockwire

import (
	"cmp"
	"io"
	"log"
	"sort"
)

// pendingRelocation is a relocation whose target block hasn't been
// concatenated into the output yet: a placeholder sits at AbsOffset in
// the output, waiting for Token's block to be written so its final
// absolute offset is known.
type pendingRelocation struct {
	AbsOffset uint64
	Token     HeapToken
}

// Assemble concatenates every heap's blocks (ordered by category, then by
// construction order within a heap), patches every relocation via the
// driver's ApplyReference, and returns the finished byte vector. The
// relocation list is global across heaps — a block in one heap's category
// may hold a token pointing into another heap's block — matching the
// spec's chosen default over the source's per-heap variant.
//
// Assembly consumes ctx: every heap it visits is left in a well-defined
// but not reusable state, the same one-shot contract the source's context
// has (assembling twice from the same ctx value is unsupported, though
// nothing here stops a caller from doing it by mistake since Go has no
// linear types).
func Assemble[C cmp.Ordered](ctx *WriteCtx[C], driver WriteDomain, opts ...AssembleOption) ([]byte, error) {
	var o assembleOptions
	for _, opt := range opts {
		opt(&o)
	}

	categories := make([]C, len(ctx.shared.order))
	copy(categories, ctx.shared.order)
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	out := NewByteBuffer()
	var pending []pendingRelocation

	for _, cat := range categories {
		heap, ok := ctx.shared.heaps[cat]
		if !ok {
			// Still borrowed by an unreleased inner context: a
			// programming error on the caller's part (every
			// AllocateNextBlockAligned call reinstalls its heap before
			// returning), but assembly shouldn't panic over it — treat
			// it as contributing no blocks.
			continue
		}
		heapID := ctx.shared.ids[cat]
		log.Printf("blockwire: assembling heap %v (id %d, %d blocks)", cat, heapID, len(heap.blocks))

		for blockID, blk := range heap.blocks {
			blockStart := uint64(out.Len())
			if o.blockOffsets != nil {
				*o.blockOffsets = append(*o.blockOffsets, blockStart)
			}
			if _, err := out.Write(blk.Bytes()); err != nil {
				return nil, newIoError(int64(blockStart), err)
			}

			remaining := pending[:0]
			for _, pr := range pending {
				if pr.Token.HeapID == heapID && pr.Token.BlockID == uint32(blockID) {
					target := blockStart + pr.Token.LocalOffset
					if err := patchReference(out, pr.AbsOffset, target, driver); err != nil {
						return nil, err
					}
				} else {
					remaining = append(remaining, pr)
				}
			}
			pending = remaining

			for _, reloc := range blk.relocations {
				pending = append(pending, pendingRelocation{
					AbsOffset: blockStart + reloc.LocalOffset,
					Token:     reloc.Token,
				})
			}
		}
	}

	if len(pending) > 0 {
		return nil, newUnresolvedRelocation(pending[0].Token)
	}

	return out.Bytes(), nil
}

// patchReference seeks out to absOffset, asks the driver to encode
// target there, then restores out's cursor to the end so further
// concatenation keeps appending.
func patchReference(out *ByteBuffer, absOffset, target uint64, driver WriteDomain) error {
	if _, err := out.Seek(int64(absOffset), io.SeekStart); err != nil {
		return newIoError(int64(absOffset), err)
	}
	if err := driver.ApplyReference(out, target); err != nil {
		return err
	}
	if _, err := out.Seek(0, io.SeekEnd); err != nil {
		return newIoError(int64(out.Len()), err)
	}
	return nil
}
