package blockwire

import "cmp"

// Readable is the contract a record type provides to read its fields
// inline at the reader's current position. Generated code (see
// internal/bwgen) sequences one call per field, consulting the driver's
// ReadUnk for fields that request a specialization and falling back to
// the field type's own ReadUnboxed otherwise.
type Readable interface {
	ReadUnboxed(r Reader, d ReadDomain) error
}

// BoxedReadable is implemented by record types whose on-wire
// representation is a pointer to the record rather than the record
// inline. ReadBoxed decodes that pointer, jumps to its target under a
// SeekGuard, and invokes ReadUnboxed — exactly the default
// from_reader-equals-from_reader_unboxed rule the spec describes, made
// explicit as a second method rather than an overridable default (Go
// interfaces have no default method bodies).
type BoxedReadable interface {
	Readable
	ReadBoxed(r Reader, d ReadDomain) error
}

// ReadRecord reads target at the reader's current position, using its
// boxed contract when target implements one and falling back to the
// unboxed contract otherwise.
func ReadRecord(r Reader, d ReadDomain, target Readable) error {
	if boxed, ok := target.(BoxedReadable); ok {
		return boxed.ReadBoxed(r, d)
	}
	return target.ReadUnboxed(r, d)
}

// Writable is the write-side contract symmetric to Readable: it writes
// the record's fields, interleaving raw writes and nested block
// allocations, into ctx's default heap.
type Writable[C cmp.Ordered] interface {
	WriteUnboxed(ctx *WriteCtx[C], d WriteDomain) error
}

// BoxedWritable is implemented by record types whose on-wire
// representation is a pointer: WriteBoxed allocates a block, writes the
// record into it via WriteUnboxed, and returns a token the caller writes
// into its own stream as a placeholder (see WriteCtx.WriteToken).
type BoxedWritable[C cmp.Ordered] interface {
	Writable[C]
	WriteBoxed(ctx *WriteCtx[C], d WriteDomain) (HeapToken, error)
}

// WriteRecord writes value at ctx's current position using its unboxed
// contract. For a record that should be written as a pointer, use
// WriteBoxedRecord instead to get back the token to patch into the
// parent.
func WriteRecord[C cmp.Ordered](ctx *WriteCtx[C], d WriteDomain, value Writable[C]) error {
	return value.WriteUnboxed(ctx, d)
}

// WriteBoxedRecord allocates a new block in category (ctx's default
// heap if nil), aligned to alignment, writes value's unboxed form into
// it, and returns a token to the block's start. The caller is
// responsible for writing that token into its own stream with
// WriteHeap.WriteToken/WriteCtx.WriteToken so the assembly pass can patch
// it.
func WriteBoxedRecord[C cmp.Ordered](ctx *WriteCtx[C], category *C, alignment uint64, d WriteDomain, value Writable[C]) (HeapToken, error) {
	return ctx.AllocateNextBlockAligned(category, alignment, func(inner *WriteCtx[C]) error {
		return value.WriteUnboxed(inner, d)
	})
}

// WriteSlice allocates a new block in category (ctx's default heap if
// nil) holding count contiguous elements, invoking writeElem(inner, i) for
// each index in turn with the inner context of that block, and returns a token to the block's start. Pairs
// with a driver's length-prefixed sequence encoding: the caller writes
// the count itself (a plain primitive write, not part of this helper)
// followed by the returned token.
func WriteSlice[C cmp.Ordered](ctx *WriteCtx[C], category *C, count int, writeElem func(inner *WriteCtx[C], index int) error) (HeapToken, error) {
	return ctx.AllocateNextBlock(category, func(inner *WriteCtx[C]) error {
		for i := 0; i < count; i++ {
			if err := writeElem(inner, i); err != nil {
				return err
			}
		}
		return nil
	})
}
