package blockwire

// EndianSpecific is the one facet every format driver must implement: it
// reports the byte order the driver's own primitive codecs use. The core
// never assumes platform endianness and never infers it; it is always
// asked.
type EndianSpecific interface {
	Endianness() Endianness
}

// TypeTag is a stable identifier for the primitive and wrapper types a
// driver may special-case, standing in for the source's TypeId-based
// dynamic dispatch (see design note in SPEC_FULL.md §6 open question 4).
// A driver's ReadUnk/WriteUnk dispatch is keyed by TypeTag rather than by
// reflect.Type, so it can be a plain switch or map lookup on the tag
// value instead of a type switch.
type TypeTag int

const (
	TagUnknown TypeTag = iota
	TagU8
	TagU16
	TagU32
	TagU64
	TagI8
	TagI16
	TagI32
	TagI64
	TagF32
	TagF64
	TagBool
	TagString
	TagCString
	TagPointer
)

func (t TypeTag) String() string {
	switch t {
	case TagU8:
		return "u8"
	case TagU16:
		return "u16"
	case TagU32:
		return "u32"
	case TagU64:
		return "u64"
	case TagI8:
		return "i8"
	case TagI16:
		return "i16"
	case TagI32:
		return "i32"
	case TagI64:
		return "i64"
	case TagF32:
		return "f32"
	case TagF64:
		return "f64"
	case TagBool:
		return "bool"
	case TagString:
		return "string"
	case TagCString:
		return "cstring"
	case TagPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// ReadDomain is the read-side half of a format driver's capability set.
// The core consumes it to chase pointers (ReadBoxNullable) and to let a
// driver special-case the decode of a given tag (ReadUnk) before falling
// back to a type's own Readable implementation; it never reaches into a
// driver's private state beyond these methods.
type ReadDomain interface {
	EndianSpecific

	// ReadUnk gives the driver a chance to specialize the read of tag.
	// ok is false when the driver has no specialization and the caller
	// should fall through to the target type's own Readable
	// implementation.
	ReadUnk(r Reader, tag TypeTag) (value any, ok bool, err error)

	// ReadBoxNullable decodes a pointer at the reader's current position.
	// If the decoded pointer is null, it returns ok=false without
	// invoking readContent. Otherwise it jumps to the pointer's target
	// under a SeekGuard, invokes readContent there, and restores the
	// reader's position before returning.
	ReadBoxNullable(r Reader, readContent func(Reader) (any, error)) (value any, ok bool, err error)

	// ReadVec decodes a length-prefixed sequence: typically a count
	// followed by a pointer to a block holding count contiguous
	// elements. readElem is invoked count times positioned at each
	// element in turn.
	ReadVec(r Reader, readElem func(Reader) (any, error)) ([]any, error)
}

// WriteDomain is the write-side half of a format driver's capability set.
// Only ApplyReference is consumed by the core itself (the assembly pass);
// WriteUnk exists for generated record code to call, the same way ReadUnk
// is consumed on the read side.
type WriteDomain interface {
	EndianSpecific

	// WriteUnk gives the driver a chance to specialize the write of tag.
	// ok is false when the driver has no specialization.
	WriteUnk(w Writer, tag TypeTag, value any) (ok bool, err error)

	// ApplyReference is the relocation-application primitive: the
	// assembly pass positions w's cursor at a previously emitted
	// placeholder and calls ApplyReference with the target's final
	// absolute offset. The driver writes its pointer encoding — absolute
	// or offset-relative, at whatever width it uses — at that position.
	// It must not move the cursor anywhere other than past the bytes it
	// wrote; assembly restores the cursor to the output's end itself.
	ApplyReference(w Writer, target uint64) error
}
