package cgfx

import (
	"encoding/binary"
	"math"

	"github.com/hyliodon/blockwire"
)

// Category is the heap-category type for the cgfx example driver: one
// heap for inline record data, one for NUL-terminated strings, and one
// for the blob-compressed payload area.
// It satisfies cmp.Ordered directly since it's an int, and its zero
// value (CatDefault) is the default heap blockwire.WriteCtx always
// creates up front.
type Category int

const (
	CatDefault Category = iota
	CatStrings
	CatBlobs
)

func (c Category) String() string {
	switch c {
	case CatDefault:
		return "default"
	case CatStrings:
		return "strings"
	case CatBlobs:
		return "blobs"
	default:
		return "unknown"
	}
}

// Driver is the cgfx format driver: little-endian, relative 32-bit
// pointers resolved against the pointer field's own stream position,
// grounded on the single-file reference implementation's FormatCgfx.
type Driver struct{}

var _ blockwire.ReadDomain = Driver{}
var _ blockwire.WriteDomain = Driver{}

func (Driver) Endianness() blockwire.Endianness { return blockwire.Little }

// ReadUnk handles the primitive tags cgfx needs no record-level
// specialization for; everything else falls through to the field's own
// ReadUnboxed.
func (d Driver) ReadUnk(r blockwire.Reader, tag blockwire.TypeTag) (any, bool, error) {
	switch tag {
	case blockwire.TagU32:
		v, err := readU32(r)
		return v, true, err
	case blockwire.TagI32:
		raw, err := readU32(r)
		if err != nil {
			return nil, true, err
		}
		return int32(raw), true, nil
	case blockwire.TagF32:
		raw, err := readU32(r)
		if err != nil {
			return nil, true, err
		}
		return math.Float32frombits(raw), true, nil
	case blockwire.TagBool:
		raw, err := readU32(r)
		if err != nil {
			return nil, true, err
		}
		return raw != 0, true, nil
	default:
		return nil, false, nil
	}
}

// ReadBoxNullable decodes a relative pointer at r's current position: a
// zero value is null, otherwise the value is added to the pointer
// field's own offset to get the absolute target (the decoding is done by
// ReadPointer).
func (d Driver) ReadBoxNullable(r blockwire.Reader, readContent func(blockwire.Reader) (any, error)) (any, bool, error) {
	ptr, err := ReadPointer(r)
	if err != nil {
		return nil, false, err
	}
	if ptr == nil {
		return nil, false, nil
	}

	guard, err := blockwire.JumpTo(r, uint64(*ptr))
	if err != nil {
		return nil, false, err
	}
	defer guard.Release()

	value, err := readContent(r)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// ReadVec decodes a cgfx sequence: a u32 count followed by a relative
// pointer to count contiguous elements.
func (d Driver) ReadVec(r blockwire.Reader, readElem func(blockwire.Reader) (any, error)) ([]any, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, err
	}

	var out []any
	value, ok, err := d.ReadBoxNullable(r, func(r blockwire.Reader) (any, error) {
		elems := make([]any, 0, count)
		for i := uint32(0); i < count; i++ {
			e, err := readElem(r)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return elems, nil
	})
	if err != nil {
		return nil, err
	}
	if ok {
		out = value.([]any)
	}
	return out, nil
}

// WriteUnk mirrors ReadUnk on the write side.
func (d Driver) WriteUnk(w blockwire.Writer, tag blockwire.TypeTag, value any) (bool, error) {
	switch tag {
	case blockwire.TagU32:
		return true, writeU32(w, value.(uint32))
	case blockwire.TagI32:
		return true, writeU32(w, uint32(value.(int32)))
	case blockwire.TagF32:
		return true, writeU32(w, math.Float32bits(value.(float32)))
	case blockwire.TagBool:
		var v uint32
		if value.(bool) {
			v = 1
		}
		return true, writeU32(w, v)
	default:
		return false, nil
	}
}

// ApplyReference patches a previously emitted pointer placeholder with
// target's relative encoding: target - placeholderOffset, where
// placeholderOffset is w's cursor position when ApplyReference is
// called (assembly always positions the cursor at the placeholder
// before calling this).
func (d Driver) ApplyReference(w blockwire.Writer, target uint64) error {
	here, err := blockwire.Position(w)
	if err != nil {
		return err
	}
	return writeU32(w, uint32(target-here))
}

func readU32(r blockwire.Reader) (uint32, error) {
	var buf [4]byte
	if err := blockwire.ReadExact(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeU32(w blockwire.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}
