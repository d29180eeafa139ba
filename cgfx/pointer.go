package cgfx

import "github.com/hyliodon/blockwire"

// ReadPointer decodes a relative pointer at r's current position and
// resolves it to an absolute offset, or returns nil if the raw value was
// zero (cgfx's null encoding). The position read relative to is the
// pointer field's own offset, taken before the 4 bytes are consumed.
func ReadPointer(r blockwire.Reader) (*uint64, error) {
	here, err := blockwire.Position(r)
	if err != nil {
		return nil, err
	}
	raw, err := readU32(r)
	if err != nil {
		return nil, err
	}
	if raw == 0 {
		return nil, nil
	}
	abs := here + uint64(raw)
	return &abs, nil
}

// ReadNonNullPointer is ReadPointer with UnexpectedNull raised instead of
// a nil result, for fields the format guarantees are never optional.
func ReadNonNullPointer(r blockwire.Reader, field string) (uint64, error) {
	ptr, err := ReadPointer(r)
	if err != nil {
		return 0, err
	}
	if ptr == nil {
		pos, _ := blockwire.Position(r)
		return 0, blockwire.NewUnexpectedNullError(int64(pos), field)
	}
	return *ptr, nil
}

// WriteNullPointer writes cgfx's null encoding: four zero bytes, no
// relocation recorded.
func WriteNullPointer(w blockwire.Writer) error {
	return writeU32(w, 0)
}
