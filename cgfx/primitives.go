package cgfx

import "github.com/hyliodon/blockwire"

// ReadU32 reads a plain u32 field, consulting the driver's
// specialization table first the way generated record code does for
// every field of a tagged type.
func ReadU32(r blockwire.Reader, d blockwire.ReadDomain) (uint32, error) {
	if v, ok, err := d.ReadUnk(r, blockwire.TagU32); err != nil {
		return 0, err
	} else if ok {
		return v.(uint32), nil
	}
	raw, err := readU32(r)
	return raw, err
}

// ReadI32 reads a plain i32 field.
func ReadI32(r blockwire.Reader, d blockwire.ReadDomain) (int32, error) {
	if v, ok, err := d.ReadUnk(r, blockwire.TagI32); err != nil {
		return 0, err
	} else if ok {
		return v.(int32), nil
	}
	raw, err := readU32(r)
	return int32(raw), err
}

// ReadF32 reads an IEEE-754 single-precision float field.
func ReadF32(r blockwire.Reader, d blockwire.ReadDomain) (float32, error) {
	if v, ok, err := d.ReadUnk(r, blockwire.TagF32); err != nil {
		return 0, err
	} else if ok {
		return v.(float32), nil
	}
	return 0, blockwire.NewDriverRefusedError("f32")
}

// ReadBool reads a u32-width boolean field (nonzero is true), cgfx's
// convention for boolean flags.
func ReadBool(r blockwire.Reader, d blockwire.ReadDomain) (bool, error) {
	if v, ok, err := d.ReadUnk(r, blockwire.TagBool); err != nil {
		return false, err
	} else if ok {
		return v.(bool), nil
	}
	return false, blockwire.NewDriverRefusedError("bool")
}

// ReadRelativeString decodes a relative pointer to a NUL-terminated
// UTF-8 string, cgfx's name/label encoding.
func ReadRelativeString(r blockwire.Reader, d blockwire.ReadDomain) (string, error) {
	var out string
	_, ok, err := d.ReadBoxNullable(r, func(r blockwire.Reader) (any, error) {
		s, err := blockwire.ReadCStr(r)
		if err != nil {
			return nil, err
		}
		out = s
		return s, nil
	})
	if err != nil {
		return "", err
	}
	if !ok {
		pos, _ := blockwire.Position(r)
		return "", blockwire.NewUnexpectedNullError(int64(pos), "string")
	}
	return out, nil
}

// WriteU32 writes a plain u32 field.
func WriteU32(w blockwire.Writer, d blockwire.WriteDomain, v uint32) error {
	if ok, err := d.WriteUnk(w, blockwire.TagU32, v); err != nil {
		return err
	} else if ok {
		return nil
	}
	return writeU32(w, v)
}

// WriteI32 writes a plain i32 field.
func WriteI32(w blockwire.Writer, d blockwire.WriteDomain, v int32) error {
	if ok, err := d.WriteUnk(w, blockwire.TagI32, v); err != nil {
		return err
	} else if ok {
		return nil
	}
	return writeU32(w, uint32(v))
}

// WriteF32 writes an IEEE-754 single-precision float field.
func WriteF32(w blockwire.Writer, d blockwire.WriteDomain, v float32) error {
	ok, err := d.WriteUnk(w, blockwire.TagF32, v)
	if err != nil {
		return err
	}
	if !ok {
		return blockwire.NewDriverRefusedError("f32")
	}
	return nil
}

// WriteBool writes a u32-width boolean field.
func WriteBool(w blockwire.Writer, d blockwire.WriteDomain, v bool) error {
	ok, err := d.WriteUnk(w, blockwire.TagBool, v)
	if err != nil {
		return err
	}
	if !ok {
		return blockwire.NewDriverRefusedError("bool")
	}
	return nil
}

// WriteRelativeString allocates a block in the strings heap holding s's
// NUL-terminated bytes and writes a pointer placeholder to it at ctx's
// current position.
func WriteRelativeString(ctx *blockwire.WriteCtx[Category], s string) error {
	tok, err := ctx.AllocateNextBlock(categoryPtr(CatStrings), func(inner *blockwire.WriteCtx[Category]) error {
		return blockwire.WriteCStr(inner, s)
	})
	if err != nil {
		return err
	}
	return ctx.WriteToken(tok, 4)
}

func categoryPtr(c Category) *Category { return &c }
