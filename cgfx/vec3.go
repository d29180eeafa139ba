package cgfx

import "github.com/hyliodon/blockwire"

// Vec3 is a plain inline record: three consecutive f32 fields, no
// pointer indirection. Grounded on the reference implementation's Vec3
// example type.
type Vec3 struct {
	X, Y, Z float32
}

func (v *Vec3) ReadUnboxed(r blockwire.Reader, d blockwire.ReadDomain) error {
	var err error
	if v.X, err = ReadF32(r, d); err != nil {
		return err
	}
	if v.Y, err = ReadF32(r, d); err != nil {
		return err
	}
	if v.Z, err = ReadF32(r, d); err != nil {
		return err
	}
	return nil
}

func (v *Vec3) WriteUnboxed(ctx *blockwire.WriteCtx[Category], d blockwire.WriteDomain) error {
	if err := WriteF32(ctx, d, v.X); err != nil {
		return err
	}
	if err := WriteF32(ctx, d, v.Y); err != nil {
		return err
	}
	return WriteF32(ctx, d, v.Z)
}
