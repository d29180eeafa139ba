package cgfx

import "github.com/hyliodon/blockwire"

// Npc is the reference record from the 3DS actor table this driver was
// distilled from: a relative-pointer name, an inline Vec3 position, and
// a boolean visibility flag. It exists as a worked example of a
// ReadUnboxed/WriteUnboxed pair a real generated record would look like.
type Npc struct {
	Name      string
	Position  Vec3
	IsVisible bool
}

func (n *Npc) ReadUnboxed(r blockwire.Reader, d blockwire.ReadDomain) error {
	name, err := ReadRelativeString(r, d)
	if err != nil {
		return err
	}
	n.Name = name

	if err := n.Position.ReadUnboxed(r, d); err != nil {
		return err
	}

	visible, err := ReadBool(r, d)
	if err != nil {
		return err
	}
	n.IsVisible = visible
	return nil
}

func (n *Npc) WriteUnboxed(ctx *blockwire.WriteCtx[Category], d blockwire.WriteDomain) error {
	if err := WriteRelativeString(ctx, n.Name); err != nil {
		return err
	}
	if err := n.Position.WriteUnboxed(ctx, d); err != nil {
		return err
	}
	return WriteBool(ctx, d, n.IsVisible)
}
