package blockwire_test

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/hyliodon/blockwire"
)

// point3 is a plain inline record: three little-endian uint32 fields.
type point3 struct {
	X, Y, Z uint32
}

func (p *point3) ReadUnboxed(r blockwire.Reader, d blockwire.ReadDomain) error {
	buf := make([]byte, 12)
	if err := blockwire.ReadExact(r, buf); err != nil {
		return err
	}
	p.X = binary.LittleEndian.Uint32(buf[0:4])
	p.Y = binary.LittleEndian.Uint32(buf[4:8])
	p.Z = binary.LittleEndian.Uint32(buf[8:12])
	return nil
}

func (p *point3) WriteUnboxed(ctx *blockwire.WriteCtx[category], d blockwire.WriteDomain) error {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:4], p.X)
	binary.LittleEndian.PutUint32(buf[4:8], p.Y)
	binary.LittleEndian.PutUint32(buf[8:12], p.Z)
	_, err := ctx.Write(buf[:])
	return err
}

func TestWriteRecordAndReadRecordInlineRoundTrip(t *testing.T) {
	ctx := blockwire.NewWriteCtx[category]()
	src := &point3{X: 1, Y: 2, Z: 3}
	if err := blockwire.WriteRecord[category](ctx, fakeDriver{}, src); err != nil {
		t.Fatalf("WriteRecord failed: %s", err)
	}

	out, err := blockwire.Assemble(ctx, fakeDriver{})
	if err != nil {
		t.Fatalf("Assemble failed: %s", err)
	}

	var got point3
	r := blockwire.NewByteBufferFrom(out)
	if err := blockwire.ReadRecord(r, nil, &got); err != nil {
		t.Fatalf("ReadRecord failed: %s", err)
	}
	if got != *src {
		t.Errorf("round trip = %+v, want %+v", got, *src)
	}
}

func TestWriteBoxedRecordReturnsTokenToPayload(t *testing.T) {
	ctx := blockwire.NewWriteCtx[category]()
	src := &point3{X: 10, Y: 20, Z: 30}

	tok, err := blockwire.WriteBoxedRecord[category](ctx, nil, 0, fakeDriver{}, src)
	if err != nil {
		t.Fatalf("WriteBoxedRecord failed: %s", err)
	}
	if err := ctx.WriteToken(tok, 4); err != nil {
		t.Fatalf("WriteToken failed: %s", err)
	}

	out, err := blockwire.Assemble(ctx, fakeDriver{})
	if err != nil {
		t.Fatalf("Assemble failed: %s", err)
	}

	ptr := binary.LittleEndian.Uint32(out[0:4])
	r := blockwire.NewByteBufferFrom(out)
	if _, err := r.Seek(int64(ptr), io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %s", err)
	}
	var got point3
	if err := got.ReadUnboxed(r, nil); err != nil {
		t.Fatalf("ReadUnboxed failed: %s", err)
	}
	if got != *src {
		t.Errorf("boxed round trip = %+v, want %+v", got, *src)
	}
}

func TestWriteSliceWritesContiguousElements(t *testing.T) {
	ctx := blockwire.NewWriteCtx[category]()
	elems := []point3{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}}

	tok, err := blockwire.WriteSlice[category](ctx, nil, len(elems), func(inner *blockwire.WriteCtx[category], i int) error {
		return elems[i].WriteUnboxed(inner, fakeDriver{})
	})
	if err != nil {
		t.Fatalf("WriteSlice failed: %s", err)
	}
	if err := ctx.WriteToken(tok, 4); err != nil {
		t.Fatalf("WriteToken failed: %s", err)
	}

	out, err := blockwire.Assemble(ctx, fakeDriver{})
	if err != nil {
		t.Fatalf("Assemble failed: %s", err)
	}

	ptr := binary.LittleEndian.Uint32(out[0:4])
	r := blockwire.NewByteBufferFrom(out)
	if _, err := r.Seek(int64(ptr), io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %s", err)
	}
	for i, want := range elems {
		var got point3
		if err := got.ReadUnboxed(r, nil); err != nil {
			t.Fatalf("element %d: ReadUnboxed failed: %s", i, err)
		}
		if got != want {
			t.Errorf("element %d = %+v, want %+v", i, got, want)
		}
	}
}
