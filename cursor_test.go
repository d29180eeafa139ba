package blockwire_test

import (
	"errors"
	"io"
	"testing"

	"github.com/hyliodon/blockwire"
)

func TestPositionAndSetPosition(t *testing.T) {
	b := blockwire.NewByteBufferFrom([]byte("0123456789"))

	if err := blockwire.SetPosition(b, 4); err != nil {
		t.Fatalf("SetPosition failed: %s", err)
	}
	pos, err := blockwire.Position(b)
	if err != nil {
		t.Fatalf("Position failed: %s", err)
	}
	if pos != 4 {
		t.Errorf("Position() = %d, want 4", pos)
	}
}

func TestReadExactShortReadFails(t *testing.T) {
	b := blockwire.NewByteBufferFrom([]byte("ab"))
	buf := make([]byte, 4)
	err := blockwire.ReadExact(b, buf)
	if err == nil {
		t.Fatal("expected error on short read, got none")
	}
	var bwErr *blockwire.Error
	if !errors.As(err, &bwErr) {
		t.Fatalf("error is not *blockwire.Error: %T", err)
	}
	if bwErr.Kind != blockwire.IoError {
		t.Errorf("Kind = %s, want IoError", bwErr.Kind)
	}
}

func TestReadStrRoundTrip(t *testing.T) {
	b := blockwire.NewByteBuffer()
	if err := blockwire.WriteStr(b, "hello"); err != nil {
		t.Fatalf("WriteStr failed: %s", err)
	}
	if _, err := b.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %s", err)
	}
	got, err := blockwire.ReadStr(b, 5)
	if err != nil {
		t.Fatalf("ReadStr failed: %s", err)
	}
	if got != "hello" {
		t.Errorf("ReadStr() = %q, want %q", got, "hello")
	}
}

func TestReadStrInvalidUTF8(t *testing.T) {
	b := blockwire.NewByteBufferFrom([]byte{0xff, 0xfe})
	_, err := blockwire.ReadStr(b, 2)
	if err == nil {
		t.Fatal("expected error for invalid utf-8, got none")
	}
	if !errors.Is(err, blockwire.ErrInvalidEncoding) {
		t.Errorf("error = %v, want ErrInvalidEncoding", err)
	}
}

func TestCStrRoundTrip(t *testing.T) {
	b := blockwire.NewByteBuffer()
	if err := blockwire.WriteCStr(b, "npc_name"); err != nil {
		t.Fatalf("WriteCStr failed: %s", err)
	}
	// A second write to prove the terminator stopped the read, not EOF.
	if err := blockwire.WriteStr(b, "trailing"); err != nil {
		t.Fatalf("WriteStr failed: %s", err)
	}

	if _, err := b.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %s", err)
	}
	got, err := blockwire.ReadCStr(b)
	if err != nil {
		t.Fatalf("ReadCStr failed: %s", err)
	}
	if got != "npc_name" {
		t.Errorf("ReadCStr() = %q, want %q", got, "npc_name")
	}

	rest, err := blockwire.ReadStr(b, len("trailing"))
	if err != nil {
		t.Fatalf("ReadStr failed: %s", err)
	}
	if rest != "trailing" {
		t.Errorf("trailing bytes = %q, want %q", rest, "trailing")
	}
}

func TestCStrMissingTerminatorFails(t *testing.T) {
	b := blockwire.NewByteBufferFrom([]byte("no terminator"))
	_, err := blockwire.ReadCStr(b)
	if err == nil {
		t.Fatal("expected error reading unterminated cstring, got none")
	}
}
