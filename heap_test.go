package blockwire_test

import (
	"io"
	"testing"

	"github.com/hyliodon/blockwire"
)

func TestWriteHeapStartsWithOneBlock(t *testing.T) {
	h := blockwire.NewWriteHeap()
	if got := len(h.Blocks()); got != 1 {
		t.Fatalf("len(Blocks()) = %d, want 1", got)
	}
}

func TestWriteHeapAlignToPadsFromCurrentEnd(t *testing.T) {
	h := blockwire.NewWriteHeap()
	if _, err := h.CurWriter().Write([]byte{1, 2, 3}); err != nil {
		t.Fatalf("Write failed: %s", err)
	}
	if err := h.AlignTo(4); err != nil {
		t.Fatalf("AlignTo failed: %s", err)
	}
	if got := len(h.Blocks()[0].Bytes()); got != 4 {
		t.Fatalf("block len = %d, want 4", got)
	}

	// Re-aligning at an already-aligned position is a no-op.
	if err := h.AlignTo(4); err != nil {
		t.Fatalf("AlignTo failed: %s", err)
	}
	if got := len(h.Blocks()[0].Bytes()); got != 4 {
		t.Fatalf("block len after no-op align = %d, want 4", got)
	}
}

func TestWriteHeapAlignToZeroIsNoop(t *testing.T) {
	h := blockwire.NewWriteHeap()
	if _, err := h.CurWriter().Write([]byte{1}); err != nil {
		t.Fatalf("Write failed: %s", err)
	}
	if err := h.AlignTo(0); err != nil {
		t.Fatalf("AlignTo(0) failed: %s", err)
	}
	if got := len(h.Blocks()[0].Bytes()); got != 1 {
		t.Errorf("block len = %d, want 1 (AlignTo(0) must be a no-op)", got)
	}
}

func TestWriteHeapSeekToNewBlockAppendsWhenLast(t *testing.T) {
	h := blockwire.NewWriteHeap()
	tok, err := h.SeekToNewBlock(0, 7)
	if err != nil {
		t.Fatalf("SeekToNewBlock failed: %s", err)
	}
	if got := len(h.Blocks()); got != 2 {
		t.Fatalf("len(Blocks()) = %d, want 2", got)
	}
	want := blockwire.HeapToken{HeapID: 7, BlockID: 1, LocalOffset: 0}
	if tok != want {
		t.Errorf("token = %+v, want %+v", tok, want)
	}
}

func TestWriteHeapSeekToNewBlockAppendsAgainFromLastBlock(t *testing.T) {
	h := blockwire.NewWriteHeap()
	if _, err := h.SeekToNewBlock(0, 0); err != nil {
		t.Fatalf("SeekToNewBlock failed: %s", err)
	}
	// A zero-length write leaves the heap parked at block 1.
	if _, err := h.CurWriter().Write(nil); err != nil {
		t.Fatalf("Write failed: %s", err)
	}

	before := len(h.Blocks())
	// current is 1 (the last block); SeekToNewBlock from here must append
	// a third block rather than reuse block 1 again.
	tok, err := h.SeekToNewBlock(0, 0)
	if err != nil {
		t.Fatalf("SeekToNewBlock failed: %s", err)
	}
	if got := len(h.Blocks()); got != before+1 {
		t.Fatalf("len(Blocks()) = %d, want %d", got, before+1)
	}
	if tok.BlockID != uint32(before) {
		t.Errorf("BlockID = %d, want %d", tok.BlockID, before)
	}
}

func TestWriteHeapWriteTokenEmitsZeroPlaceholder(t *testing.T) {
	h := blockwire.NewWriteHeap()
	tok := blockwire.HeapToken{HeapID: 1, BlockID: 2, LocalOffset: 16}
	if err := h.WriteToken(tok, 4); err != nil {
		t.Fatalf("WriteToken failed: %s", err)
	}
	blk := h.Blocks()[0]
	if got := len(blk.Bytes()); got != 4 {
		t.Fatalf("placeholder len = %d, want 4", got)
	}
	for i, b := range blk.Bytes() {
		if b != 0 {
			t.Errorf("placeholder byte %d = %x, want 0", i, b)
		}
	}
}

func TestWriteHeapTokenAtCurrentPosReflectsCursor(t *testing.T) {
	h := blockwire.NewWriteHeap()
	if _, err := h.CurWriter().Write([]byte{0, 0, 0}); err != nil {
		t.Fatalf("Write failed: %s", err)
	}
	tok, err := h.HeapTokenAtCurrentPos(3)
	if err != nil {
		t.Fatalf("HeapTokenAtCurrentPos failed: %s", err)
	}
	want := blockwire.HeapToken{HeapID: 3, BlockID: 0, LocalOffset: 3}
	if tok != want {
		t.Errorf("token = %+v, want %+v", tok, want)
	}
}

func TestWriteHeapCurWriterIsSeekable(t *testing.T) {
	h := blockwire.NewWriteHeap()
	w := h.CurWriter()
	if _, err := w.Write([]byte("abcdef")); err != nil {
		t.Fatalf("Write failed: %s", err)
	}
	if _, err := w.Seek(2, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %s", err)
	}
	if _, err := w.Write([]byte("X")); err != nil {
		t.Fatalf("Write failed: %s", err)
	}
	if got := string(h.Blocks()[0].Bytes()); got != "abXdef" {
		t.Errorf("Bytes() = %q, want %q", got, "abXdef")
	}
}
