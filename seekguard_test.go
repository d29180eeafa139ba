package blockwire_test

import (
	"io"
	"testing"

	"github.com/hyliodon/blockwire"
)

func TestSeekGuardRestoresPosition(t *testing.T) {
	b := blockwire.NewByteBufferFrom([]byte("0123456789"))
	if _, err := b.Seek(3, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %s", err)
	}

	guard, err := blockwire.NewSeekGuard(b)
	if err != nil {
		t.Fatalf("NewSeekGuard failed: %s", err)
	}

	if _, err := b.Seek(8, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %s", err)
	}
	guard.Release()

	pos, err := blockwire.Position(b)
	if err != nil {
		t.Fatalf("Position failed: %s", err)
	}
	if pos != 3 {
		t.Errorf("Position after Release() = %d, want 3", pos)
	}
}

func TestSeekGuardRestoresOnPanic(t *testing.T) {
	b := blockwire.NewByteBufferFrom([]byte("0123456789"))
	if _, err := b.Seek(2, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %s", err)
	}

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic to propagate past deferred Release")
			}
		}()

		guard, err := blockwire.NewSeekGuard(b)
		if err != nil {
			t.Fatalf("NewSeekGuard failed: %s", err)
		}
		defer guard.Release()

		if _, err := b.Seek(9, io.SeekStart); err != nil {
			t.Fatalf("Seek failed: %s", err)
		}
		panic("boom")
	}()

	pos, err := blockwire.Position(b)
	if err != nil {
		t.Fatalf("Position failed: %s", err)
	}
	if pos != 2 {
		t.Errorf("Position after panic unwind = %d, want 2", pos)
	}
}

func TestJumpToSeeksAndReleaseRestores(t *testing.T) {
	b := blockwire.NewByteBufferFrom([]byte("0123456789"))
	if _, err := b.Seek(5, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %s", err)
	}

	guard, err := blockwire.JumpTo(b, 1)
	if err != nil {
		t.Fatalf("JumpTo failed: %s", err)
	}
	pos, err := blockwire.Position(b)
	if err != nil {
		t.Fatalf("Position failed: %s", err)
	}
	if pos != 1 {
		t.Fatalf("Position after JumpTo = %d, want 1", pos)
	}
	guard.Release()

	pos, err = blockwire.Position(b)
	if err != nil {
		t.Fatalf("Position failed: %s", err)
	}
	if pos != 5 {
		t.Errorf("Position after Release() = %d, want 5", pos)
	}
}

func TestJumpToNegativeTargetFails(t *testing.T) {
	b := blockwire.NewByteBufferFrom([]byte("0123456789"))
	if _, err := blockwire.JumpTo(b, ^uint64(0)); err == nil {
		t.Error("expected error jumping to an overflowing offset, got none")
	}
}
