package blockwire_test

import (
	"testing"

	"github.com/hyliodon/blockwire"
)

func TestHeapTokenLessOrdersByBlockThenOffset(t *testing.T) {
	a := blockwire.HeapToken{HeapID: 0, BlockID: 1, LocalOffset: 10}
	b := blockwire.HeapToken{HeapID: 0, BlockID: 2, LocalOffset: 0}
	c := blockwire.HeapToken{HeapID: 0, BlockID: 1, LocalOffset: 20}

	if !a.Less(b) {
		t.Error("lower BlockID should sort first regardless of LocalOffset")
	}
	if b.Less(a) {
		t.Error("higher BlockID should not sort first")
	}
	if !a.Less(c) {
		t.Error("same BlockID should compare by LocalOffset")
	}
	if a.Less(a) {
		t.Error("a token should not be Less than itself")
	}
}

func TestHeapTokenLessIgnoresHeapID(t *testing.T) {
	a := blockwire.HeapToken{HeapID: 0, BlockID: 1, LocalOffset: 5}
	b := blockwire.HeapToken{HeapID: 99, BlockID: 1, LocalOffset: 5}
	if a.Less(b) || b.Less(a) {
		t.Error("tokens differing only by HeapID should compare equal under Less")
	}
}
