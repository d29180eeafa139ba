package blockwire

import (
	"cmp"
	"log"
)

// ctxShared is the state that every WriteCtx derived from the same root
// shares: the category -> heap mapping, each category's stable heap id
// (assigned in first-use order), and construction options. Only the
// root WriteCtx and its inner contexts point at the same ctxShared; this
// is what lets a borrowed heap still be reachable by its category from
// deeper, unrelated allocate_next_block calls.
type ctxShared[C cmp.Ordered] struct {
	heaps map[C]*WriteHeap
	order []C
	ids   map[C]uint32
	opts  ctxOptions
}

// WriteCtx is a stack-like owner of heaps: one heap per format-defined
// category, plus a distinguished default heap (stored under C's zero
// value, which is exactly why HeapCategory types must be
// default-constructible). A WriteCtx returned by an inner allocation
// callback additionally treats one specific category's heap as
// "borrowed": that heap has been removed from the shared map for the
// duration of the callback so the parent cannot observe it mid-write, and
// this inner context resolves its own default heap directly against the
// borrowed value instead of the (now absent) map entry.
type WriteCtx[C cmp.Ordered] struct {
	shared          *ctxShared[C]
	defaultCategory C
	borrowed        *WriteHeap
}

// CtxOption configures a WriteCtx at construction.
type CtxOption func(*ctxOptions)

type ctxOptions struct {
	initialHeapCapacity int
}

// WithInitialHeapCapacity preallocates room for n categories besides the
// default heap.
func WithInitialHeapCapacity(n int) CtxOption {
	return func(o *ctxOptions) { o.initialHeapCapacity = n }
}

// NewWriteCtx returns a root WriteCtx with its default heap already
// created at heap id 0.
func NewWriteCtx[C cmp.Ordered](opts ...CtxOption) *WriteCtx[C] {
	var o ctxOptions
	for _, opt := range opts {
		opt(&o)
	}
	shared := &ctxShared[C]{
		heaps: make(map[C]*WriteHeap, o.initialHeapCapacity+1),
		ids:   make(map[C]uint32, o.initialHeapCapacity+1),
		opts:  o,
	}
	ctx := &WriteCtx[C]{shared: shared}
	ctx.heapMutLocked(ctx.defaultCategory)
	return ctx
}

// heapMutLocked creates cat's heap (and assigns it the next stable id) if
// it doesn't exist yet, then returns it. "Locked" is a holdover name from
// the single-threaded assumption this package makes throughout: there is
// no actual lock, only a single caller ever touching shared state at once.
func (ctx *WriteCtx[C]) heapMutLocked(cat C) *WriteHeap {
	if h, ok := ctx.shared.heaps[cat]; ok {
		return h
	}
	h := NewWriteHeap()
	ctx.shared.heaps[cat] = h
	if _, ok := ctx.shared.ids[cat]; !ok {
		ctx.shared.ids[cat] = uint32(len(ctx.shared.order))
		ctx.shared.order = append(ctx.shared.order, cat)
		log.Printf("blockwire: created heap for category %v (id %d)", cat, ctx.shared.ids[cat])
	}
	return h
}

// resolveHeap returns cat's heap, preferring the borrowed heap when cat is
// this context's borrowed category (it has been removed from the shared
// map and only this WriteCtx value still knows where it is).
func (ctx *WriteCtx[C]) resolveHeap(cat C, create bool) (*WriteHeap, bool) {
	if ctx.borrowed != nil && cat == ctx.defaultCategory {
		return ctx.borrowed, true
	}
	if create {
		return ctx.heapMutLocked(cat), true
	}
	h, ok := ctx.shared.heaps[cat]
	return h, ok
}

// Heap looks up category's heap without creating it.
func (ctx *WriteCtx[C]) Heap(category C) (*WriteHeap, bool) {
	return ctx.resolveHeap(category, false)
}

// HeapMut looks up category's heap, creating an empty one if absent.
func (ctx *WriteCtx[C]) HeapMut(category C) *WriteHeap {
	h, _ := ctx.resolveHeap(category, true)
	return h
}

// SetHeap reattaches h at category, replacing whatever was there.
func (ctx *WriteCtx[C]) SetHeap(category C, h *WriteHeap) {
	if ctx.borrowed != nil && category == ctx.defaultCategory {
		ctx.borrowed = h
		return
	}
	ctx.shared.heaps[category] = h
	if _, ok := ctx.shared.ids[category]; !ok {
		ctx.shared.ids[category] = uint32(len(ctx.shared.order))
		ctx.shared.order = append(ctx.shared.order, category)
	}
}

// RemoveHeap detaches category's heap and returns it, if present.
func (ctx *WriteCtx[C]) RemoveHeap(category C) (*WriteHeap, bool) {
	if ctx.borrowed != nil && category == ctx.defaultCategory {
		h := ctx.borrowed
		ctx.borrowed = nil
		return h, h != nil
	}
	h, ok := ctx.shared.heaps[category]
	delete(ctx.shared.heaps, category)
	return h, ok
}

// HeapIDOf returns category's stable integer id, the order in which its
// heap was first created. It creates the heap if it doesn't exist yet, to
// match allocate_next_block's "resolve category, creating an entry if
// absent" step.
func (ctx *WriteCtx[C]) HeapIDOf(category C) uint32 {
	ctx.heapMutLocked(category)
	return ctx.shared.ids[category]
}

// Write implements Writer by delegating to the default heap's current
// block, so a WriteCtx can be passed anywhere a Writer is expected.
func (ctx *WriteCtx[C]) Write(p []byte) (int, error) {
	return ctx.HeapMut(ctx.defaultCategory).CurWriter().Write(p)
}

// Seek implements Writer by delegating to the default heap's current
// block.
func (ctx *WriteCtx[C]) Seek(offset int64, whence int) (int64, error) {
	return ctx.HeapMut(ctx.defaultCategory).CurWriter().Seek(offset, whence)
}

// HeapTokenAtCurrentPos mints a token at the default heap's cursor.
func (ctx *WriteCtx[C]) HeapTokenAtCurrentPos() (HeapToken, error) {
	heap := ctx.HeapMut(ctx.defaultCategory)
	return heap.HeapTokenAtCurrentPos(ctx.HeapIDOf(ctx.defaultCategory))
}

// WriteToken writes a placeholder for token into the default heap.
func (ctx *WriteCtx[C]) WriteToken(token HeapToken, width int) error {
	return ctx.HeapMut(ctx.defaultCategory).WriteToken(token, width)
}

// AlignTo pads the default heap's current block to alignment.
func (ctx *WriteCtx[C]) AlignTo(alignment uint64) error {
	return ctx.HeapMut(ctx.defaultCategory).AlignTo(alignment)
}

// AllocateNextBlock is AllocateNextBlockAligned with no alignment
// requirement.
func (ctx *WriteCtx[C]) AllocateNextBlock(category *C, content func(*WriteCtx[C]) error) (HeapToken, error) {
	return ctx.AllocateNextBlockAligned(category, 0, content)
}

// AllocateNextBlockAligned resolves category (the context's own default
// category if nil), advances its heap to a new block aligned to
// alignment, and runs content against an inner context whose default heap
// is that same heap — so writes through it land in the block just opened
// and nested allocations with no explicit category open further blocks of
// that same heap, while allocations naming another
// category resolve through the same shared heap set as the parent. The
// heap's current-block index, and the heap's presence in the shared map,
// are both restored once content returns, whether or not it errored.
func (ctx *WriteCtx[C]) AllocateNextBlockAligned(category *C, alignment uint64, content func(*WriteCtx[C]) error) (HeapToken, error) {
	cat := ctx.defaultCategory
	if category != nil {
		cat = *category
	}

	heap := ctx.HeapMut(cat)
	heapID := ctx.HeapIDOf(cat)
	savedCurrent := heap.current

	token, err := heap.SeekToNewBlock(alignment, heapID)
	if err != nil {
		return HeapToken{}, err
	}

	ctx.RemoveHeap(cat)
	inner := &WriteCtx[C]{shared: ctx.shared, defaultCategory: cat, borrowed: heap}

	defer func() {
		heap.current = savedCurrent
		ctx.SetHeap(cat, heap)
	}()

	if err := content(inner); err != nil {
		return HeapToken{}, err
	}
	return token, nil
}
