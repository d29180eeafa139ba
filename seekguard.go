package blockwire

import "log"

// SeekGuard is the "jump to a pointer, read, come back" primitive behind
// every pointer dereference on the read side. Construction records the
// cursor's current position; Release restores it. Callers defer Release
// immediately after a successful construction so the restoration runs on
// every exit path, including a panic unwinding through the deferred call.
type SeekGuard struct {
	r     Reader
	saved uint64
}

// NewSeekGuard records r's current position. Release must be called
// (typically via defer) to restore it.
func NewSeekGuard(r Reader) (*SeekGuard, error) {
	pos, err := Position(r)
	if err != nil {
		return nil, err
	}
	return &SeekGuard{r: r, saved: pos}, nil
}

// Release restores the reader to the position recorded at construction.
// Per the design, restoration must never itself fail the caller: if the
// underlying seek fails here (only possible if the stream was mutated out
// from under the guard), the failure is logged rather than returned, the
// same soft precondition the source takes for granted on seekable byte
// buffers.
func (g *SeekGuard) Release() {
	if err := SetPosition(g.r, g.saved); err != nil {
		log.Printf("blockwire: seek guard failed to restore position %d: %s", g.saved, err)
	}
}

// JumpTo constructs a guard over r's current position, then seeks to
// target. On seek failure the guard is released immediately so the
// caller doesn't leak a stale bookmark.
func JumpTo(r Reader, target uint64) (*SeekGuard, error) {
	guard, err := NewSeekGuard(r)
	if err != nil {
		return nil, err
	}
	if err := SetPosition(r, target); err != nil {
		guard.Release()
		return nil, err
	}
	return guard, nil
}
