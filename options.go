package blockwire

// AssembleOption configures a single Assemble call.
type AssembleOption func(*assembleOptions)

type assembleOptions struct {
	blockOffsets *[]uint64
}

// WithBlockOffsets asks Assemble to append the absolute start offset of
// every block it writes, in concatenation order, to *offsets. Purely a
// debugging/introspection aid; the returned byte vector is identical with
// or without it.
func WithBlockOffsets(offsets *[]uint64) AssembleOption {
	return func(o *assembleOptions) { o.blockOffsets = offsets }
}
