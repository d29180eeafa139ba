package blockwire

import "fmt"

// Kind distinguishes the handful of conditions the core itself raises.
// Everything else (short reads, seek past end, permission) surfaces as an
// IoError wrapping the underlying io error.
type Kind int

const (
	// IoError wraps a failure from the underlying cursor: short read, seek
	// past end, permission. Always wraps a non-nil cause.
	IoError Kind = iota
	// InvalidEncoding reports a UTF-8 decode failure on a string field.
	InvalidEncoding
	// UnexpectedNull reports a boxed/pointer read that decoded a null
	// value where the record required one.
	UnexpectedNull
	// UnresolvedRelocation reports a relocation whose target block never
	// materialized by the end of assembly.
	UnresolvedRelocation
	// DriverRefused reports a read_unk/write_unk call that had no
	// specialization at a site that required one.
	DriverRefused
)

func (k Kind) String() string {
	switch k {
	case IoError:
		return "IoError"
	case InvalidEncoding:
		return "InvalidEncoding"
	case UnexpectedNull:
		return "UnexpectedNull"
	case UnresolvedRelocation:
		return "UnresolvedRelocation"
	case DriverRefused:
		return "DriverRefused"
	default:
		return "Kind(invalid)"
	}
}

// Error is the single error type the core raises. Kind tells a caller
// what went wrong; the optional fields give the offset, token or field
// name needed to locate it without parsing the message.
type Error struct {
	Kind   Kind
	Offset int64      // stream offset, when known; -1 otherwise
	Token  *HeapToken // offending token, for UnresolvedRelocation
	Field  string     // record field name, when known
	Cause  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Field != "" {
		msg = fmt.Sprintf("%s: field %s", msg, e.Field)
	}
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s at offset %d", msg, e.Offset)
	}
	if e.Token != nil {
		msg = fmt.Sprintf("%s (token heap=%d block=%d local=%d)", msg, e.Token.HeapID, e.Token.BlockID, e.Token.LocalOffset)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, blockwire.ErrUnexpectedNull) match on Kind alone,
// ignoring offset/token/cause, the way callers actually want to branch.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel values usable with errors.Is.
var (
	ErrUnexpectedNull       = &Error{Kind: UnexpectedNull, Offset: -1}
	ErrUnresolvedRelocation = &Error{Kind: UnresolvedRelocation, Offset: -1}
	ErrDriverRefused        = &Error{Kind: DriverRefused, Offset: -1}
	ErrInvalidEncoding      = &Error{Kind: InvalidEncoding, Offset: -1}
)

func newIoError(offset int64, cause error) *Error {
	return &Error{Kind: IoError, Offset: offset, Cause: cause}
}

func newInvalidEncoding(offset int64, cause error) *Error {
	return &Error{Kind: InvalidEncoding, Offset: offset, Cause: cause}
}

func newUnexpectedNull(offset int64, field string) *Error {
	return &Error{Kind: UnexpectedNull, Offset: offset, Field: field}
}

func newUnresolvedRelocation(token HeapToken) *Error {
	return &Error{Kind: UnresolvedRelocation, Offset: -1, Token: &token}
}

func newDriverRefused(field string) *Error {
	return &Error{Kind: DriverRefused, Offset: -1, Field: field}
}

// NewUnexpectedNullError reports a boxed/pointer read that decoded a
// null value at a field the caller's format requires to be non-null.
// Exported for format drivers and generated record code outside this
// package to raise the same error the core itself would.
func NewUnexpectedNullError(offset int64, field string) *Error {
	return newUnexpectedNull(offset, field)
}

// NewDriverRefusedError reports a ReadUnk/WriteUnk call that had no
// specialization at a site requiring one. Exported for the same reason
// as NewUnexpectedNullError.
func NewDriverRefusedError(field string) *Error {
	return newDriverRefused(field)
}
